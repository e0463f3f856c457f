package main

import (
	"strings"
	"testing"

	"github.com/kacchan-writer/letus-watcher/core"
	testutil "github.com/kacchan-writer/letus-watcher/tests"
)

type cliTest struct {
	name     string
	args     []string // without program name
	wantErr  bool
	wantOpts options
}

func Test_parseArgs(t *testing.T) {
	tests := []cliTest{
		{
			name:     "defaults",
			args:     nil,
			wantOpts: options{DueWithin: 48},
		},
		{
			name:     "due-within",
			args:     []string{"-due-within", "6"},
			wantOpts: options{DueWithin: 6},
		},
		{
			name:     "watch mode",
			args:     []string{"-watch", "30", "-due-within", "6", "-quiet"},
			wantOpts: options{DueWithin: 6, WatchEvery: 30, Quiet: true},
		},
		{
			name:     "configure",
			args:     []string{"-configure"},
			wantOpts: options{Configure: true, DueWithin: 48},
		},
		{
			name:     "clear-credentials",
			args:     []string{"-clear-credentials"},
			wantOpts: options{ClearCreds: true, DueWithin: 48},
		},
		{
			name:    "unknown flag",
			args:    []string{"-lol"},
			wantErr: true,
		},
		{
			name:    "non-integer hours",
			args:    []string{"-due-within", "lol"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs(append([]string{"letus-watcher"}, tt.args...))
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseArgs() error = nil, want an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseArgs() error = %v", err)
			}
			if *opts != tt.wantOpts {
				t.Errorf("parseArgs() = %+v, want %+v", *opts, tt.wantOpts)
			}
		})
	}
}

func Test_options_validate(t *testing.T) {
	validate, trans := newValidator()
	tests := []struct {
		name    string
		opts    options
		wantErr bool
	}{
		{name: "defaults pass", opts: options{DueWithin: 48}},
		{name: "watch interval passes", opts: options{DueWithin: 48, WatchEvery: 30}},
		{name: "zero window rejected", opts: options{DueWithin: 0}, wantErr: true},
		{name: "negative window rejected", opts: options{DueWithin: -6}, wantErr: true},
		{name: "negative interval rejected", opts: options{DueWithin: 48, WatchEvery: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate(validate, trans)
			if tt.wantErr && err == nil {
				t.Error("validate() error = nil, want an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validate() error = %v", err)
			}
		})
	}
}

func Test_configure(t *testing.T) {
	prev := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("pwd"), nil }
	defer func() { readPasswordFunc = prev }()

	vault := testutil.NewVault(nil)
	in := strings.NewReader("s123\nline-token\n")
	out := new(strings.Builder)

	if err := configure(vault, in, out); err != nil {
		t.Fatalf("configure() error = %v", err)
	}

	want := map[string]string{
		core.SecretUsername:  "s123",
		core.SecretPassword:  "pwd",
		core.SecretLineToken: "line-token",
	}
	for key, wantVal := range want {
		got, err := vault.Get(key)
		if err != nil {
			t.Fatalf("vault.Get(%s) error = %v", key, err)
		}
		if got != wantVal {
			t.Errorf("vault[%s] = %q, want %q", key, got, wantVal)
		}
	}
	if !strings.Contains(out.String(), "Saved.") {
		t.Errorf("output = %q, want confirmation", out.String())
	}
}

func Test_configure_tokenIsOptional(t *testing.T) {
	prev := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("pwd"), nil }
	defer func() { readPasswordFunc = prev }()

	vault := testutil.NewVault(nil)
	if err := configure(vault, strings.NewReader("s123\n\n"), new(strings.Builder)); err != nil {
		t.Fatalf("configure() error = %v", err)
	}
	if _, err := vault.Get(core.SecretLineToken); err != core.ErrSecretNotFound {
		t.Errorf("vault.Get(LINE_TOKEN) error = %v, want ErrSecretNotFound", err)
	}
}

func Test_configure_requiresCredentials(t *testing.T) {
	prev := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return nil, nil }
	defer func() { readPasswordFunc = prev }()

	vault := testutil.NewVault(nil)
	if err := configure(vault, strings.NewReader("\n\n"), new(strings.Builder)); err == nil {
		t.Fatal("configure() error = nil, want an error for empty credentials")
	}
	if keys := vault.Keys(); len(keys) != 0 {
		t.Errorf("vault keys = %v, want nothing persisted", keys)
	}
}

func Test_clearCredentials(t *testing.T) {
	vault := testutil.NewVault(map[string]string{
		core.SecretUsername:  "s123",
		core.SecretPassword:  "pwd",
		core.SecretLineToken: "line-token",
	})

	if err := clearCredentials(vault); err != nil {
		t.Fatalf("clearCredentials() error = %v", err)
	}
	if keys := vault.Keys(); len(keys) != 0 {
		t.Errorf("vault keys = %v, want all deleted", keys)
	}

	// clearing an already-empty vault is not an error
	if err := clearCredentials(vault); err != nil {
		t.Errorf("clearCredentials() on empty vault error = %v", err)
	}
}
