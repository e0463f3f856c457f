package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kacchan-writer/letus-watcher/core"
	"github.com/kacchan-writer/letus-watcher/core/scan"
	testutil "github.com/kacchan-writer/letus-watcher/tests"
)

// scriptedScanner replays one outcome per call; the last outcome repeats.
// onCall, when set, runs before each outcome is returned.
type scriptedScanner struct {
	outcomes []error
	calls    int
	onCall   func(call int)
}

func (s *scriptedScanner) Scan(ctx context.Context, window time.Duration) (*scan.Report, error) {
	call := s.calls
	s.calls++
	if s.onCall != nil {
		s.onCall(call)
	}
	i := call
	if i >= len(s.outcomes) {
		i = len(s.outcomes) - 1
	}
	if err := s.outcomes[i]; err != nil {
		return nil, err
	}
	return &scan.Report{}, nil
}

func Test_watch_stopsOnConfigurationError(t *testing.T) {
	scanner := &scriptedScanner{outcomes: []error{core.NewConfigurationError("run --configure first")}}

	err := watch(context.Background(), scanner, time.Millisecond, 48*time.Hour, true, testutil.NewLogger(), new(strings.Builder))
	if err == nil || !core.IsConfiguration(err) {
		t.Fatalf("watch() error = %v, want a ConfigurationError", err)
	}
	if scanner.calls != 1 {
		t.Errorf("scans = %d, want exactly 1 (no retry on missing credentials)", scanner.calls)
	}
}

func Test_watch_stopsAfterConsecutiveAuthFailures(t *testing.T) {
	scanner := &scriptedScanner{outcomes: []error{core.NewAuthenticationError("login failed")}}

	err := watch(context.Background(), scanner, time.Millisecond, 48*time.Hour, true, testutil.NewLogger(), new(strings.Builder))
	if err == nil || !core.IsAuthentication(err) {
		t.Fatalf("watch() error = %v, want an AuthenticationError", err)
	}
	if scanner.calls != maxAuthFailures {
		t.Errorf("scans = %d, want %d before the hard stop", scanner.calls, maxAuthFailures)
	}
}

func Test_watch_successResetsAuthFailureCount(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	scanner := &scriptedScanner{
		outcomes: []error{
			core.NewAuthenticationError("flaky SSO"),
			core.NewAuthenticationError("flaky SSO"),
			nil,
			core.NewAuthenticationError("flaky SSO"),
			core.NewAuthenticationError("flaky SSO"),
			nil,
		},
		onCall: func(call int) {
			if call == 5 {
				cancel()
			}
		},
	}

	err := watch(ctx, scanner, time.Millisecond, 48*time.Hour, true, testutil.NewLogger(), new(strings.Builder))
	if err != nil {
		t.Fatalf("watch() error = %v, want nil: 2 consecutive failures never reach the cap", err)
	}
	if scanner.calls < 6 {
		t.Errorf("scans = %d, want the loop to have survived both failure bursts", scanner.calls)
	}
}

func Test_watch_transientErrorsKeepTheLoopAlive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	logger := testutil.NewLogger()
	scanner := &scriptedScanner{
		outcomes: []error{core.NewTimeoutError("timeline region")},
		onCall: func(call int) {
			if call == 4 {
				cancel()
			}
		},
	}

	err := watch(ctx, scanner, time.Millisecond, 48*time.Hour, true, logger, new(strings.Builder))
	if err != nil {
		t.Fatalf("watch() error = %v, want nil on cancellation", err)
	}
	if scanner.calls < 5 {
		t.Errorf("scans = %d, want the loop to retry past timeouts", scanner.calls)
	}
	if len(logger.Entries) == 0 {
		t.Error("transient failures were not logged")
	}
}

func Test_watch_cancellationStopsPromptly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scanner := &scriptedScanner{outcomes: []error{nil}}

	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, scanner, time.Hour, 48*time.Hour, true, testutil.NewLogger(), new(strings.Builder))
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch() error = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watch() did not stop on a canceled context")
	}
	if scanner.calls != 0 {
		t.Errorf("scans = %d, want 0 when canceled before the first iteration", scanner.calls)
	}
}

func Test_watch_cancellationDuringSleepStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	scanner := &scriptedScanner{
		outcomes: []error{nil},
		onCall: func(int) {
			// cancel lands while the loop sleeps on the long interval
			go func() {
				time.Sleep(10 * time.Millisecond)
				cancel()
			}()
		},
	}

	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, scanner, time.Hour, 48*time.Hour, true, testutil.NewLogger(), new(strings.Builder))
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch() error = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watch() kept sleeping past cancellation")
	}
	if scanner.calls != 1 {
		t.Errorf("scans = %d, want exactly 1", scanner.calls)
	}
}

func Test_reportScan_quiet(t *testing.T) {
	tests := []struct {
		name  string
		rpt   *scan.Report
		quiet bool
		want  []string
		not   []string
	}{
		{
			name: "nothing found, verbose",
			rpt:  &scan.Report{},
			want: []string{"No deadlines soon."},
		},
		{
			name:  "nothing found, quiet",
			rpt:   &scan.Report{},
			quiet: true,
			not:   []string{"No deadlines soon."},
		},
		{
			name: "unparsed entries are surfaced even when quiet",
			rpt: &scan.Report{
				Unparsed: []core.Assignment{{Label: "Mystery assignment"}},
			},
			quiet: true,
			want:  []string{"Mystery assignment"},
			not:   []string{"No deadlines soon."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := new(strings.Builder)
			reportScan(tt.rpt, tt.quiet, out)
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output = %q, want it to contain %q", out.String(), want)
				}
			}
			for _, not := range tt.not {
				if strings.Contains(out.String(), not) {
					t.Errorf("output = %q, want it to omit %q", out.String(), not)
				}
			}
		})
	}
}
