package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/kacchan-writer/letus-watcher/core"
)

var readPasswordFunc = term.ReadPassword // mockable

// configure interactively prompts for credentials and persists them in the
// vault. Runs instead of a scan.
func configure(vault core.SecretStore, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)

	fmt.Fprint(out, "Student ID (LETUS username): ")
	username, err := readLine(r)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "Password: ")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return errors.Wrap(err, "reading password")
	}

	fmt.Fprint(out, "LINE Notify token (optional): ")
	token, err := readLine(r)
	if err != nil {
		return err
	}

	if username == "" || len(pwd) == 0 {
		return errors.New("username and password are required")
	}

	if err = vault.Set(core.SecretUsername, username); err != nil {
		return err
	}
	if err = vault.Set(core.SecretPassword, string(pwd)); err != nil {
		return err
	}
	if token != "" {
		if err = vault.Set(core.SecretLineToken, token); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "Saved.")
	return nil
}

// clearCredentials deletes every stored vault key. Keys that were never
// stored are not an error.
func clearCredentials(vault core.SecretStore) error {
	keys := []string{core.SecretUsername, core.SecretPassword, core.SecretLineToken}
	for _, key := range keys {
		if err := vault.Delete(key); err != nil && !errors.Is(err, core.ErrSecretNotFound) {
			return err
		}
	}
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "reading input")
	}
	return core.CleanString(line), nil
}
