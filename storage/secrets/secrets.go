package secretstore

import (
	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"

	"github.com/kacchan-writer/letus-watcher/core"
)

// Store keeps secrets in the OS credential vault (macOS Keychain, Windows
// Credential Manager, or Secret Service on Linux) under one service name.
type Store struct {
	service string
}

var _ core.SecretStore = (*Store)(nil)

func New(conf *core.Config) *Store {
	return &Store{service: conf.KeyringService}
}

func (s *Store) Get(key string) (string, error) {
	val, err := keyring.Get(s.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", core.ErrSecretNotFound
		}
		return "", errors.Wrapf(err, "keyring get %s", key)
	}
	return val, nil
}

func (s *Store) Set(key, value string) error {
	return errors.Wrapf(keyring.Set(s.service, key, value), "keyring set %s", key)
}

func (s *Store) Delete(key string) error {
	if err := keyring.Delete(s.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return core.ErrSecretNotFound
		}
		return errors.Wrapf(err, "keyring delete %s", key)
	}
	return nil
}
