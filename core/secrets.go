package core

import "errors"

// Vault keys. The vault itself is the OS credential manager; this system
// never persists secrets anywhere else.
const (
	SecretUsername  = "USERNAME"
	SecretPassword  = "PASSWORD"
	SecretLineToken = "LINE_TOKEN"
)

var ErrSecretNotFound = errors.New("secret not found")

// SecretStore is an OS-provided key/value secret vault.
type SecretStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
