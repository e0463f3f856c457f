package testutil

import (
	"fmt"
	"sync"

	"github.com/kacchan-writer/letus-watcher/core"
)

// Logger records every entry instead of printing or reporting it.
type Logger struct {
	mu      sync.Mutex
	Entries []string
}

var _ core.Logger = (*Logger)(nil)

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := level + ": " + msg
	for _, arg := range args {
		entry += fmt.Sprintf(" | %v", arg)
	}
	l.Entries = append(l.Entries, entry)
}

func (l *Logger) Enable(bool)                           {}
func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }

// Vault is an in-memory SecretStore.
type Vault struct {
	mu    sync.RWMutex
	table map[string]string
}

var _ core.SecretStore = (*Vault)(nil)

func NewVault(secrets map[string]string) *Vault {
	table := make(map[string]string, len(secrets))
	for k, v := range secrets {
		table[k] = v
	}
	return &Vault{table: table}
}

func (v *Vault) Get(key string) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	val, ok := v.table[key]
	if !ok {
		return "", core.ErrSecretNotFound
	}
	return val, nil
}

func (v *Vault) Set(key, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.table[key] = value
	return nil
}

func (v *Vault) Delete(key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.table[key]; !ok {
		return core.ErrSecretNotFound
	}
	delete(v.table, key)
	return nil
}

// Keys lists the stored key names.
func (v *Vault) Keys() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	keys := make([]string, 0, len(v.table))
	for k := range v.table {
		keys = append(keys, k)
	}
	return keys
}
