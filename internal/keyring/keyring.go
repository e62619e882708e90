// Package keyring stores session tokens in the operating system keyring.
package keyring

import (
	"errors"
	"net/url"
	"os"
	"strings"

	gokeyring "github.com/zalando/go-keyring"
)

const (
	// ServiceName is the keyring service under which pm stores credentials.
	ServiceName = "pm.prediction-market"

	// KeySessionToken is the keyring key for the session token. Tokens for a
	// specific server are stored under SessionKey(baseURL).
	KeySessionToken = "session_token"

	// EnvSessionToken overrides keyring lookups of session tokens, for
	// scripts and CI where no keyring daemon is available.
	EnvSessionToken = "PMARKET_TOKEN"
)

// ErrNotFound is returned when a secret is not found in the keyring.
var ErrNotFound = errors.New("secret not found")

// Store provides an interface for secure secret storage.
type Store interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// SessionKey returns the key holding the session token for a server, so that
// tokens for different servers do not overwrite each other.
func SessionKey(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return KeySessionToken
	}
	return KeySessionToken + "@" + u.Host
}

func isSessionKey(key string) bool {
	return key == KeySessionToken || strings.HasPrefix(key, KeySessionToken+"@")
}

// SystemStore implements Store using the system keyring.
type SystemStore struct{}

// NewSystemStore creates a new system keyring store.
func NewSystemStore() *SystemStore {
	return &SystemStore{}
}

// Get retrieves a secret from the system keyring.
func (s *SystemStore) Get(service, key string) (string, error) {
	secret, err := gokeyring.Get(service, key)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", ErrNotFound
	}
	return secret, err
}

// Set stores a secret in the system keyring.
func (s *SystemStore) Set(service, key, value string) error {
	return gokeyring.Set(service, key, value)
}

// Delete removes a secret from the system keyring. Deleting a missing secret
// succeeds.
func (s *SystemStore) Delete(service, key string) error {
	if err := gokeyring.Delete(service, key); err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
		return err
	}
	return nil
}

// EnvStore wraps another Store and answers session token lookups from
// PMARKET_TOKEN when it is set.
type EnvStore struct {
	underlying Store
}

// NewEnvStore creates a new EnvStore wrapping the given store.
func NewEnvStore(underlying Store) *EnvStore {
	return &EnvStore{underlying: underlying}
}

// Get retrieves a secret, preferring the environment for session tokens.
func (e *EnvStore) Get(service, key string) (string, error) {
	value, _, err := e.Lookup(service, key)
	return value, err
}

// Env returns the environment override for key without touching the
// underlying store.
func (e *EnvStore) Env(key string) (string, bool) {
	if !isSessionKey(key) {
		return "", false
	}
	envVal := os.Getenv(EnvSessionToken)
	return envVal, envVal != ""
}

// Lookup is Get that also reports whether the value came from the environment.
func (e *EnvStore) Lookup(service, key string) (string, bool, error) {
	if envVal, ok := e.Env(key); ok {
		return envVal, true, nil
	}
	value, err := e.underlying.Get(service, key)
	return value, false, err
}

// Set stores a secret in the underlying store.
func (e *EnvStore) Set(service, key, value string) error {
	return e.underlying.Set(service, key, value)
}

// Delete removes a secret from the underlying store.
func (e *EnvStore) Delete(service, key string) error {
	return e.underlying.Delete(service, key)
}
