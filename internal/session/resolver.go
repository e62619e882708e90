package session

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pmarket/pm/internal/keyring"
)

// Source names where a session token was found.
type Source string

const (
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceFile    Source = "file"
	SourceNone    Source = "none"
)

// Resolver finds the session token. Lookup order is the PMARKET_TOKEN
// environment variable (when Store is a *keyring.EnvStore), the keyring, then
// the token file. With ExplicitFile set the keyring is skipped for reads and
// writes, so the order is the environment, then TokenFile. No token is not an
// error: the empty string is returned and the server decides.
type Resolver struct {
	Store        keyring.Store
	Key          string
	TokenFile    string
	ExplicitFile bool
	Logger       *zap.Logger
}

type envLookup interface {
	Env(key string) (string, bool)
	Lookup(service, key string) (string, bool, error)
}

// useKeyring reports whether the keyring takes part in lookups and saves.
func (r *Resolver) useKeyring() bool {
	return r.Store != nil && !r.ExplicitFile
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Resolver) key() string {
	if r.Key == "" {
		return keyring.KeySessionToken
	}
	return r.Key
}

// Token returns the session token, or "" when none is stored.
func (r *Resolver) Token() (string, error) {
	token, source, err := r.Resolve()
	if err != nil {
		return "", err
	}
	r.logger().Debug("resolved session token", zap.String("source", string(source)))
	return token, nil
}

// Resolve returns the session token and where it came from.
func (r *Resolver) Resolve() (string, Source, error) {
	if r.ExplicitFile {
		if env, ok := r.Store.(envLookup); ok {
			if token, found := env.Env(r.key()); found {
				return token, SourceEnv, nil
			}
		}
		return r.fromFile()
	}

	if r.Store != nil {
		token, source, err := r.fromStore()
		switch {
		case err == nil && token != "":
			return token, source, nil
		case err != nil && !errors.Is(err, keyring.ErrNotFound):
			// An unavailable keyring is common on headless machines.
			r.logger().Warn("keyring lookup failed", zap.Error(err))
		}
	}

	return r.fromFile()
}

func (r *Resolver) fromFile() (string, Source, error) {
	if r.TokenFile == "" {
		return "", SourceNone, nil
	}

	token, err := LoadToken(r.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", SourceNone, nil
		}
		return "", SourceNone, fmt.Errorf("failed to read token file: %w", err)
	}
	if token == "" {
		return "", SourceNone, nil
	}
	return token, SourceFile, nil
}

func (r *Resolver) fromStore() (string, Source, error) {
	if env, ok := r.Store.(envLookup); ok {
		token, fromEnv, err := env.Lookup(keyring.ServiceName, r.key())
		if fromEnv {
			return token, SourceEnv, err
		}
		return token, SourceKeyring, err
	}
	token, err := r.Store.Get(keyring.ServiceName, r.key())
	return token, SourceKeyring, err
}

// Save persists a token to the token file and, best effort, the keyring.
func (r *Resolver) Save(token string) error {
	if r.TokenFile != "" {
		if err := SaveToken(r.TokenFile, token); err != nil {
			return fmt.Errorf("failed to write token file: %w", err)
		}
	}

	if r.useKeyring() {
		if err := r.Store.Set(keyring.ServiceName, r.key(), token); err != nil {
			r.logger().Warn("could not store session token in keyring", zap.Error(err))
		}
	}

	return nil
}

// Clear removes the token from the token file and the keyring.
func (r *Resolver) Clear() error {
	if r.useKeyring() {
		if err := r.Store.Delete(keyring.ServiceName, r.key()); err != nil {
			r.logger().Warn("could not remove session token from keyring", zap.Error(err))
		}
	}

	if r.TokenFile != "" {
		if err := DeleteToken(r.TokenFile); err != nil {
			return fmt.Errorf("failed to remove token file: %w", err)
		}
	}

	return nil
}
