// Package credentials stores the daily_tasks API token in the OS keyring.
package credentials

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	service = "bitacora"
	user    = "api-token"

	// EnvToken is consulted when the keyring holds no token.
	EnvToken = "BITACORA_TOKEN"
)

var (
	// ErrNotFound is returned when no token is stored
	ErrNotFound = errors.New("API token not found (run `bitacora login`)")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetToken returns the stored API token. The keyring wins over $BITACORA_TOKEN.
func GetToken() (string, error) {
	tok, err := keyring.Get(service, user)
	if err == nil {
		return tok, nil
	}
	if env := os.Getenv(EnvToken); env != "" {
		return env, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
}

// SetToken stores the API token in the OS keyring.
func SetToken(tok string) error {
	if tok == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(service, user, tok); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the API token from the OS keyring.
func DeleteToken() error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
