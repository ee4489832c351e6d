// Package keyring stores the PostgreSQL connection string in the OS keyring.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/pharmtrack/internal/constants"
)

var (
	// ErrNotFound is returned when no connection string is stored.
	ErrNotFound = errors.New("no connection string stored in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source tells where a resolved connection string came from.
type Source string

const (
	SourceNone    Source = ""
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

func Get() (string, error) {
	connStr, err := gokeyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func Set(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := gokeyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

func Delete() error {
	err := gokeyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// Available probes the keyring with a read. An empty keyring still counts.
func Available() bool {
	_, err := gokeyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, gokeyring.ErrNotFound)
}

// Resolve finds the connection string used when --config asks for PostgreSQL
// without giving one. The environment wins over the keyring.
func Resolve() (string, Source, error) {
	if connStr := strings.TrimSpace(os.Getenv(constants.EnvConnection)); connStr != "" {
		return connStr, SourceEnv, nil
	}
	connStr, err := Get()
	if err != nil {
		return "", SourceNone, err
	}
	return connStr, SourceKeyring, nil
}

// Mask hides the password in a URL or key=value connection string.
func Mask(connStr string) string {
	if i := strings.Index(connStr, "://"); i != -1 {
		rest := connStr[i+3:]
		if at := strings.LastIndex(rest, "@"); at != -1 {
			if user, _, ok := strings.Cut(rest[:at], ":"); ok {
				return connStr[:i+3] + user + ":****" + rest[at:]
			}
		}
		return connStr
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
