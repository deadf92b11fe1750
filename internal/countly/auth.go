package countly

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Environment variables consulted by the token resolver.
const (
	EnvAuthToken     = "COUNTLY_AUTH_TOKEN"
	EnvAuthTokenFile = "COUNTLY_AUTH_TOKEN_FILE"
)

// Auth resolution failures.
var (
	ErrMissingAuthToken = errors.New(
		"missing Countly auth token: provide countlyAuthToken in the call _meta, " +
			"pass countly_auth_token in the tool arguments, set " + EnvAuthToken +
			", or point " + EnvAuthTokenFile + " at a file containing the token")
	ErrTokenFileNotFound   = errors.New("auth token file not found")
	ErrTokenFileEmpty      = errors.New("auth token file is empty")
	ErrTokenFilePermission = errors.New("auth token file is not readable")
)

// AuthConfig carries the per-call token sources, highest priority first:
// the session override from the call metadata, then the tool argument.
// The environment is consulted only when both are empty.
type AuthConfig struct {
	Override string // countlyAuthToken from the call _meta
	Argument string // countly_auth_token tool argument
}

// ResolveAuthToken returns the first present, non-empty token source.
// Lower-priority sources are never consulted once a higher one is
// present. An empty result with a nil error means no source was
// configured; callers decide whether that is fatal.
func ResolveAuthToken(cfg AuthConfig) (string, error) {
	if tok := strings.TrimSpace(cfg.Override); tok != "" {
		return tok, nil
	}
	if tok := strings.TrimSpace(cfg.Argument); tok != "" {
		return tok, nil
	}
	if tok := strings.TrimSpace(os.Getenv(EnvAuthToken)); tok != "" {
		return tok, nil
	}
	if path := strings.TrimSpace(os.Getenv(EnvAuthTokenFile)); path != "" {
		return ReadTokenFromFile(path)
	}
	return "", nil
}

// RequireAuthToken resolves the token and fails with ErrMissingAuthToken
// when no source is present.
func RequireAuthToken(cfg AuthConfig) (string, error) {
	tok, err := ResolveAuthToken(cfg)
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", ErrMissingAuthToken
	}
	return tok, nil
}

// ReadTokenFromFile reads the token stored at path, trimming surrounding
// whitespace and newlines.
func ReadTokenFromFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("%w: %s", ErrTokenFileNotFound, path)
		case errors.Is(err, fs.ErrPermission):
			return "", fmt.Errorf("%w: %s", ErrTokenFilePermission, path)
		default:
			return "", err
		}
	}
	tok := strings.TrimSpace(string(raw))
	if tok == "" {
		return "", fmt.Errorf("%w: %s", ErrTokenFileEmpty, path)
	}
	return tok, nil
}
