package database

import (
	"fmt"
	"os"
	"strings"
)

// ReadSecret reads the database password from path. A single trailing line
// ending is stripped since secret files are usually written with one.
//
// The returned error names the path but never the file content.
func ReadSecret(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSecretUnreadable, path, err)
	}

	secret := strings.TrimSuffix(string(data), "\n")
	secret = strings.TrimSuffix(secret, "\r")
	if secret == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrSecretUnreadable, path)
	}

	return secret, nil
}
