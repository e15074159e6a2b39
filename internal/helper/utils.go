package helper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SanitizeFilename reduces a client-supplied file name to its base name so it
// is safe to use as a storage key or document identifier.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return filepath.Base(name)
}

// CreateFolder makes sure a directory exists.
func CreateFolder(path string) error {
	return os.MkdirAll(path, 0o755)
}

// TempName prefixes a file name with a random UUID so concurrent uploads of
// the same document cannot collide on disk.
func TempName(name string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %v", err)
	}
	return id.String() + "-" + name, nil
}
