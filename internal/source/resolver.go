package source

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath expands a leading "~" and makes relPath relative to the
// directory of basePath. An empty basePath leaves relative paths untouched.
func ResolvePath(basePath, relPath string) string {
	if strings.HasPrefix(relPath, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			if relPath == "~" {
				return home
			}
			relPath = filepath.Join(home, relPath[2:])
		}
	}

	if filepath.IsAbs(relPath) || basePath == "" {
		return filepath.Clean(relPath)
	}

	baseDir := filepath.Dir(basePath)
	return filepath.Clean(filepath.Join(baseDir, relPath))
}
