package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte("a;b\n1;2\n"), 0o644))

	content, err := NewLoader().ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a;b\n1;2\n", string(content))
}

func TestLoader_FileNotFound(t *testing.T) {
	_, err := NewLoader().ReadFile(filepath.Join(t.TempDir(), "missing.csv"))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrorFileNotFound, le.Kind)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoader_FileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.csv")
	require.NoError(t, os.WriteFile(path, make([]byte, 128), 0o644))

	loader := NewLoader()
	loader.SetLimits(Limits{MaxFileSizeBytes: 64})

	_, err := loader.Open(path)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrorFileTooLarge, le.Kind)
}

func TestLoader_Directory(t *testing.T) {
	_, err := NewLoader().Open(t.TempDir())

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrorNotRegular, le.Kind)
}

func TestLoader_SetLimitsDefaults(t *testing.T) {
	loader := NewLoader()
	loader.SetLimits(Limits{})
	assert.Equal(t, DefaultLimits(), loader.Limits())
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		base     string
		rel      string
		expected string
	}{
		{name: "relative to config", base: "/etc/spend/import.toml", rel: "groups.toml", expected: "/etc/spend/groups.toml"},
		{name: "absolute", base: "/etc/spend/import.toml", rel: "/tmp/groups.toml", expected: "/tmp/groups.toml"},
		{name: "no base", base: "", rel: "data/x.csv", expected: "data/x.csv"},
		{name: "home", base: "", rel: "~/x.csv", expected: filepath.Join(home, "x.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolvePath(tt.base, tt.rel))
		})
	}
}
