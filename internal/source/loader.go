package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

type Loader struct {
	limits Limits
}

func NewLoader() *Loader {
	return &Loader{limits: DefaultLimits()}
}

func (l *Loader) SetLimits(limits Limits) {
	if limits.MaxFileSizeBytes <= 0 {
		limits.MaxFileSizeBytes = DefaultLimits().MaxFileSizeBytes
	}
	l.limits = limits
}

func (l *Loader) Limits() Limits {
	return l.limits
}

// Open checks the file against the limits and opens it for streaming.
func (l *Loader) Open(path string) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, statError(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{
			Kind:    ErrorNotRegular,
			Path:    path,
			Message: "not a regular file",
		}
	}
	if info.Size() > l.limits.MaxFileSizeBytes {
		return nil, &LoadError{
			Kind:    ErrorFileTooLarge,
			Path:    path,
			Message: fmt.Sprintf("file size %d exceeds limit %d", info.Size(), l.limits.MaxFileSizeBytes),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, statError(path, err)
	}
	return f, nil
}

func (l *Loader) ReadFile(path string) ([]byte, error) {
	rc, err := l.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, &LoadError{
			Kind:    ErrorReadError,
			Path:    path,
			Message: fmt.Sprintf("cannot read file: %v", err),
			Err:     err,
		}
	}
	return content, nil
}

func statError(path string, err error) error {
	kind := ErrorReadError
	if errors.Is(err, fs.ErrNotExist) {
		kind = ErrorFileNotFound
	}
	return &LoadError{
		Kind:    kind,
		Path:    path,
		Message: fmt.Sprintf("cannot open file: %v", err),
		Err:     err,
	}
}
