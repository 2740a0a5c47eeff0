package source

import "fmt"

type ErrorKind int

const (
	ErrorFileNotFound ErrorKind = iota
	ErrorReadError
	ErrorFileTooLarge
	ErrorNotRegular
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorFileNotFound:
		return "file not found"
	case ErrorReadError:
		return "read error"
	case ErrorFileTooLarge:
		return "file too large"
	case ErrorNotRegular:
		return "not a regular file"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// LoadError is the IO failure of reading an input or configuration file.
type LoadError struct {
	Kind    ErrorKind
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type Limits struct {
	MaxFileSizeBytes int64
}

func DefaultLimits() Limits {
	return Limits{
		MaxFileSizeBytes: 256 << 20,
	}
}
