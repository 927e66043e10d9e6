package times

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrNotFound      = errors.New("times: file not found")
	ErrAccessDenied  = errors.New("times: access denied")
	ErrInvalidPath   = errors.New("times: invalid path")
	ErrNativeFailure = errors.New("times: native failure")
)

// PathError records a failed modification-time operation, the path it was
// applied to, and the platform's own description of the failure. Err is
// always one of the package sentinels, so callers can test with
// errors.Is(err, times.ErrNotFound) and friends.
type PathError struct {
	Op     string
	Path   string
	Err    error
	Native string
}

func (err *PathError) Error() string {
	if err.Native == "" {
		return fmt.Sprintf("times: %s: %s: %v", err.Op, err.Path, err.Err)
	}
	return fmt.Sprintf("times: %s: %s: %s", err.Op, err.Path, err.Native)
}

func (err *PathError) Unwrap() error {
	return err.Err
}

func (err *PathError) Is(target error) bool {
	switch target.(type) {
	case *PathError:
		return true
	default:
		return errors.Is(err.Err, target)
	}
}

// mapOSError classifies an error from the os package into the domain
// taxonomy. The native accessors never come through here; they classify
// raw platform codes directly.
func mapOSError(op, path string, err error) error {
	kind := ErrNativeFailure
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = ErrAccessDenied
	case errors.Is(err, fs.ErrInvalid):
		kind = ErrInvalidPath
	}

	native := err.Error()
	var perr *fs.PathError
	if errors.As(err, &perr) {
		native = perr.Err.Error()
	}

	return &PathError{Op: op, Path: path, Err: kind, Native: native}
}
