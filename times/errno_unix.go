//go:build linux || darwin

package times

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// mapNative classifies a raw errno from a native call. The errno's own
// strerror text travels with the error so operators can diagnose
// permission or filesystem problems from the message alone.
func mapNative(op, path string, err error) error {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return &PathError{Op: op, Path: path, Err: ErrNativeFailure, Native: err.Error()}
	}

	kind := ErrNativeFailure
	switch errno {
	case unix.ENOENT:
		kind = ErrNotFound
	case unix.EACCES, unix.EPERM:
		kind = ErrAccessDenied
	case unix.ENOTDIR, unix.ENAMETOOLONG, unix.ELOOP, unix.EINVAL:
		kind = ErrInvalidPath
	}

	return &PathError{Op: op, Path: path, Err: kind, Native: errno.Error()}
}
