//go:build windows

package times

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

// windowsAccessor opens a handle per operation: backup semantics so
// directories and reparse points are reachable, only the attribute
// access right the operation needs, and full sharing so other processes
// can keep reading, writing, or deleting the file. The handle is closed
// on every exit path; a close failure surfaces as its own error even
// when the file-time call itself succeeded.
type windowsAccessor struct{}

func newNativeAccessor() (Accessor, bool) {
	return windowsAccessor{}, true
}

const shareAll = windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE | windows.FILE_SHARE_DELETE

func mapNative(op, path string, err error) error {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return &PathError{Op: op, Path: path, Err: ErrNativeFailure, Native: err.Error()}
	}

	kind := ErrNativeFailure
	switch errno {
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND:
		kind = ErrNotFound
	case windows.ERROR_ACCESS_DENIED:
		kind = ErrAccessDenied
	case windows.ERROR_INVALID_NAME, windows.ERROR_BAD_PATHNAME, windows.ERROR_DIRECTORY:
		kind = ErrInvalidPath
	}

	return &PathError{Op: op, Path: path, Err: kind, Native: errno.Error()}
}

func openAttr(path string, access uint32) (windows.Handle, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return windows.InvalidHandle, &PathError{Op: "open", Path: path, Err: ErrInvalidPath, Native: err.Error()}
	}

	h, err := windows.CreateFile(p, access, shareAll, nil,
		windows.OPEN_EXISTING, windows.FILE_FLAG_BACKUP_SEMANTICS, 0)
	if err != nil {
		return windows.InvalidHandle, mapNative("CreateFile", path, err)
	}
	return h, nil
}

func filetimeToNative(ft windows.Filetime) NativeTime {
	ns := ft.Nanoseconds()
	sec := floorDiv(ns, nanosPerSecond)
	return NativeTime{Sec: sec, Nsec: ns - sec*nanosPerSecond}
}

func nativeToFiletime(t NativeTime) windows.Filetime {
	return windows.NsecToFiletime(t.Sec*nanosPerSecond + t.Nsec)
}

func (windowsAccessor) ReadTime(path string) (NativeTime, error) {
	h, err := openAttr(path, windows.FILE_READ_ATTRIBUTES)
	if err != nil {
		return NativeTime{}, err
	}

	var mtime windows.Filetime
	terr := windows.GetFileTime(h, nil, nil, &mtime)
	cerr := windows.CloseHandle(h)

	if terr != nil {
		return NativeTime{}, mapNative("GetFileTime", path, terr)
	}
	if cerr != nil {
		return NativeTime{}, mapNative("CloseHandle", path, cerr)
	}
	return filetimeToNative(mtime), nil
}

func (windowsAccessor) WriteTime(path string, t NativeTime) error {
	h, err := openAttr(path, windows.FILE_WRITE_ATTRIBUTES)
	if err != nil {
		return err
	}

	mtime := nativeToFiletime(t)
	terr := windows.SetFileTime(h, nil, nil, &mtime)
	cerr := windows.CloseHandle(h)

	if terr != nil {
		return mapNative("SetFileTime", path, terr)
	}
	if cerr != nil {
		return mapNative("CloseHandle", path, cerr)
	}
	return nil
}

func (a windowsAccessor) CopyTime(from, to string) error {
	t, err := a.ReadTime(from)
	if err != nil {
		return err
	}
	return a.WriteTime(to, t)
}
