// Package times reads, writes, and copies file modification times with
// sub-second precision.
//
// Coarse, second-granularity timestamps merge rapid successive edits into
// a single apparent change, which breaks tools that compare modification
// times to decide whether a file needs reprocessing. This package goes
// through the platform's native time facilities (utimensat on Linux,
// attribute lists on macOS, file-time handles on Windows) so that the
// sub-second component survives a round trip, and falls back to ordinary
// millisecond file metadata calls on everything else.
package times

import "time"

// Timestamp is a count of milliseconds since the Unix epoch. Values may
// be negative for times before 1970. Timestamps are always UTC offsets;
// no timezone is attached.
type Timestamp int64

// NativeTime is a modification time in the platform's native form: whole
// seconds since the Unix epoch plus a nanosecond remainder. A decoded
// NativeTime always satisfies 0 <= Nsec < 1e9.
type NativeTime struct {
	Sec  int64
	Nsec int64
}

// Time converts t into a time.Time in the local location.
func (t NativeTime) Time() time.Time {
	return time.Unix(t.Sec, t.Nsec)
}

// Accessor reads and writes a file's modification time in the platform's
// native representation. Implementations perform no retries; every native
// failure is mapped to one of this package's error kinds and returned
// immediately.
type Accessor interface {
	ReadTime(path string) (NativeTime, error)
	WriteTime(path string, t NativeTime) error
	CopyTime(from, to string) error
}

// Times is an immutable binding of the public API to a single Accessor,
// produced once by Select. It is safe for concurrent use; the binding
// never changes after construction.
type Times struct {
	accessor Accessor
	native   bool
}

// Native reports whether the binding went to a platform-native accessor
// rather than the portable millisecond fallback.
func (t *Times) Native() bool {
	return t.native
}

// ModTime returns the modification time of the named file, truncated to
// milliseconds.
func (t *Times) ModTime(path string) (Timestamp, error) {
	nt, err := t.accessor.ReadTime(path)
	if err != nil {
		return 0, err
	}
	return NativeToMillis(nt), nil
}

// NativeModTime returns the modification time of the named file at full
// native resolution.
func (t *Times) NativeModTime(path string) (NativeTime, error) {
	return t.accessor.ReadTime(path)
}

// SetModTime sets the modification time of the named file. Only the
// modification time is touched; access and creation times are left as
// they are.
func (t *Times) SetModTime(path string, ms Timestamp) error {
	return t.accessor.WriteTime(path, MillisToNative(ms))
}

// CopyModTime applies the modification time of from to the file named by
// to. The time is carried in native representation, so resolution beyond
// a millisecond is preserved.
func (t *Times) CopyModTime(from, to string) error {
	return t.accessor.CopyTime(from, to)
}
