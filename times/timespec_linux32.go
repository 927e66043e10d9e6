//go:build linux && (386 || arm || mips || mipsle)

package times

import "golang.org/x/sys/unix"

// The 32-bit kernel ABI carries time_t and long as 32-bit fields. Every
// modification time of practical interest fits; a value that does not is
// a programming error, so the narrowing is unchecked.
func setTimespec(t NativeTime) unix.Timespec {
	return unix.Timespec{Sec: int32(t.Sec), Nsec: int32(t.Nsec)}
}

func nativeTimespec(ts unix.Timespec) NativeTime {
	return NativeTime{Sec: int64(ts.Sec), Nsec: int64(ts.Nsec)}
}
