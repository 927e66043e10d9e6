//go:build linux

package times

import "golang.org/x/sys/unix"

// linuxAccessor reads modification times with stat(2) and writes them
// with utimensat(2). The access-time slot is filled with UTIME_OMIT so
// only the modification time ever changes. Timespec construction is
// split into per-architecture files because the kernel ABI carries
// 32-bit time fields on 386/arm and 64-bit fields everywhere else.
type linuxAccessor struct{}

func newNativeAccessor() (Accessor, bool) {
	return linuxAccessor{}, true
}

func (linuxAccessor) ReadTime(path string) (NativeTime, error) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return NativeTime{}, mapNative("stat", path, err)
	}
	return nativeTimespec(stat.Mtim), nil
}

func (linuxAccessor) WriteTime(path string, t NativeTime) error {
	ts := []unix.Timespec{
		{Nsec: unix.UTIME_OMIT},
		setTimespec(t),
	}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, path, ts, 0); err != nil {
		return mapNative("utimensat", path, err)
	}
	return nil
}

func (a linuxAccessor) CopyTime(from, to string) error {
	t, err := a.ReadTime(from)
	if err != nil {
		return err
	}
	return a.WriteTime(to, t)
}
