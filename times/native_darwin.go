//go:build darwin

package times

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// darwinAccessor goes through getattrlist(2)/setattrlist(2) restricted
// to ATTR_CMN_MODTIME, so access and creation times are untouched by
// construction. Attribute buffers are packed little-endian: the read
// buffer is a u_int32 total length followed by a struct timespec, the
// write buffer is the timespec alone.
type darwinAccessor struct{}

func newNativeAccessor() (Accessor, bool) {
	return darwinAccessor{}, true
}

const timespecSize = 16 // two 64-bit fields on darwin

func modtimeAttrs() unix.Attrlist {
	return unix.Attrlist{
		Bitmapcount: unix.ATTR_BIT_MAP_COUNT,
		Commonattr:  unix.ATTR_CMN_MODTIME,
	}
}

func (darwinAccessor) ReadTime(path string) (NativeTime, error) {
	attrs := modtimeAttrs()

	var buf [4 + timespecSize]byte
	if err := unix.Getattrlist(path, &attrs, buf[:], 0); err != nil {
		return NativeTime{}, mapNative("getattrlist", path, err)
	}

	return NativeTime{
		Sec:  int64(binary.LittleEndian.Uint64(buf[4:12])),
		Nsec: int64(binary.LittleEndian.Uint64(buf[12:20])),
	}, nil
}

func (darwinAccessor) WriteTime(path string, t NativeTime) error {
	attrs := modtimeAttrs()

	var buf [timespecSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(t.Sec))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(t.Nsec))

	if err := unix.Setattrlist(path, &attrs, buf[:], 0); err != nil {
		return mapNative("setattrlist", path, err)
	}
	return nil
}

func (a darwinAccessor) CopyTime(from, to string) error {
	t, err := a.ReadTime(from)
	if err != nil {
		return err
	}
	return a.WriteTime(to, t)
}
