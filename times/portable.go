package times

import (
	"os"
	"time"
)

// portableAccessor is the strategy of last resort: ordinary file
// metadata calls with no native sequences behind them. Resolution is
// whatever os.Stat and os.Chtimes deliver, truncated to milliseconds.
type portableAccessor struct{}

func (portableAccessor) ReadTime(path string) (NativeTime, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return NativeTime{}, mapOSError("stat", path, err)
	}
	return MillisToNative(Timestamp(stat.ModTime().UnixMilli())), nil
}

func (portableAccessor) WriteTime(path string, t NativeTime) error {
	mtime := time.UnixMilli(int64(NativeToMillis(t)))

	// A zero atime tells os.Chtimes to leave the access time alone.
	if err := os.Chtimes(path, time.Time{}, mtime); err != nil {
		return mapOSError("chtimes", path, err)
	}
	return nil
}

func (a portableAccessor) CopyTime(from, to string) error {
	t, err := a.ReadTime(from)
	if err != nil {
		return err
	}
	return a.WriteTime(to, t)
}
