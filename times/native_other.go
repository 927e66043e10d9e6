//go:build !linux && !darwin && !windows

package times

func newNativeAccessor() (Accessor, bool) {
	return nil, false
}
