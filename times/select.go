package times

import (
	"os"
	"sync"
)

// PortableEnv, when set to "1" in the environment, forces the portable
// millisecond strategy even where a native accessor exists.
const PortableEnv = "FILETIMES_PORTABLE"

type Option func(*selection)

type selection struct {
	portable bool
}

// WithPortable binds the portable strategy regardless of platform. Hosts
// whose runtime already delivers the precision they need use this to opt
// out of native call sequences without touching the environment.
func WithPortable() Option {
	return func(s *selection) {
		s.portable = true
	}
}

// Select inspects the process environment once and binds the returned
// Times to exactly one accessor. Decision order: an explicit override
// (option or PortableEnv) binds the portable fallback; otherwise the
// accessor compiled in for the current OS and architecture is bound;
// platforms with no native accessor get the fallback. The result is
// immutable, and repeated calls under the same environment always bind
// the same strategy.
func Select(opts ...Option) *Times {
	var s selection
	for _, opt := range opts {
		opt(&s)
	}

	if s.portable || os.Getenv(PortableEnv) == "1" {
		return &Times{accessor: portableAccessor{}}
	}

	accessor, ok := newNativeAccessor()
	if !ok {
		return &Times{accessor: portableAccessor{}}
	}

	return &Times{accessor: accessor, native: true}
}

var defaultTimes = sync.OnceValue(func() *Times {
	return Select()
})

// Default returns the process-wide binding, computed on first use and
// never reassigned.
func Default() *Times {
	return defaultTimes()
}

// ModTime reads the named file's modification time through the default
// binding.
func ModTime(path string) (Timestamp, error) {
	return Default().ModTime(path)
}

// SetModTime sets the named file's modification time through the default
// binding.
func SetModTime(path string, ms Timestamp) error {
	return Default().SetModTime(path, ms)
}

// CopyModTime copies a modification time between files through the
// default binding.
func CopyModTime(from, to string) error {
	return Default().CopyModTime(from, to)
}
