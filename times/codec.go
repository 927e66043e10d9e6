package times

const (
	millisPerSecond = 1000
	nanosPerMilli   = 1_000_000
	nanosPerSecond  = 1_000_000_000
)

// floorDiv divides a by b rounding toward negative infinity. b must be
// positive.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// MillisToNative splits a millisecond timestamp into whole seconds and a
// nanosecond remainder. The division floors, so negative timestamps still
// decode to a remainder in [0, 1e9). Sub-millisecond precision cannot be
// present in the input and none is invented.
func MillisToNative(ms Timestamp) NativeTime {
	sec := floorDiv(int64(ms), millisPerSecond)
	return NativeTime{
		Sec:  sec,
		Nsec: (int64(ms) - sec*millisPerSecond) * nanosPerMilli,
	}
}

// NativeToMillis truncates a native second/nanosecond pair to
// milliseconds, discarding anything below millisecond granularity.
// NativeToMillis(MillisToNative(ms)) == ms for every representable ms.
func NativeToMillis(t NativeTime) Timestamp {
	return Timestamp(t.Sec*millisPerSecond + floorDiv(t.Nsec, nanosPerMilli))
}
