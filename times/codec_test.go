package times_test

import (
	"testing"

	"github.com/I-Am-Dench/filetimes/times"
)

func TestCodecRoundTrip(t *testing.T) {
	timestamps := []times.Timestamp{
		0, 1, 999, 1000, 1001,
		-1, -999, -1000, -1001, -1500,
		1729218809315,
		-2208988800000, // 1900-01-01
		253402300799999,
	}

	for _, ms := range timestamps {
		if got := times.NativeToMillis(times.MillisToNative(ms)); got != ms {
			t.Errorf("round trip: expected %d but got %d", ms, got)
		}
	}
}

func TestMillisToNativeFloors(t *testing.T) {
	cases := []struct {
		Millis times.Timestamp
		Native times.NativeTime
	}{
		{0, times.NativeTime{Sec: 0, Nsec: 0}},
		{999, times.NativeTime{Sec: 0, Nsec: 999_000_000}},
		{1500, times.NativeTime{Sec: 1, Nsec: 500_000_000}},
		{-1, times.NativeTime{Sec: -1, Nsec: 999_000_000}},
		{-1000, times.NativeTime{Sec: -1, Nsec: 0}},
		{-1001, times.NativeTime{Sec: -2, Nsec: 999_000_000}},
	}

	for _, c := range cases {
		native := times.MillisToNative(c.Millis)
		if native != c.Native {
			t.Errorf("%d: expected %+v but got %+v", c.Millis, c.Native, native)
		}

		if native.Nsec < 0 || native.Nsec >= 1_000_000_000 {
			t.Errorf("%d: nanoseconds out of range: %d", c.Millis, native.Nsec)
		}
	}
}

func TestNativeToMillisTruncates(t *testing.T) {
	cases := []struct {
		Native times.NativeTime
		Millis times.Timestamp
	}{
		{times.NativeTime{Sec: 0, Nsec: 999}, 0},
		{times.NativeTime{Sec: 0, Nsec: 999_999}, 0},
		{times.NativeTime{Sec: 0, Nsec: 1_000_001}, 1},
		{times.NativeTime{Sec: 1, Nsec: 315_336_400}, 1315},
		{times.NativeTime{Sec: 1729218809, Nsec: 315_336_400}, 1729218809315},
		{times.NativeTime{Sec: -1, Nsec: 999_000_000}, -1},
	}

	for _, c := range cases {
		if got := times.NativeToMillis(c.Native); got != c.Millis {
			t.Errorf("%+v: expected %d but got %d", c.Native, c.Millis, got)
		}
	}
}
