//go:build linux && (amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x)

package times

import "golang.org/x/sys/unix"

func setTimespec(t NativeTime) unix.Timespec {
	return unix.Timespec{Sec: t.Sec, Nsec: t.Nsec}
}

func nativeTimespec(ts unix.Timespec) NativeTime {
	return NativeTime{Sec: ts.Sec, Nsec: ts.Nsec}
}
