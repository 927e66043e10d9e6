package times

import (
	"os"
	"runtime"
)

// The diagnostic perturbs a probe file's modification time by this many
// milliseconds. Any filesystem that only stores whole seconds rounds the
// change away, which is exactly what the probe detects.
const diagnoseDeltaMillis = 27

// DiagnoseResolution empirically verifies that the bound strategy
// delivers sub-second modification times on the filesystem backing dir.
// It creates a probe file in dir (never in the system temp location,
// since the target filesystem must match the caller's working area),
// shifts its modification time backwards, and re-reads it.
//
// The returned message is empty when sub-second resolution is confirmed,
// and otherwise names the detected platform with a hint about the likely
// filesystem limitation. A portable binding skips the probe and confirms
// trivially; the caller already opted out of native precision.
//
// The probe file is removed on every path. A removal failure is returned
// as an error and outranks the probe's own verdict, since a leftover
// probe file points at a deeper resource problem.
func (t *Times) DiagnoseResolution(dir string) (string, error) {
	if !t.native {
		return "", nil
	}

	file, err := os.CreateTemp(dir, "filetimes-probe-*")
	if err != nil {
		return "", mapOSError("create", dir, err)
	}
	name := file.Name()
	if err := file.Close(); err != nil {
		os.Remove(name)
		return "", mapOSError("close", name, err)
	}

	message, perr := t.probe(name)

	if err := os.Remove(name); err != nil {
		return "", mapOSError("remove", name, err)
	}

	return message, perr
}

func (t *Times) probe(name string) (string, error) {
	t0, err := t.ModTime(name)
	if err != nil {
		return "", err
	}

	if err := t.SetModTime(name, t0-diagnoseDeltaMillis); err != nil {
		return "", err
	}

	t1, err := t.ModTime(name)
	if err != nil {
		return "", err
	}

	if t1+diagnoseDeltaMillis == t0 {
		return "", nil
	}
	return resolutionHint(), nil
}

func resolutionHint() string {
	switch runtime.GOOS {
	case "linux":
		return "linux: sub-second modification times were not honored; the filesystem may lack sub-second timestamp support (ext2/ext3 or a coarse network mount)"
	case "darwin":
		return "macos: sub-second modification times were not honored; HFS+ volumes store whole seconds only"
	case "windows":
		return "windows: sub-second modification times were not honored; FAT and exFAT volumes round write times to two seconds"
	default:
		return "sub-second modification times were not honored by the filesystem"
	}
}

// DiagnoseResolution runs the resolution probe through the default
// binding.
func DiagnoseResolution(dir string) (string, error) {
	return Default().DiagnoseResolution(dir)
}
