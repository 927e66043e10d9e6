package times_test

import (
	"os"
	"testing"

	"github.com/I-Am-Dench/filetimes/times"
)

func TestDiagnoseResolution(t *testing.T) {
	tt := times.Select()
	dir := t.TempDir()

	message, err := tt.DiagnoseResolution(dir)
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if message != "" {
		t.Errorf("expected sub-second resolution to be confirmed: %s", message)
	}

	t.Log("-- test: probe file removed")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty directory but found %d entries", len(entries))
	}
}

func TestDiagnosePortableSkips(t *testing.T) {
	tt := times.Select(times.WithPortable())

	// The portable strategy never touches the directory; even an
	// unusable one confirms trivially.
	message, err := tt.DiagnoseResolution("this-directory-does-not-exist")
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if message != "" {
		t.Errorf("expected trivial confirmation: %s", message)
	}
}
