package snapshot_test

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/I-Am-Dench/filetimes/snapshot"
	"github.com/I-Am-Dench/filetimes/times"
)

const NumFiles = 10

type Env struct {
	Dir   string
	Times *times.Times
	Files []string
}

func genData() []byte {
	data := make([]byte, 1024)
	for i := range data {
		data[i] = byte(rand.Int())
	}
	return data
}

func (env *Env) AddFile(name ...string) (string, error) {
	path := fmt.Sprintf("file%02d.txt", len(env.Files))
	if len(name) > 0 {
		path = name[0]
	}

	if err := os.WriteFile(filepath.Join(env.Dir, path), genData(), 0644); err != nil {
		return "", fmt.Errorf("add file: %w", err)
	}

	env.Files = append(env.Files, path)
	return path, nil
}

func (env *Env) Scan() (*snapshot.Snapshot, error) {
	s := &snapshot.Snapshot{}
	for _, path := range env.Files {
		entry, err := snapshot.Scan(env.Times, env.Dir, path)
		if err != nil {
			return nil, err
		}
		s.Put(entry)
	}
	return s, nil
}

func setup(t *testing.T) *Env {
	env := &Env{
		Dir:   t.TempDir(),
		Times: times.Select(),
		Files: []string{},
	}

	for i := 0; i < NumFiles; i++ {
		if _, err := env.AddFile(); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	return env
}

func sortedLines(data []byte) string {
	lines := strings.Split(string(data), "\n")
	slices.Sort(lines)
	return strings.Join(lines, "")
}

func TestSnapshotRoundTrip(t *testing.T) {
	env := setup(t)

	s, err := env.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if s.Len() != NumFiles {
		t.Fatalf("expected %d entries but got %d", NumFiles, s.Len())
	}

	expected := &bytes.Buffer{}
	if err := snapshot.Write(expected, s); err != nil {
		t.Fatalf("write: %v", err)
	}

	read, err := snapshot.Read(bytes.NewReader(expected.Bytes()))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	actual := &bytes.Buffer{}
	if err := snapshot.Write(actual, read); err != nil {
		t.Fatalf("write: %v", err)
	}

	if sortedLines(expected.Bytes()) != sortedLines(actual.Bytes()) {
		t.Errorf("got different snapshot data:\n===EXPECTED===\n%s\n===ACTUAL===\n%s", expected, actual)
	}

	t.Log("-- test: native resolution survives the text format")
	s.ForEach(func(e *snapshot.Entry) bool {
		got, ok := read.Get(e.Path())
		if !ok {
			t.Errorf("%s: missing after round trip", e.Path())
			return true
		}
		if got.ModTime() != e.ModTime() {
			t.Errorf("%s: expected %+v but got %+v", e.Path(), e.ModTime(), got.ModTime())
		}
		return true
	})
}

func TestSnapshotCheck(t *testing.T) {
	env := setup(t)

	s, err := env.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	t.Log("-- test: all entries match")
	s.ForEach(func(e *snapshot.Entry) bool {
		if err := e.Check(env.Times, env.Dir); err != nil {
			t.Errorf("all entries match: %v", err)
		}
		return true
	})

	t.Log("-- test: sub-second edit is a mismatch")
	path := env.Files[0]
	entry, _ := s.Get(path)

	shifted := times.NativeToMillis(entry.ModTime()) + 27
	if err := env.Times.SetModTime(filepath.Join(env.Dir, path), shifted); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := entry.Check(env.Times, env.Dir); !errors.Is(err, snapshot.ErrMismatchedEntry) {
		t.Errorf("expected ErrMismatchedEntry but got %v", err)
	}
}

func TestSnapshotVerify(t *testing.T) {
	env := setup(t)

	s, err := env.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	path := env.Files[0]
	entry, _ := s.Get(path)

	if err := entry.Verify(env.Dir); err != nil {
		t.Fatalf("unmodified contents: %v", err)
	}

	if err := os.WriteFile(filepath.Join(env.Dir, path), []byte("rewritten"), 0644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	if err := entry.Verify(env.Dir); !errors.Is(err, snapshot.ErrMismatchedChecksum) {
		t.Errorf("expected ErrMismatchedChecksum but got %v", err)
	}
}

func TestSnapshotOpenClose(t *testing.T) {
	env := setup(t)
	name := filepath.Join(t.TempDir(), "snapshot.txt")

	s, err := snapshot.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	scanned, err := env.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	scanned.ForEach(func(e *snapshot.Entry) bool {
		s.Put(e)
		return true
	})

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	t.Log("-- test: entries survive the backing file")
	reopened, err := snapshot.Open(name)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	if reopened.Len() != NumFiles {
		t.Errorf("expected %d entries but got %d", NumFiles, reopened.Len())
	}

	t.Log("-- test: close flushes additions")
	path, err := env.AddFile("extra.txt")
	if err != nil {
		t.Fatalf("add file: %v", err)
	}

	entry, err := snapshot.Scan(env.Times, env.Dir, path)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	reopened.Put(entry)
	if err := reopened.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	final, err := snapshot.ReadFile(name)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if final.Len() != NumFiles+1 {
		t.Errorf("expected %d entries but got %d", NumFiles+1, final.Len())
	}
	if _, ok := final.Get(path); !ok {
		t.Errorf("%s: missing after close", path)
	}
}

func TestSnapshotFiles(t *testing.T) {
	env := setup(t)

	s, err := env.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	name := filepath.Join(t.TempDir(), "snapshot.txt")
	if err := snapshot.WriteFile(name, s); err != nil {
		t.Fatalf("write file: %v", err)
	}

	read, err := snapshot.ReadFile(name)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	if read.Len() != s.Len() {
		t.Errorf("expected %d entries but got %d", s.Len(), read.Len())
	}
}
