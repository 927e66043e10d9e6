// Package snapshot records the state of a file tree as (path, native
// modification time, size, checksum) entries, so a later pass can tell
// which files changed. Modification times are kept at full native
// resolution; two edits within the same second still compare unequal.
package snapshot

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"

	"github.com/snksoft/crc"

	"github.com/I-Am-Dench/filetimes/times"
)

// Crc is the checksum parameterization for entry contents.
var Crc = crc.NewTable(&crc.Parameters{
	Width:      32,
	Polynomial: 0x04c11db7,
	Init:       0xffffffff,
})

var entryPattern = regexp.MustCompile(`^([^,]+),(-?[0-9]+)\.([0-9]{9}),([0-9]+),([0-9a-fA-F]+)$`)

const (
	fieldPath = iota + 1
	fieldSeconds
	fieldNanoseconds
	fieldSize
	fieldChecksum
)

// File type: txt
//
// A snapshot file stores one comma-separated entry per line:
//
//	%s,%d.%09d,%d,%08x
//
// With these values for each recorded file:
//  1. The slash-separated relative path
//  2. The modification time seconds (may be negative)
//  3. The modification time nanoseconds (padded to 9 digits)
//  4. The size of the file
//  5. The crc32 of the file's contents
type Entry struct {
	path     string
	modTime  times.NativeTime
	size     int64
	checksum uint32
}

func NewEntry(path string, modTime times.NativeTime, size int64, checksum uint32) *Entry {
	return &Entry{
		path:     filepath.ToSlash(path),
		modTime:  modTime,
		size:     size,
		checksum: checksum,
	}
}

func (e *Entry) Path() string {
	return e.path
}

// SysPath returns the entry's path in the host's separator convention.
func (e *Entry) SysPath() string {
	return filepath.FromSlash(e.path)
}

func (e *Entry) ModTime() times.NativeTime {
	return e.modTime
}

func (e *Entry) Size() int64 {
	return e.size
}

func (e *Entry) Checksum() uint32 {
	return e.checksum
}

func (e *Entry) MarshalText() ([]byte, error) {
	return fmt.Appendf([]byte{}, "%s,%d.%09d,%d,%08x\n", e.path, e.modTime.Sec, e.modTime.Nsec, e.size, e.checksum), nil
}

func (e *Entry) UnmarshalText(text []byte) error {
	text = bytes.TrimSpace(text)

	matches := entryPattern.FindSubmatch(text)
	if matches == nil {
		return fmt.Errorf("snapshot: malformed line: %s", string(text))
	}

	seconds, err := strconv.ParseInt(string(matches[fieldSeconds]), 10, 64)
	if err != nil {
		return fmt.Errorf("snapshot: parse mod time: %v", err)
	}

	nanoseconds, err := strconv.ParseInt(string(matches[fieldNanoseconds]), 10, 64)
	if err != nil {
		return fmt.Errorf("snapshot: parse mod time: %v", err)
	}

	size, _ := strconv.ParseInt(string(matches[fieldSize]), 10, 64)
	checksum, _ := strconv.ParseUint(string(matches[fieldChecksum]), 16, 32)

	e.path = string(matches[fieldPath])
	e.modTime = times.NativeTime{Sec: seconds, Nsec: nanoseconds}
	e.size = size
	e.checksum = uint32(checksum)

	return nil
}

// Check re-reads the file's modification time through the bound accessor
// and its size, and reports ErrMismatchedEntry when either moved. The
// comparison is on native times, so a sub-second edit is a mismatch.
func (e *Entry) Check(t *times.Times, root string) error {
	name := filepath.Join(root, e.SysPath())

	stat, err := os.Stat(name)
	if err != nil {
		return fmt.Errorf("snapshot: check: %w", err)
	}

	modTime, err := t.NativeModTime(name)
	if err != nil {
		return fmt.Errorf("snapshot: check: %w", err)
	}

	if modTime != e.modTime || stat.Size() != e.size {
		return fmt.Errorf("%w: (expected: %d.%09d,%d) != (actual: %d.%09d,%d)",
			ErrMismatchedEntry, e.modTime.Sec, e.modTime.Nsec, e.size, modTime.Sec, modTime.Nsec, stat.Size())
	}

	return nil
}

// Verify recomputes the checksum of the entry's contents and reports
// ErrMismatchedChecksum when it no longer matches.
func (e *Entry) Verify(root string) error {
	file, err := os.Open(filepath.Join(root, e.SysPath()))
	if err != nil {
		return fmt.Errorf("snapshot: verify: %w", err)
	}
	defer file.Close()

	hash := crc.NewHashWithTable(Crc)
	if _, err := io.Copy(hash, file); err != nil {
		return fmt.Errorf("snapshot: verify: %w", err)
	}

	if hash.CRC32() != e.checksum {
		return fmt.Errorf("%w: (expected: %08x) != (actual: %08x)", ErrMismatchedChecksum, e.checksum, hash.CRC32())
	}

	return nil
}

// Scan builds an entry for the file at path relative to root, reading
// its modification time through the bound accessor.
func Scan(t *times.Times, root, path string) (*Entry, error) {
	name := filepath.Join(root, path)

	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("snapshot: scan: %w", err)
	}
	defer file.Close()

	hash := crc.NewHashWithTable(Crc)
	size, err := io.Copy(hash, file)
	if err != nil {
		return nil, fmt.Errorf("snapshot: scan: %w", err)
	}

	modTime, err := t.NativeModTime(name)
	if err != nil {
		return nil, fmt.Errorf("snapshot: scan: %w", err)
	}

	return &Entry{
		path:     filepath.ToSlash(path),
		modTime:  modTime,
		size:     size,
		checksum: hash.CRC32(),
	}, nil
}

type RangeFunc = func(e *Entry) bool

type Snapshot struct {
	sm sync.Map

	f *os.File
}

func (s *Snapshot) Put(e *Entry) {
	s.sm.Store(e.path, e)
}

func (s *Snapshot) Get(path string) (*Entry, bool) {
	v, ok := s.sm.Load(filepath.ToSlash(path))
	if !ok {
		return nil, false
	}
	return v.(*Entry), true
}

func (s *Snapshot) ForEach(f RangeFunc) {
	s.sm.Range(func(key, value any) bool {
		return f(value.(*Entry))
	})
}

func (s *Snapshot) Len() (length int) {
	s.sm.Range(func(key, value any) bool {
		length++
		return true
	})
	return length
}

// Creates a [*Snapshot] from the entries scanned from the provided
// [io.Reader]. Read immediately returns an error if it fails to scan a
// line or parse an entry.
func Read(r io.Reader) (*Snapshot, error) {
	scanner := bufio.NewScanner(r)

	s := &Snapshot{}
	for scanner.Scan() {
		e := &Entry{}
		if err := e.UnmarshalText(scanner.Bytes()); err != nil {
			return nil, fmt.Errorf("snapshot: read: %v", err)
		}
		s.Put(e)
	}

	if scanner.Err() != nil {
		return nil, fmt.Errorf("snapshot: read: %v", scanner.Err())
	}

	return s, nil
}

// Writes the snapshot's entries to the provided [io.Writer].
func (s *Snapshot) WriteTo(w io.Writer) (n int64, err error) {
	written := int64(0)
	s.sm.Range(func(key, value any) bool {
		e := value.(*Entry)
		text, _ := e.MarshalText()

		var m int
		m, err = w.Write(text)
		written += int64(m)
		return err == nil
	})

	if err != nil {
		return written, fmt.Errorf("snapshot: write: %v", err)
	}

	return written, nil
}

// Writes a [*Snapshot]'s entries to the provided [io.Writer].
func Write(w io.Writer, s *Snapshot) error {
	_, err := s.WriteTo(w)
	return err
}

// Creates a [*Snapshot] from the entries scanned from the named file.
func ReadFile(name string) (*Snapshot, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Writes a [*Snapshot]'s entries to the named file.
func WriteFile(name string, s *Snapshot) error {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("snapshot: write: %w", err)
	}
	defer file.Close()

	return Write(file, s)
}

// Opens the named snapshot file, creating it if necessary, and reads
// any existing entries. A snapshot opened this way holds the file until
// Close, which flushes the entries back before releasing it.
func Open(name string) (*Snapshot, error) {
	file, err := os.OpenFile(name, os.O_CREATE|os.O_RDWR, 0755)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open: %w", err)
	}

	s, err := Read(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	s.f = file

	return s, nil
}

// Writes the snapshot's entries, in their entirety, to the underlying
// backing file, truncating any leftover tail from a previous flush.
func (s *Snapshot) Flush() error {
	stat, err := s.f.Stat()
	if err != nil {
		return fmt.Errorf("snapshot: flush: %w", err)
	}

	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("snapshot: flush: %w", err)
	}

	written, err := s.WriteTo(s.f)
	if err != nil {
		return fmt.Errorf("snapshot: flush: %v", err)
	}

	if written < stat.Size() {
		if err := s.f.Truncate(written); err != nil {
			return fmt.Errorf("snapshot: flush: %w", err)
		}
	}

	return nil
}

// Flushes the snapshot's entries to the underlying backing file and
// then closes the file. Close is a no-op for snapshots without one.
func (s *Snapshot) Close() error {
	if s.f == nil {
		return nil
	}

	if err := s.Flush(); err != nil {
		s.f.Close()
		return err
	}

	return s.f.Close()
}
