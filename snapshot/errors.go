package snapshot

import "errors"

var (
	ErrMismatchedEntry    = errors.New("snapshot: mismatched entry")
	ErrMismatchedChecksum = errors.New("snapshot: mismatched checksum")
)
