package ecckd

import (
	"fmt"
)

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrUnsupportedDerivation is returned when the curve of a key does not
	// permit the requested derivation, e.g. a non-hardened child of an
	// ed25519 key, or a hardened child of a public-only key.
	ErrUnsupportedDerivation = ErrorKind("ErrUnsupportedDerivation")

	// ErrInvalidPathSegment is returned when a derivation path string
	// contains a malformed or out of range segment.
	ErrInvalidPathSegment = ErrorKind("ErrInvalidPathSegment")

	// ErrDepthOverflow is returned when a derivation would produce a key
	// deeper than 255 levels.
	ErrDepthOverflow = ErrorKind("ErrDepthOverflow")

	// ErrNoPrivateMaterial is returned when private key material is
	// requested from a public-only key or version.
	ErrNoPrivateMaterial = ErrorKind("ErrNoPrivateMaterial")

	// ErrUnknownVersion is returned when version bytes, a prefix or a
	// purpose/coin/network combination do not match a registry entry.
	ErrUnknownVersion = ErrorKind("ErrUnknownVersion")

	// ErrChecksumMismatch is returned when the checksum of a serialized
	// extended key does not match its payload.
	ErrChecksumMismatch = ErrorKind("ErrChecksumMismatch")

	// ErrMalformedPayload is returned when a serialized extended key has the
	// wrong length or its key data is not well formed.
	ErrMalformedPayload = ErrorKind("ErrMalformedPayload")

	// ErrDegenerateChildKey is returned when no valid child exists between
	// the requested index and the end of the index space.  Single invalid
	// indices are skipped transparently.
	ErrDegenerateChildKey = ErrorKind("ErrDegenerateChildKey")

	// ErrInvalidSeed is returned when a master seed has an invalid length
	// or produces an invalid master key.
	ErrInvalidSeed = ErrorKind("ErrInvalidSeed")

	// ErrInvalidKey is returned when key material or a chain code handed to
	// a constructor is not valid for the curve.
	ErrInvalidKey = ErrorKind("ErrInvalidKey")

	// ErrInvalidIndexRange is returned when a sibling range does not fit the
	// non-hardened index space.
	ErrInvalidIndexRange = ErrorKind("ErrInvalidIndexRange")

	// ErrUnknownPurpose is returned when a BIP43 purpose has no extended
	// key versions.
	ErrUnknownPurpose = ErrorKind("ErrUnknownPurpose")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to extended key derivation or
// serialization.  It has full support for errors.Is and errors.As, so the
// caller can ascertain the specific reason for the error by checking the
// underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// PathError describes the step of a multi-step derivation that failed.  No
// partial result accompanies it.
type PathError struct {
	// Step is the zero based position of the failing step in the path.
	Step int

	// Segment is the textual form of the failing step, e.g. "44'".
	Segment string

	Err error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("derivation step %d (%s): %v", e.Step, e.Segment,
		e.Err)
}

// Unwrap returns the underlying wrapped error.
func (e *PathError) Unwrap() error {
	return e.Err
}
