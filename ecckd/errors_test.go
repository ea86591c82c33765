package ecckd

import (
	"errors"
	"testing"
)

// TestErrorKindStringer tests the stringized output for the ErrorKind type.
func TestErrorKindStringer(t *testing.T) {
	tests := []struct {
		in   ErrorKind
		want string
	}{
		{ErrUnsupportedDerivation, "ErrUnsupportedDerivation"},
		{ErrInvalidPathSegment, "ErrInvalidPathSegment"},
		{ErrDepthOverflow, "ErrDepthOverflow"},
		{ErrNoPrivateMaterial, "ErrNoPrivateMaterial"},
		{ErrUnknownVersion, "ErrUnknownVersion"},
		{ErrChecksumMismatch, "ErrChecksumMismatch"},
		{ErrMalformedPayload, "ErrMalformedPayload"},
		{ErrDegenerateChildKey, "ErrDegenerateChildKey"},
		{ErrInvalidSeed, "ErrInvalidSeed"},
		{ErrInvalidKey, "ErrInvalidKey"},
		{ErrInvalidIndexRange, "ErrInvalidIndexRange"},
		{ErrUnknownPurpose, "ErrUnknownPurpose"},
	}

	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("#%d: got: %s want: %s", i, result, test.want)
			continue
		}
	}
}

// TestError tests the error output for the Error type.
func TestError(t *testing.T) {
	tests := []struct {
		in   Error
		want string
	}{{
		Error{Description: "some error"},
		"some error",
	}, {
		Error{Description: "human-readable error"},
		"human-readable error",
	}}

	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("#%d: got: %s want: %s", i, result, test.want)
			continue
		}
	}
}

// TestErrorKindIsAs ensures ErrorKind, Error and PathError can be identified
// as being a specific error kind via errors.Is and unwrapped via errors.As.
func TestErrorKindIsAs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
		wantAs    ErrorKind
	}{{
		name:      "ErrDepthOverflow == ErrDepthOverflow",
		err:       ErrDepthOverflow,
		target:    ErrDepthOverflow,
		wantMatch: true,
		wantAs:    ErrDepthOverflow,
	}, {
		name:      "Error.ErrDepthOverflow == ErrDepthOverflow",
		err:       makeError(ErrDepthOverflow, ""),
		target:    ErrDepthOverflow,
		wantMatch: true,
		wantAs:    ErrDepthOverflow,
	}, {
		name:      "Error.ErrDepthOverflow == Error.ErrDepthOverflow",
		err:       makeError(ErrDepthOverflow, ""),
		target:    makeError(ErrDepthOverflow, ""),
		wantMatch: true,
		wantAs:    ErrDepthOverflow,
	}, {
		name:      "ErrChecksumMismatch != ErrMalformedPayload",
		err:       ErrChecksumMismatch,
		target:    ErrMalformedPayload,
		wantMatch: false,
		wantAs:    ErrChecksumMismatch,
	}, {
		name:      "Error.ErrChecksumMismatch != ErrMalformedPayload",
		err:       makeError(ErrChecksumMismatch, ""),
		target:    ErrMalformedPayload,
		wantMatch: false,
		wantAs:    ErrChecksumMismatch,
	}, {
		name:      "Error.ErrChecksumMismatch != Error.ErrMalformedPayload",
		err:       makeError(ErrChecksumMismatch, ""),
		target:    makeError(ErrMalformedPayload, ""),
		wantMatch: false,
		wantAs:    ErrChecksumMismatch,
	}, {
		name: "PathError.ErrUnsupportedDerivation == ErrUnsupportedDerivation",
		err: &PathError{
			Step:    2,
			Segment: "3'",
			Err:     makeError(ErrUnsupportedDerivation, ""),
		},
		target:    ErrUnsupportedDerivation,
		wantMatch: true,
		wantAs:    ErrUnsupportedDerivation,
	}, {
		name: "PathError.ErrDepthOverflow != ErrUnsupportedDerivation",
		err: &PathError{
			Step:    0,
			Segment: "0",
			Err:     makeError(ErrDepthOverflow, ""),
		},
		target:    ErrUnsupportedDerivation,
		wantMatch: false,
		wantAs:    ErrDepthOverflow,
	}}

	for _, test := range tests {
		// Ensure the error matches or not depending on the expected result.
		result := errors.Is(test.err, test.target)
		if result != test.wantMatch {
			t.Errorf("%s: incorrect error identification -- got %v, want %v",
				test.name, result, test.wantMatch)
			continue
		}

		// Ensure the underlying error code can be unwrapped and is the expected
		// code.
		var kind ErrorKind
		if !errors.As(test.err, &kind) {
			t.Errorf("%s: unable to unwrap to error code", test.name)
			continue
		}
		if kind != test.wantAs {
			t.Errorf("%s: unexpected unwrapped error code -- got %v, want %v",
				test.name, kind, test.wantAs)
			continue
		}
	}
}
