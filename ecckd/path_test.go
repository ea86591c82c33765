package ecckd

import (
	"errors"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// TestParsePath ensures the path grammar is parsed as expected.
func TestParsePath(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		want       Path
		wantString string
	}{{
		name:       "root only",
		path:       "m",
		want:       Path{},
		wantString: "m",
	}, {
		name: "bip44 account",
		path: "m/44'/0'/0'",
		want: Path{
			{Index: 44, Hardened: true},
			{Index: 0, Hardened: true},
			{Index: 0, Hardened: true},
		},
		wantString: "m/44'/0'/0'",
	}, {
		name: "relative path",
		path: "0/5",
		want: Path{
			{Index: 0},
			{Index: 5},
		},
		wantString: "m/0/5",
	}, {
		name: "h and H suffixes",
		path: "m/84h/1H/2",
		want: Path{
			{Index: 84, Hardened: true},
			{Index: 1, Hardened: true},
			{Index: 2},
		},
		wantString: "m/84'/1'/2",
	}, {
		name: "largest index",
		path: "m/2147483647'/2147483647",
		want: Path{
			{Index: MaxIndex, Hardened: true},
			{Index: MaxIndex},
		},
		wantString: "m/2147483647'/2147483647",
	}}

	for _, test := range tests {
		got, err := ParsePath(test.path)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: mismatched path\ngot: %s\nwant: %s", test.name,
				spew.Sdump(got), spew.Sdump(test.want))
			continue
		}
		if got.String() != test.wantString {
			t.Errorf("%s: mismatched string -- got %s, want %s",
				test.name, got.String(), test.wantString)
		}
	}
}

// TestParsePathErrors ensures malformed paths are rejected with
// ErrInvalidPathSegment.
func TestParsePathErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"trailing slash", "m/0/"},
		{"root with slash", "m/"},
		{"double slash", "m//1"},
		{"index too large", "m/2147483648"},
		{"hardened index too large", "m/2147483648'"},
		{"overflows uint32", "m/99999999999"},
		{"not a number", "m/abc"},
		{"sign", "m/-1"},
		{"plus sign", "m/+1"},
		{"suffix only", "m/'"},
		{"double suffix", "m/1''"},
		{"inner m", "m/0/m"},
		{"spaces", "m/ 1"},
	}

	for _, test := range tests {
		_, err := ParsePath(test.path)
		if !errors.Is(err, ErrInvalidPathSegment) {
			t.Errorf("%s: mismatched error -- got: %v, want: %v",
				test.name, err, ErrInvalidPathSegment)
		}
	}
}

// TestPathIndices ensures conversions between steps and serialized child
// numbers are consistent.
func TestPathIndices(t *testing.T) {
	indices := []uint32{HardenedKeyStart + 49, HardenedKeyStart, 1, 0}
	p := PathFromIndices(indices...)
	if p.String() != "m/49'/0'/1/0" {
		t.Fatalf("mismatched path -- got %s", p)
	}
	if !reflect.DeepEqual(p.Indices(), indices) {
		t.Fatalf("mismatched indices -- got %v, want %v", p.Indices(),
			indices)
	}

	parsed, err := ParsePath(p.String())
	if err != nil {
		t.Fatalf("ParsePath: unexpected error: %v", err)
	}
	if !reflect.DeepEqual(parsed, p) {
		t.Fatalf("path does not survive a string round trip")
	}
}

// TestPathComposition ensures deriving a path in two parts equals deriving it
// at once.
func TestPathComposition(t *testing.T) {
	master := testMaster(t, testVec1MasterHex, Secp256k1)

	whole, err := master.DerivePath("m/44'/0'/0'/1/9")
	if err != nil {
		t.Fatalf("DerivePath: unexpected error: %v", err)
	}

	account, err := master.DerivePath("m/44'/0'/0'")
	if err != nil {
		t.Fatalf("DerivePath: unexpected error: %v", err)
	}
	parts, err := account.DerivePath("1/9")
	if err != nil {
		t.Fatalf("DerivePath: unexpected error: %v", err)
	}
	if !whole.Equal(parts) {
		t.Fatalf("composition mismatch\nwhole: %s\nparts: %s",
			spew.Sdump(whole), spew.Sdump(parts))
	}

	// The empty path is the identity.
	same, err := whole.DerivePath("m")
	if err != nil {
		t.Fatalf("DerivePath: unexpected error: %v", err)
	}
	if same != whole {
		t.Fatalf("empty path did not return the receiver")
	}
}
