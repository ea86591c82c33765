package ecckd

import (
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/davecgh/go-spew/spew"
)

// TestEncodeDecodeRoundTrip ensures decoding an encoded key yields the same
// key and version for both curves and all versions.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	secp := testMaster(t, testVec3MasterHex, Secp256k1)
	secpChild, err := secp.DerivePath("m/84'/0'/0'/1/3")
	if err != nil {
		t.Fatalf("DerivePath: unexpected error: %v", err)
	}
	ed := testMaster(t, testVec1MasterHex, Ed25519)
	edChild, err := ed.DerivePath("m/44'/501'/0'")
	if err != nil {
		t.Fatalf("DerivePath: unexpected error: %v", err)
	}

	for _, key := range []*ExtendedKey{secp, secpChild, ed, edChild} {
		for _, v := range Versions() {
			want := key
			if v.IsPublic() {
				want = key.Public()
			}

			s, err := key.Encode(v)
			if err != nil {
				t.Errorf("Encode %v: unexpected error: %v", v, err)
				continue
			}
			got, gotVersion, err := DecodeCurve(s, key.Curve())
			if err != nil {
				t.Errorf("DecodeCurve %v: unexpected error: %v", v, err)
				continue
			}
			if gotVersion != v {
				t.Errorf("DecodeCurve: version -- got %v, want %v",
					gotVersion, v)
			}
			if !got.Equal(want) {
				t.Errorf("DecodeCurve %v: mismatched key\ngot: %s\n"+
					"want: %s", v, spew.Sdump(got), spew.Sdump(want))
			}
		}
	}
}

// TestDecodeErrors ensures each kind of corruption is reported with its own
// error kind.
func TestDecodeErrors(t *testing.T) {
	master := testMaster(t, testVec1MasterHex, Secp256k1)
	child, err := master.DerivePath("m/0'")
	if err != nil {
		t.Fatalf("DerivePath: unexpected error: %v", err)
	}
	valid, err := child.MarshalBinary(Xprv)
	if err != nil {
		t.Fatalf("MarshalBinary: unexpected error: %v", err)
	}

	// withChecksum replaces the payload checksum so the corruption under
	// test is the only one.
	withChecksum := func(payload []byte) string {
		payload = payload[:serializedKeyLen:serializedKeyLen]
		return base58.Encode(append(payload, checksum(payload)...))
	}
	mutate := func(f func(b []byte)) []byte {
		b := cloneBytes(valid)
		f(b)
		return b
	}

	tests := []struct {
		name    string
		in      string
		wantErr error
	}{{
		name:    "bit flip in checksum",
		in:      base58.Encode(mutate(func(b []byte) { b[len(b)-1] ^= 0x01 })),
		wantErr: ErrChecksumMismatch,
	}, {
		name:    "bit flip in chain code",
		in:      base58.Encode(mutate(func(b []byte) { b[20] ^= 0x80 })),
		wantErr: ErrChecksumMismatch,
	}, {
		name:    "truncated",
		in:      base58.Encode(valid[:len(valid)-1]),
		wantErr: ErrMalformedPayload,
	}, {
		name:    "extended",
		in:      base58.Encode(append(cloneBytes(valid), 0)),
		wantErr: ErrMalformedPayload,
	}, {
		name:    "empty",
		in:      "",
		wantErr: ErrMalformedPayload,
	}, {
		name:    "not base58",
		in:      "xprv0OIl",
		wantErr: ErrMalformedPayload,
	}, {
		name: "unknown version",
		in: withChecksum(mutate(func(b []byte) {
			copy(b, []byte{0x02, 0xfa, 0xc3, 0x98})
		})),
		wantErr: ErrUnknownVersion,
	}, {
		name: "private version with public key data",
		in: withChecksum(mutate(func(b []byte) {
			b[45] = 0x02
		})),
		wantErr: ErrMalformedPayload,
	}, {
		name: "private key out of range",
		in: withChecksum(mutate(func(b []byte) {
			for i := 46; i < 78; i++ {
				b[i] = 0xff
			}
		})),
		wantErr: ErrMalformedPayload,
	}, {
		name: "root key with parent fingerprint",
		in: withChecksum(mutate(func(b []byte) {
			b[4] = 0
		})),
		wantErr: ErrMalformedPayload,
	}}

	for _, test := range tests {
		_, _, err := Decode(test.in)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("%s: mismatched error -- got: %v, want: %v",
				test.name, err, test.wantErr)
		}
	}
}

// TestEncodeErrors ensures a key cannot be serialized with a version it cannot
// fill.
func TestEncodeErrors(t *testing.T) {
	pub := testMaster(t, testVec1MasterHex, Secp256k1).Public()

	for _, v := range Versions() {
		_, err := pub.Encode(v)
		switch {
		case v.IsPrivate() && !errors.Is(err, ErrNoPrivateMaterial):
			t.Errorf("%s: mismatched error -- got: %v, want: %v", v,
				err, ErrNoPrivateMaterial)
		case v.IsPublic() && err != nil:
			t.Errorf("%s: unexpected error: %v", v, err)
		}
	}

	if _, err := pub.Encode(nil); !errors.Is(err, ErrUnknownVersion) {
		t.Errorf("nil version: mismatched error -- got: %v, want: %v",
			err, ErrUnknownVersion)
	}
}

// TestStringUsesBitcoinVersions ensures String serializes with xprv/xpub.
func TestStringUsesBitcoinVersions(t *testing.T) {
	master := testMaster(t, testVec1MasterHex, Secp256k1)
	want := "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
	if got := master.String(); got != want {
		t.Errorf("private: got %s, want %s", got, want)
	}
	want = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"
	if got := master.Public().String(); got != want {
		t.Errorf("public: got %s, want %s", got, want)
	}
}
