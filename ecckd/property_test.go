package ecckd

import (
	"testing"

	"pgregory.net/rapid"
)

// drawPath draws a short derivation path.  Hardened steps are only drawn when
// allowed.
func drawPath(t *rapid.T, hardened bool, label string) Path {
	n := rapid.IntRange(0, 4).Draw(t, label+"Len")
	p := make(Path, 0, n)
	for i := 0; i < n; i++ {
		p = append(p, PathStep{
			Index:    rapid.Uint32Range(0, MaxIndex).Draw(t, label+"Index"),
			Hardened: hardened && rapid.Bool().Draw(t, label+"Hardened"),
		})
	}
	return p
}

func drawMaster(t *rapid.T, curve Curve) *ExtendedKey {
	seed := rapid.SliceOfN(rapid.Byte(), MinSeedBytes, MaxSeedBytes).
		Draw(t, "seed")
	master, err := FromSeed(seed, curve)
	if err != nil {
		// A seed that hashes to an invalid master key is
		// astronomically unlikely.
		t.Skipf("FromSeed: %v", err)
	}
	return master
}

// TestDerivationProperties checks that derivation is deterministic, that
// paths compose, and that public derivation commutes with neutering.
func TestDerivationProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		master := drawMaster(t, Secp256k1)
		a := drawPath(t, true, "a")
		b := drawPath(t, false, "b")

		ab := append(append(Path{}, a...), b...)
		whole, err := master.Derive(ab)
		if err != nil {
			t.Fatalf("Derive %s: %v", ab, err)
		}
		again, err := master.Derive(ab)
		if err != nil || !whole.Equal(again) {
			t.Fatalf("derivation of %s is not deterministic", ab)
		}

		prefix, err := master.Derive(a)
		if err != nil {
			t.Fatalf("Derive %s: %v", a, err)
		}
		parts, err := prefix.Derive(b)
		if err != nil || !parts.Equal(whole) {
			t.Fatalf("deriving %s then %s differs from %s", a, b, ab)
		}

		pub, err := prefix.Public().Derive(b)
		if err != nil || !pub.Equal(whole.Public()) {
			t.Fatalf("public derivation of %s differs", b)
		}
	})
}

// TestSerializationProperties checks that every key survives an encode and
// decode cycle with every version it can be written with.
func TestSerializationProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		curve := rapid.SampledFrom([]Curve{Secp256k1, Ed25519}).Draw(t,
			"curve")
		master := drawMaster(t, curve)
		key, err := master.Derive(drawPath(t, true, "p"))
		if err != nil {
			if curve == Ed25519 {
				// Ed25519 refuses non-hardened steps.
				return
			}
			t.Fatalf("Derive: %v", err)
		}
		if rapid.Bool().Draw(t, "public") {
			key = key.Public()
		}

		v := rapid.SampledFrom(Versions()).Draw(t, "version")
		if v.IsPrivate() && key.IsPublic() {
			return
		}
		want := key
		if v.IsPublic() {
			want = key.Public()
		}

		s, err := key.Encode(v)
		if err != nil {
			t.Fatalf("Encode %v: %v", v, err)
		}
		got, gotVersion, err := DecodeCurve(s, curve)
		if err != nil {
			t.Fatalf("DecodeCurve %s: %v", s, err)
		}
		if gotVersion != v || !got.Equal(want) {
			t.Fatalf("%s did not survive a round trip", s)
		}
	})
}
