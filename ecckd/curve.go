package ecckd

import (
	"crypto/ed25519"

	"filippo.io/edwards25519"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Curve tags the elliptic curve a key belongs to.  The curve decides which
// derivations are permitted; the shape of the derivation itself is shared.
type Curve uint8

const (
	// Secp256k1 keys support hardened and non-hardened derivation from
	// private parents and non-hardened derivation from public parents.
	Secp256k1 Curve = iota

	// Ed25519 keys (SLIP-0010) support hardened derivation from private
	// parents only.
	Ed25519
)

// String returns the curve name.
func (c Curve) String() string {
	switch c {
	case Secp256k1:
		return "secp256k1"
	case Ed25519:
		return "ed25519"
	default:
		return "unknown"
	}
}

// SupportsNonHardened reports whether children below HardenedKeyStart can be
// derived on this curve.
func (c Curve) SupportsNonHardened() bool {
	return c == Secp256k1
}

// SupportsPublicDerivation reports whether a public-only parent can derive
// any child at all on this curve.
func (c Curve) SupportsPublicDerivation() bool {
	return c == Secp256k1
}

func (c Curve) valid() bool {
	return c == Secp256k1 || c == Ed25519
}

// masterSecret is the HMAC key used to turn a seed into a master node.
func (c Curve) masterSecret() []byte {
	if c == Ed25519 {
		return []byte("ed25519 seed")
	}
	return []byte("Bitcoin seed")
}

// publicKey returns the 33 byte public key for a private key.
func (c Curve) publicKey(priv []byte) []byte {
	if c == Ed25519 {
		pub := ed25519.NewKeyFromSeed(priv).Public().(ed25519.PublicKey)
		return append([]byte{0x00}, pub...)
	}
	return secp256k1.PrivKeyFromBytes(priv).PubKey().SerializeCompressed()
}

// validPrivateKey reports whether priv is usable as a private key.
func (c Curve) validPrivateKey(priv []byte) bool {
	if len(priv) != 32 {
		return false
	}
	if c == Ed25519 {
		return true
	}

	var k secp256k1.ModNScalar
	overflow := k.SetByteSlice(priv)
	return !overflow && !k.IsZero()
}

// validPublicKey reports whether pub is a 33 byte public key on the curve.
func (c Curve) validPublicKey(pub []byte) bool {
	if len(pub) != 33 {
		return false
	}
	if c == Ed25519 {
		if pub[0] != 0x00 {
			return false
		}
		_, err := new(edwards25519.Point).SetBytes(pub[1:])
		return err == nil
	}

	if pub[0] != secp256k1.PubKeyFormatCompressedEven &&
		pub[0] != secp256k1.PubKeyFormatCompressedOdd {

		return false
	}
	_, err := secp256k1.ParsePubKey(pub)
	return err == nil
}

// childPrivateKey computes the child private key from IL and the parent
// private key.  ok is false when IL or the result is not a valid key and the
// next index must be used instead.
func (c Curve) childPrivateKey(il, parent []byte) (child []byte, ok bool) {
	if c == Ed25519 {
		return cloneBytes(il), true
	}

	// childKey = parse256(IL) + parentKey mod n
	var k, p secp256k1.ModNScalar
	if overflow := k.SetByteSlice(il); overflow {
		return nil, false
	}
	p.SetByteSlice(parent)
	k.Add(&p)
	if k.IsZero() {
		return nil, false
	}

	b := k.Bytes()
	return b[:], true
}

// childPublicKey computes serP(point(parse256(IL)) + parentPoint).  ok is
// false when IL is out of range or the sum is the point at infinity.
func childPublicKey(il []byte, parent *secp256k1.JacobianPoint) (
	child []byte, ok bool) {

	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(il); overflow {
		return nil, false
	}

	var ilPoint, result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&k, &ilPoint)
	secp256k1.AddNonConst(&ilPoint, parent, &result)
	if (result.X.IsZero() && result.Y.IsZero()) || result.Z.IsZero() {
		return nil, false
	}

	result.ToAffine()
	return secp256k1.NewPublicKey(&result.X, &result.Y).SerializeCompressed(),
		true
}
