package ecckd

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// HardenedKeyStart is the index at which a hardened key starts.  Each
	// extended key has 2^31 normal child keys and 2^31 hardened child keys.
	HardenedKeyStart = uint32(0x80000000) // 2^31

	// MaxIndex is the largest logical child index.
	MaxIndex = HardenedKeyStart - 1

	// MinSeedBytes is the minimum number of bytes allowed for a seed to a
	// master node.
	MinSeedBytes = 16 // 128 bits

	// MaxSeedBytes is the maximum number of bytes allowed for a seed to a
	// master node.
	MaxSeedBytes = 64 // 512 bits

	// maxDepth is the depth of the deepest key that can still be
	// serialized.
	maxDepth = 0xff

	// serializedKeyLen is the length of a serialized extended key payload
	// without its checksum.
	serializedKeyLen = 4 + 1 + 4 + 4 + 32 + 33 // 78 bytes

	checksumLen = 4
)

// ExtendedKey is one node of a BIP32/SLIP-0010 key tree: the key itself plus
// the chain code and tree position metadata needed to derive its children or
// serialize it.  An ExtendedKey is never modified after it is created, so it
// is safe for concurrent use.
type ExtendedKey struct {
	// key is either a 32 byte private key or a 33 byte compressed public
	// key, depending on isPrivate.
	key       []byte
	chainCode []byte
	parentFP  [4]byte
	depth     uint8
	childNum  uint32 // ser32(i) for i in xi = xpar/i, 0 for the master key
	curve     Curve
	isPrivate bool
}

// NewExtendedKey returns a new extended key from the given fields.  key must
// be a 32 byte private key when isPrivate is set and a 33 byte compressed
// public key otherwise.
func NewExtendedKey(key, chainCode []byte, parentFP [4]byte, depth uint8,
	childNum uint32, curve Curve, isPrivate bool) (*ExtendedKey, error) {

	if !curve.valid() {
		return nil, makeError(ErrInvalidKey,
			fmt.Sprintf("unknown curve %d", curve))
	}
	if len(chainCode) != 32 {
		return nil, makeError(ErrInvalidKey, fmt.Sprintf("chain code "+
			"must be 32 bytes, got %d", len(chainCode)))
	}
	if isPrivate && !curve.validPrivateKey(key) {
		return nil, makeError(ErrInvalidKey, fmt.Sprintf("invalid %v "+
			"private key", curve))
	}
	if !isPrivate && !curve.validPublicKey(key) {
		return nil, makeError(ErrInvalidKey, fmt.Sprintf("invalid %v "+
			"public key", curve))
	}

	return &ExtendedKey{
		key:       cloneBytes(key),
		chainCode: cloneBytes(chainCode),
		parentFP:  parentFP,
		depth:     depth,
		childNum:  childNum,
		curve:     curve,
		isPrivate: isPrivate,
	}, nil
}

// NewMaster returns a root key from an externally generated master private
// key and chain code.
func NewMaster(key, chainCode []byte, curve Curve) (*ExtendedKey, error) {
	return NewExtendedKey(key, chainCode, [4]byte{}, 0, 0, curve, true)
}

// FromBitcoinSeed returns a secp256k1 master node for a bitcoin wallet.
func FromBitcoinSeed(seed []byte) (*ExtendedKey, error) {
	return FromSeed(seed, Secp256k1)
}

// FromSeed returns the master node of the given curve for a seed.
func FromSeed(seed []byte, curve Curve) (*ExtendedKey, error) {
	if len(seed) < MinSeedBytes || len(seed) > MaxSeedBytes {
		return nil, makeError(ErrInvalidSeed, fmt.Sprintf("seed length "+
			"must be between %d and %d bytes, got %d", MinSeedBytes,
			MaxSeedBytes, len(seed)))
	}
	if !curve.valid() {
		return nil, makeError(ErrInvalidKey,
			fmt.Sprintf("unknown curve %d", curve))
	}

	key, chainCode, err := hmacCKD(seed, curve.masterSecret())
	if err != nil {
		return nil, err
	}
	if !curve.validPrivateKey(key) {
		return nil, makeError(ErrInvalidSeed, "seed produces an invalid "+
			"master key")
	}

	return &ExtendedKey{
		key:       key,
		chainCode: chainCode,
		curve:     curve,
		isPrivate: true,
	}, nil
}

// Curve returns the curve tag of the key.
func (k *ExtendedKey) Curve() Curve {
	return k.curve
}

// IsPrivate reports whether the key holds a private key.
func (k *ExtendedKey) IsPrivate() bool {
	return k.isPrivate
}

// IsPublic reports whether the key only holds a public key.
func (k *ExtendedKey) IsPublic() bool {
	return !k.isPrivate
}

// Depth returns the number of derivation steps from the root.
func (k *ExtendedKey) Depth() uint8 {
	return k.depth
}

// ParentFingerprint returns the fingerprint of the parent key, all zero for
// a root key.
func (k *ExtendedKey) ParentFingerprint() [4]byte {
	return k.parentFP
}

// ChildIndex returns the serialized child number, hardened bit included.
func (k *ExtendedKey) ChildIndex() uint32 {
	return k.childNum
}

// Index returns the logical child index without the hardened bit.
func (k *ExtendedKey) Index() uint32 {
	return k.childNum &^ HardenedKeyStart
}

// IsHardened reports whether the key was produced by hardened derivation.
func (k *ExtendedKey) IsHardened() bool {
	return k.childNum >= HardenedKeyStart
}

// ChainCode returns a copy of the chain code.
func (k *ExtendedKey) ChainCode() []byte {
	return cloneBytes(k.chainCode)
}

// PrivateKeyBytes returns a copy of the 32 byte private key.  It fails with
// ErrNoPrivateMaterial for a public-only key.
func (k *ExtendedKey) PrivateKeyBytes() ([]byte, error) {
	if !k.isPrivate {
		return nil, makeError(ErrNoPrivateMaterial, "public extended "+
			"key has no private key")
	}
	return cloneBytes(k.key), nil
}

// PublicKeyBytes returns the 33 byte compressed public key.
func (k *ExtendedKey) PublicKeyBytes() []byte {
	if !k.isPrivate {
		return cloneBytes(k.key)
	}
	return k.curve.publicKey(k.key)
}

// ECPrivKey converts the extended key to a secp256k1 private key.
func (k *ExtendedKey) ECPrivKey() (*secp256k1.PrivateKey, error) {
	if k.curve != Secp256k1 {
		return nil, makeError(ErrInvalidKey, fmt.Sprintf("%v key is "+
			"not a secp256k1 key", k.curve))
	}
	priv, err := k.PrivateKeyBytes()
	if err != nil {
		return nil, err
	}
	return secp256k1.PrivKeyFromBytes(priv), nil
}

// ECPubKey converts the extended key to a secp256k1 public key.
func (k *ExtendedKey) ECPubKey() (*secp256k1.PublicKey, error) {
	if k.curve != Secp256k1 {
		return nil, makeError(ErrInvalidKey, fmt.Sprintf("%v key is "+
			"not a secp256k1 key", k.curve))
	}
	return secp256k1.ParsePubKey(k.PublicKeyBytes())
}

// Fingerprint returns the first four bytes of hash160 of the compressed
// public key.  It is the same for the private and the public form of a key.
func (k *ExtendedKey) Fingerprint() [4]byte {
	var fp [4]byte
	copy(fp[:], rmd160sha256(k.PublicKeyBytes()))
	return fp
}

// Public returns a new extended public key from a give extended private key.
// If the input extended key is already public, it will be returned unaltered.
func (k *ExtendedKey) Public() *ExtendedKey {
	// Already an extended public key.
	if !k.isPrivate {
		return k
	}

	// Convert it to an extended public key.  The key for the new extended
	// key will simply be the pubkey of the current extended private key.
	return &ExtendedKey{
		key:       k.curve.publicKey(k.key),
		chainCode: k.chainCode,
		parentFP:  k.parentFP,
		depth:     k.depth,
		childNum:  k.childNum,
		curve:     k.curve,
	}
}

// Equal reports whether both keys hold identical fields.
func (k *ExtendedKey) Equal(o *ExtendedKey) bool {
	if k == nil || o == nil {
		return k == o
	}
	return k.isPrivate == o.isPrivate && k.curve == o.curve &&
		k.depth == o.depth && k.childNum == o.childNum &&
		k.parentFP == o.parentFP &&
		bytes.Equal(k.chainCode, o.chainCode) &&
		bytes.Equal(k.key, o.key)
}

// String returns the key serialized with the Bitcoin mainnet BIP44 version of
// its flavor (xprv or xpub).
func (k *ExtendedKey) String() string {
	v := Xpub
	if k.isPrivate {
		v = Xprv
	}
	s, err := k.Encode(v)
	if err != nil {
		return fmt.Sprintf("<invalid extended key: %v>", err)
	}
	return s
}

// checkDerivation verifies that the key may derive a child with the given
// hardening.  It runs before any hashing is done.
func (k *ExtendedKey) checkDerivation(hardened bool) error {
	if !hardened && !k.curve.SupportsNonHardened() {
		return makeError(ErrUnsupportedDerivation, fmt.Sprintf("%v keys "+
			"cannot derive non-hardened children", k.curve))
	}
	if !k.isPrivate && !k.curve.SupportsPublicDerivation() {
		return makeError(ErrUnsupportedDerivation, fmt.Sprintf("%v "+
			"public keys cannot derive children", k.curve))
	}
	if hardened && !k.isPrivate {
		return makeError(ErrUnsupportedDerivation, "cannot derive a "+
			"hardened key from a public key")
	}
	if k.depth == maxDepth {
		return makeError(ErrDepthOverflow, "cannot derive a key deeper "+
			"than 255 levels")
	}
	return nil
}

// Child derives extended key at a given index i.
// If parent is private, then derived key is also private. If parent is public, then derived is public.
//
// If i >= HardenedKeyStart, then hardened key is generated.
// You can only generate hardened keys from private parent keys.
// If you try generating hardened key form public parent key, ErrUnsupportedDerivation is returned.
//
// There are four CKD (child key derivation) scenarios:
// 1) Private extended key -> Hardened child private extended key
// 2) Private extended key -> Non-hardened child private extended key
// 3) Public extended key -> Non-hardened child public extended key
// 4) Public extended key -> Hardened child public extended key (INVALID!)
//
// Ed25519 keys only allow case 1.
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	hardened := i >= HardenedKeyStart
	if err := k.checkDerivation(hardened); err != nil {
		return nil, err
	}

	p, err := k.parent()
	if err != nil {
		return nil, err
	}
	return p.child(i)
}

// DeriveChild derives the child at the logical index, hardened or not.  An
// index with the hardened bit already set is treated as hardened.
func (k *ExtendedKey) DeriveChild(index uint32, hardened bool) (
	*ExtendedKey, error) {

	if hardened {
		index |= HardenedKeyStart
	}
	return k.Child(index)
}

// Derive returns the descendant reached by applying every step of path in
// order.  The first failing step aborts the walk with a *PathError.
func (k *ExtendedKey) Derive(path Path) (*ExtendedKey, error) {
	var err error
	extKey := k
	for step, s := range path {
		extKey, err = extKey.DeriveChild(s.Index, s.Hardened)
		if err != nil {
			return nil, &PathError{
				Step:    step,
				Segment: s.String(),
				Err:     err,
			}
		}
	}

	return extKey, nil
}

// DerivePath parses a path such as "m/44'/0'/0'/0/1" and derives the key it
// names relative to k.  "m" alone returns k itself.
func (k *ExtendedKey) DerivePath(path string) (*ExtendedKey, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return k.Derive(p)
}

// parentKey holds the values every child of one parent shares, so they are
// computed once per parent rather than once per child.
type parentKey struct {
	*ExtendedKey

	// pubKey is the compressed public key of the parent.
	pubKey []byte

	fingerprint [4]byte

	// point is the parsed parent public key, only set for public
	// secp256k1 parents.
	point secp256k1.JacobianPoint
}

func (k *ExtendedKey) parent() (*parentKey, error) {
	p := &parentKey{
		ExtendedKey: k,
		pubKey:      k.PublicKeyBytes(),
	}
	copy(p.fingerprint[:], rmd160sha256(p.pubKey))

	if !k.isPrivate {
		pub, err := secp256k1.ParsePubKey(p.pubKey)
		if err != nil {
			return nil, makeError(ErrInvalidKey, fmt.Sprintf("invalid "+
				"parent public key: %v", err))
		}
		pub.AsJacobian(&p.point)
	}
	return p, nil
}

// child derives the child at i, moving on to the next index whenever i
// yields an invalid key.
func (p *parentKey) child(i uint32) (*ExtendedKey, error) {
	for {
		child, ok, err := p.tryChild(i)
		if err != nil {
			return nil, err
		}
		if ok {
			return child, nil
		}

		log.Debugf("Skipping child index %d of depth %d key: derived key "+
			"is invalid", i&^HardenedKeyStart, p.depth)

		if i&^HardenedKeyStart == MaxIndex {
			return nil, makeError(ErrDegenerateChildKey, "no valid "+
				"child key left in the index space")
		}
		i++
	}
}

// tryChild runs one CKD step for index i.  ok is false if IL or the child
// key is invalid.
func (p *parentKey) tryChild(i uint32) (*ExtendedKey, bool, error) {
	keyLen := 33
	seed := make([]byte, keyLen+4)
	if i >= HardenedKeyStart {
		// Case #1: 0x00 || ser256(parentKey) || ser32(i)
		copy(seed[1:], p.key)
	} else {
		// Case #2 and #3: serP(parentPubKey) || ser32(i)
		copy(seed, p.pubKey)
	}
	binary.BigEndian.PutUint32(seed[keyLen:], i)

	il, chainCode, err := childHMAC(seed, p.chainCode)
	if err != nil {
		return nil, false, err
	}

	var (
		childKey []byte
		ok       bool
	)
	if p.isPrivate {
		childKey, ok = p.curve.childPrivateKey(il, p.key)
	} else {
		childKey, ok = childPublicKey(il, &p.point)
	}
	if !ok {
		return nil, false, nil
	}

	return &ExtendedKey{
		key:       childKey,
		chainCode: chainCode,
		parentFP:  p.fingerprint,
		depth:     p.depth + 1,
		childNum:  i,
		curve:     p.curve,
		isPrivate: p.isPrivate,
	}, true, nil
}
