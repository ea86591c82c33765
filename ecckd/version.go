package ecckd

import (
	"encoding/binary"
	"fmt"
)

// Purpose is the BIP43 purpose level of a derivation path.
type Purpose uint32

const (
	BIP44 Purpose = 44
	BIP49 Purpose = 49
	BIP84 Purpose = 84
	BIP86 Purpose = 86
)

// IsValid reports whether the purpose has extended key versions.
func (p Purpose) IsValid() bool {
	switch p {
	case BIP44, BIP49, BIP84, BIP86:
		return true
	default:
		return false
	}
}

// String returns the purpose as "BIPnn".
func (p Purpose) String() string {
	return fmt.Sprintf("BIP%d", uint32(p))
}

// CoinType identifies a coin that has its own extended key versions.
type CoinType uint8

const (
	Bitcoin CoinType = iota
	Litecoin
)

// String returns the coin name.
func (c CoinType) String() string {
	switch c {
	case Bitcoin:
		return "Bitcoin"
	case Litecoin:
		return "Litecoin"
	default:
		return "unknown"
	}
}

// HDCoinType returns the SLIP-0044 coin type used at the second level of a
// BIP44 style path.  Every test network shares coin type 1.
func (c CoinType) HDCoinType(isTestNet bool) uint32 {
	if isTestNet {
		return 1
	}
	switch c {
	case Litecoin:
		return 2
	default:
		return 0
	}
}

// Version is an extended key version: the four bytes that open a serialized
// key and decide its Base58 prefix.  Versions are only created by this
// package and are never modified.
type Version struct {
	value     uint32
	prefix    string
	coinTypes []CoinType
	purposes  []Purpose
	private   bool
	testNet   bool

	// public is the public partner of a private version.
	public *Version
}

// The extended key versions known to the registry.
var (
	// bip44 and bip86
	Xprv = &Version{
		value:     0x0488ade4,
		prefix:    "xprv",
		coinTypes: []CoinType{Bitcoin, Litecoin},
		purposes:  []Purpose{BIP44, BIP86},
		private:   true,
		public:    Xpub,
	}
	Xpub = &Version{
		value:     0x0488b21e,
		prefix:    "xpub",
		coinTypes: []CoinType{Bitcoin, Litecoin},
		purposes:  []Purpose{BIP44, BIP86},
	}

	// bip49
	Yprv = &Version{
		value:     0x049d7878,
		prefix:    "yprv",
		coinTypes: []CoinType{Bitcoin},
		purposes:  []Purpose{BIP49},
		private:   true,
		public:    Ypub,
	}
	Ypub = &Version{
		value:     0x049d7cb2,
		prefix:    "ypub",
		coinTypes: []CoinType{Bitcoin},
		purposes:  []Purpose{BIP49},
	}

	// bip84
	Zprv = &Version{
		value:     0x04b2430c,
		prefix:    "zprv",
		coinTypes: []CoinType{Bitcoin, Litecoin},
		purposes:  []Purpose{BIP84},
		private:   true,
		public:    Zpub,
	}
	Zpub = &Version{
		value:     0x04b24746,
		prefix:    "zpub",
		coinTypes: []CoinType{Bitcoin, Litecoin},
		purposes:  []Purpose{BIP84},
	}

	// testnet bip44
	Tprv = &Version{
		value:     0x04358394,
		prefix:    "tprv",
		coinTypes: []CoinType{Bitcoin},
		purposes:  []Purpose{BIP44},
		private:   true,
		testNet:   true,
		public:    Tpub,
	}
	Tpub = &Version{
		value:     0x043587cf,
		prefix:    "tpub",
		coinTypes: []CoinType{Bitcoin},
		purposes:  []Purpose{BIP44},
		testNet:   true,
	}

	// testnet bip49
	Uprv = &Version{
		value:     0x044a4e28,
		prefix:    "uprv",
		coinTypes: []CoinType{Bitcoin},
		purposes:  []Purpose{BIP49},
		private:   true,
		testNet:   true,
		public:    Upub,
	}
	Upub = &Version{
		value:     0x044a5262,
		prefix:    "upub",
		coinTypes: []CoinType{Bitcoin},
		purposes:  []Purpose{BIP49},
		testNet:   true,
	}

	// testnet bip84
	Vprv = &Version{
		value:     0x045f18bc,
		prefix:    "vprv",
		coinTypes: []CoinType{Bitcoin},
		purposes:  []Purpose{BIP84},
		private:   true,
		testNet:   true,
		public:    Vpub,
	}
	Vpub = &Version{
		value:     0x045f1cf6,
		prefix:    "vpub",
		coinTypes: []CoinType{Bitcoin},
		purposes:  []Purpose{BIP84},
		testNet:   true,
	}

	// litecoin bip44
	Ltpv = &Version{
		value:     0x019d9cfe,
		prefix:    "Ltpv",
		coinTypes: []CoinType{Litecoin},
		purposes:  []Purpose{BIP44},
		private:   true,
		public:    Ltub,
	}
	Ltub = &Version{
		value:     0x019da462,
		prefix:    "Ltub",
		coinTypes: []CoinType{Litecoin},
		purposes:  []Purpose{BIP44},
	}

	// litecoin bip49
	Mtpv = &Version{
		value:     0x01b26792,
		prefix:    "Mtpv",
		coinTypes: []CoinType{Litecoin},
		purposes:  []Purpose{BIP49},
		private:   true,
		public:    Mtub,
	}
	Mtub = &Version{
		value:     0x01b26ef6,
		prefix:    "Mtub",
		coinTypes: []CoinType{Litecoin},
		purposes:  []Purpose{BIP49},
	}
)

// versionPair selects the private and public entry of one table cell.
type versionPair struct {
	private, public *Version
}

func (p versionPair) pick(isPrivate bool) *Version {
	if isPrivate {
		return p.private
	}
	return p.public
}

// versionKey addresses the dispatch table used by VersionFor.
type versionKey struct {
	purpose Purpose
	coin    CoinType
	testNet bool
}

var (
	registry = []*Version{
		Xprv, Xpub, Yprv, Ypub, Zprv, Zpub,
		Tprv, Tpub, Uprv, Upub, Vprv, Vpub,
		Ltpv, Ltub, Mtpv, Mtub,
	}

	byValue  = make(map[uint32]*Version, len(registry))
	byPrefix = make(map[string]*Version, len(registry))

	// byPurpose resolves purpose, coin and network to a version pair.
	// Litecoin has no testnet versions of its own, so it keeps its
	// mainnet pair.  BIP86 only exists as xprv/xpub.
	byPurpose = map[versionKey]versionPair{
		{BIP44, Bitcoin, false}:  {Xprv, Xpub},
		{BIP44, Bitcoin, true}:   {Tprv, Tpub},
		{BIP44, Litecoin, false}: {Ltpv, Ltub},
		{BIP44, Litecoin, true}:  {Ltpv, Ltub},

		{BIP49, Bitcoin, false}:  {Yprv, Ypub},
		{BIP49, Bitcoin, true}:   {Uprv, Upub},
		{BIP49, Litecoin, false}: {Mtpv, Mtub},
		{BIP49, Litecoin, true}:  {Mtpv, Mtub},

		{BIP84, Bitcoin, false}:  {Zprv, Zpub},
		{BIP84, Bitcoin, true}:   {Vprv, Vpub},
		{BIP84, Litecoin, false}: {Zprv, Zpub},
		{BIP84, Litecoin, true}:  {Vprv, Vpub},

		{BIP86, Bitcoin, false}:  {Xprv, Xpub},
		{BIP86, Bitcoin, true}:   {Xprv, Xpub},
		{BIP86, Litecoin, false}: {Xprv, Xpub},
		{BIP86, Litecoin, true}:  {Xprv, Xpub},
	}
)

func init() {
	for _, v := range registry {
		if _, ok := byValue[v.value]; ok {
			panic(fmt.Sprintf("duplicate extended key version %08x",
				v.value))
		}
		if _, ok := byPrefix[v.prefix]; ok {
			panic(fmt.Sprintf("duplicate extended key prefix %s",
				v.prefix))
		}
		if v.private && (v.public == nil || v.public.private) {
			panic(fmt.Sprintf("version %s has no public partner",
				v.prefix))
		}
		byValue[v.value] = v
		byPrefix[v.prefix] = v
	}
}

// Versions returns every registered version in table order.
func Versions() []*Version {
	return append([]*Version(nil), registry...)
}

// VersionFor returns the version used to serialize a key of the given
// purpose, coin and network.
func VersionFor(purpose Purpose, coin CoinType, isPrivate,
	isTestNet bool) (*Version, error) {

	if !purpose.IsValid() {
		return nil, makeError(ErrUnknownPurpose, fmt.Sprintf("purpose "+
			"%d has no extended key versions", uint32(purpose)))
	}
	pair, ok := byPurpose[versionKey{purpose, coin, isTestNet}]
	if !ok {
		return nil, makeError(ErrUnknownVersion, fmt.Sprintf("no "+
			"extended key version for %v %v (testnet=%v)", purpose,
			coin, isTestNet))
	}
	return pair.pick(isPrivate), nil
}

// VersionByPrefix returns the version with the given Base58 prefix, e.g.
// "zpub".  The match is exact and case sensitive.
func VersionByPrefix(prefix string) (*Version, bool) {
	v, ok := byPrefix[prefix]
	return v, ok
}

// VersionByValue returns the version with the given integer value.
func VersionByValue(value uint32) (*Version, bool) {
	v, ok := byValue[value]
	return v, ok
}

// VersionByBytes interprets b as a big-endian integer and returns the version
// with that value.  Inputs wider than four bytes match when their extra
// leading bytes are zero.
func VersionByBytes(b []byte) (*Version, bool) {
	for len(b) > 4 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) == 0 || len(b) > 4 {
		return nil, false
	}

	var buf [4]byte
	copy(buf[4-len(b):], b)
	return VersionByValue(binary.BigEndian.Uint32(buf[:]))
}

// Value returns the version as an integer, e.g. 0x0488ade4.
func (v *Version) Value() uint32 {
	return v.value
}

// Bytes returns the four big-endian version bytes.
func (v *Version) Bytes() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v.value)
	return b
}

// Prefix returns the Base58 prefix of keys serialized with the version.
func (v *Version) Prefix() string {
	return v.prefix
}

// String returns the Base58 prefix.
func (v *Version) String() string {
	return v.prefix
}

// CoinTypes returns the coins the version is valid for.
func (v *Version) CoinTypes() []CoinType {
	return append([]CoinType(nil), v.coinTypes...)
}

// Purposes returns the purposes the version is valid for.
func (v *Version) Purposes() []Purpose {
	return append([]Purpose(nil), v.purposes...)
}

// HasCoinType reports whether the version is valid for coin.
func (v *Version) HasCoinType(coin CoinType) bool {
	for _, c := range v.coinTypes {
		if c == coin {
			return true
		}
	}
	return false
}

// HasPurpose reports whether the version is valid for purpose.
func (v *Version) HasPurpose(purpose Purpose) bool {
	for _, p := range v.purposes {
		if p == purpose {
			return true
		}
	}
	return false
}

// IsPrivate reports whether the version serializes private keys.
func (v *Version) IsPrivate() bool {
	return v.private
}

// IsPublic reports whether the version serializes public keys.
func (v *Version) IsPublic() bool {
	return !v.private
}

// IsTestNet reports whether the version belongs to a test network.
func (v *Version) IsTestNet() bool {
	return v.testNet
}

// Public returns the version used for the public form of keys of this
// version.  A public version is its own public partner.
func (v *Version) Public() *Version {
	if !v.private {
		return v
	}
	return v.public
}

// Private returns v if it is a private version.  A public version has no
// private partner, so it fails with ErrNoPrivateMaterial.
func (v *Version) Private() (*Version, error) {
	if !v.private {
		return nil, makeError(ErrNoPrivateMaterial, fmt.Sprintf("no "+
			"private version for %s", v.prefix))
	}
	return v, nil
}
