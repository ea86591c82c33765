// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdwallet

import (
	"fmt"

	"github.com/ModChain/hdwallet/ecckd"
)

// Account derives the keys of a wallet account from a private root node.
// The root is usually the account node m/purpose'/coin'/account', but any
// private node works.
type Account struct {
	keychain *Keychain
}

// NewAccount returns an account rooted at the private node root.
func NewAccount(root *ecckd.ExtendedKey, opts ...Option) (*Account, error) {
	if root == nil || !root.IsPrivate() {
		return nil, fmt.Errorf("account root: %w",
			ecckd.ErrNoPrivateMaterial)
	}

	keychain, err := NewKeychain(root, opts...)
	if err != nil {
		return nil, err
	}
	return &Account{keychain: keychain}, nil
}

// NewAccountFromString decodes a serialized private extended key and returns
// an account rooted at it.  The curve of the key is taken from the options.
func NewAccountFromString(key string, opts ...Option) (*Account, error) {
	cfg := newConfig(opts)
	root, _, err := ecckd.DecodeCurve(key, cfg.Curve)
	if err != nil {
		return nil, err
	}
	return NewAccount(root, opts...)
}

// Keychain returns the keychain of the account.
func (a *Account) Keychain() *Keychain {
	return a.keychain
}

// PrivateKey returns the private node at chain/index.  Ed25519 accounts fail
// with ecckd.ErrUnsupportedDerivation, since both levels are non-hardened.
func (a *Account) PrivateKey(index uint32, chain Chain) (*ecckd.ExtendedKey,
	error) {

	path, err := chainPath(chain, index)
	if err != nil {
		return nil, err
	}
	return a.keychain.Key(path)
}

// PrivateKeyByPath returns the private node at path relative to the root.
func (a *Account) PrivateKeyByPath(path string) (*ecckd.ExtendedKey, error) {
	return a.keychain.KeyByPath(path)
}

// PublicKey returns the public node at chain/index.
func (a *Account) PublicKey(index uint32, chain Chain) (*ecckd.ExtendedKey,
	error) {

	key, err := a.PrivateKey(index, chain)
	if err != nil {
		return nil, err
	}
	return key.Public(), nil
}

// PublicKeys returns the public nodes first through last of chain.  The
// chain node is derived once for the whole range.  A range holds at most
// ecckd.MaxSiblingBatch keys.
func (a *Account) PublicKeys(first, last uint32, chain Chain) (
	[]*ecckd.ExtendedKey, error) {

	return publicKeys(a.keychain, first, last, chain)
}

// MasterPublicKey serializes the public account node for purpose with the
// version the purpose uses on the selected network.  The account node is
// m/purpose'/coin'/0' below the root, or the root itself for a passphrase
// wallet.
func (a *Account) MasterPublicKey(purpose ecckd.Purpose, mainNet,
	passphraseWallet bool) (string, error) {

	return masterPublicKey(a.keychain, purpose, mainNet, passphraseWallet)
}

// publicKeys is shared by Account and WatchAccount.
func publicKeys(keychain *Keychain, first, last uint32, chain Chain) (
	[]*ecckd.ExtendedKey, error) {

	if first > ecckd.MaxIndex || last > ecckd.MaxIndex {
		return nil, fmt.Errorf("public keys %d..%d require hardened "+
			"derivation: %w", first, last, ecckd.ErrUnsupportedDerivation)
	}
	if !chain.isValid() {
		return nil, fmt.Errorf("%v: %w", chain, ecckd.ErrInvalidPathSegment)
	}

	parent, err := keychain.Key(ecckd.Path{{Index: uint32(chain)}})
	if err != nil {
		return nil, err
	}

	log.Debugf("Deriving %v public keys %d..%d", chain, first, last)
	return keychain.DeriveNonHardenedChildKeys(parent.Public(), first, last)
}

// masterPublicKey is shared by Account and WatchAccount.
func masterPublicKey(keychain *Keychain, purpose ecckd.Purpose, mainNet,
	passphraseWallet bool) (string, error) {

	coin := keychain.cfg.CoinType
	version, err := ecckd.VersionFor(purpose, coin, false, !mainNet)
	if err != nil {
		return "", err
	}

	path := ecckd.Path{}
	if !passphraseWallet {
		path, err = AccountPath(purpose, coin, !mainNet, 0)
		if err != nil {
			return "", err
		}
	}

	key, err := keychain.Key(path)
	if err != nil {
		return "", err
	}
	return key.Public().Encode(version)
}
