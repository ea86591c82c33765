// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdwallet

import (
	"errors"

	"github.com/ModChain/hdwallet/ecckd"
)

// WatchAccount derives the public keys of a wallet account from a public
// root node.  Requests that need hardened derivation fail with
// ecckd.ErrUnsupportedDerivation.
type WatchAccount struct {
	keychain *Keychain
}

// NewWatchAccount returns a watch-only account rooted at the public form of
// root.
func NewWatchAccount(root *ecckd.ExtendedKey, opts ...Option) (*WatchAccount,
	error) {

	if root == nil {
		return nil, errors.New("watch account requires a root key")
	}

	keychain, err := NewKeychain(root.Public(), opts...)
	if err != nil {
		return nil, err
	}
	return &WatchAccount{keychain: keychain}, nil
}

// NewWatchAccountFromString decodes a serialized extended key and returns a
// watch-only account rooted at its public form.
func NewWatchAccountFromString(key string, opts ...Option) (*WatchAccount,
	error) {

	cfg := newConfig(opts)
	root, _, err := ecckd.DecodeCurve(key, cfg.Curve)
	if err != nil {
		return nil, err
	}
	return NewWatchAccount(root, opts...)
}

// Keychain returns the keychain of the account.
func (w *WatchAccount) Keychain() *Keychain {
	return w.keychain
}

// PublicKey returns the public node at chain/index.
func (w *WatchAccount) PublicKey(index uint32, chain Chain) (
	*ecckd.ExtendedKey, error) {

	path, err := chainPath(chain, index)
	if err != nil {
		return nil, err
	}
	return w.keychain.Key(path)
}

// PublicKeys returns the public nodes first through last of chain.
func (w *WatchAccount) PublicKeys(first, last uint32, chain Chain) (
	[]*ecckd.ExtendedKey, error) {

	return publicKeys(w.keychain, first, last, chain)
}

// MasterPublicKey serializes the public account node for purpose.  Only a
// passphrase wallet, whose account node is the root, can succeed, since the
// account path is hardened.
func (w *WatchAccount) MasterPublicKey(purpose ecckd.Purpose, mainNet,
	passphraseWallet bool) (string, error) {

	return masterPublicKey(w.keychain, purpose, mainNet, passphraseWallet)
}
