// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package hdwallet implements wallet accounts on top of hierarchical
deterministic key trees.

The key tree itself lives in the ecckd sub package, which implements BIP32
child key derivation for secp256k1 and SLIP-0010 hardened derivation for
ed25519, the derivation path grammar, and the extended key serialization format
together with the registry of xprv/xpub style version bytes for the BIP44,
BIP49, BIP84 and BIP86 purposes.  See
https://github.com/bitcoin/bips/blob/master/bip-0032.mediawiki for details on
the standard.

This package adds the account level view a wallet works with:

  - Keychain holds a root node and caches the nodes derived from it
  - Account derives private and public keys of an account by chain and index
  - WatchAccount does the same for an account that only holds a public key
  - Purpose and chain helpers build the BIP44 style account paths

An overview of how the pieces fit:

	root := ... // *ecckd.ExtendedKey, e.g. from ecckd.FromSeed
	account, err := hdwallet.NewAccount(root)
	if err != nil {
		// handle error
	}
	receive, err := account.PublicKey(0, hdwallet.External)
	...
	zpub, err := account.MasterPublicKey(ecckd.BIP84, true, false)

Errors

Errors returned by this package wrap the error kinds of the ecckd package, so
callers use errors.Is with kinds such as ecckd.ErrUnsupportedDerivation or
ecckd.ErrNoPrivateMaterial to find out why an operation failed.
*/
package hdwallet
