// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdwallet

import (
	"fmt"

	"github.com/ModChain/hdwallet/ecckd"
)

// Chain is the BIP44 change level below an account node.
type Chain uint32

const (
	// External is the chain of receiving addresses.
	External Chain = 0

	// Internal is the chain of change addresses.
	Internal Chain = 1
)

// String returns the chain name.
func (c Chain) String() string {
	switch c {
	case External:
		return "external"
	case Internal:
		return "internal"
	default:
		return fmt.Sprintf("chain(%d)", uint32(c))
	}
}

// isValid reports whether the chain is one of the two BIP44 chains.
func (c Chain) isValid() bool {
	return c == External || c == Internal
}

// AccountPath returns m/purpose'/coin'/account' where coin is the SLIP-0044
// coin type of coin on mainnet and 1 on testnet.
func AccountPath(purpose ecckd.Purpose, coin ecckd.CoinType, isTestNet bool,
	account uint32) (ecckd.Path, error) {

	if !purpose.IsValid() {
		return nil, fmt.Errorf("account path: %w", ecckd.ErrUnknownPurpose)
	}
	if account > ecckd.MaxIndex {
		return nil, fmt.Errorf("account %d: %w", account,
			ecckd.ErrInvalidPathSegment)
	}

	return ecckd.Path{
		{Index: uint32(purpose), Hardened: true},
		{Index: coin.HDCoinType(isTestNet), Hardened: true},
		{Index: account, Hardened: true},
	}, nil
}

// chainPath returns the relative path chain/index.
func chainPath(chain Chain, index uint32) (ecckd.Path, error) {
	if !chain.isValid() {
		return nil, fmt.Errorf("%v: %w", chain, ecckd.ErrInvalidPathSegment)
	}
	if index > ecckd.MaxIndex {
		return nil, fmt.Errorf("index %d requires hardened derivation: %w",
			index, ecckd.ErrUnsupportedDerivation)
	}

	return ecckd.Path{
		{Index: uint32(chain)},
		{Index: index},
	}, nil
}
