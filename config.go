// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdwallet

import (
	"github.com/ModChain/hdwallet/ecckd"
)

// DefaultCacheSize is the number of derived nodes a Keychain keeps by
// default.
const DefaultCacheSize = 256

// Config holds the options of a Keychain and the accounts built on it.
type Config struct {
	// Curve is used when an account is created from a serialized key,
	// which does not record its curve.
	Curve ecckd.Curve

	// CoinType selects the extended key versions and the coin level of
	// account paths.
	CoinType ecckd.CoinType

	// CacheSize is the number of derived nodes kept in memory.  Zero
	// disables the cache.
	CacheSize uint64

	// Siblings tunes the derivation of public key ranges.
	Siblings ecckd.SiblingOptions
}

// DefaultConfig returns the configuration for a Bitcoin secp256k1 account.
func DefaultConfig() Config {
	return Config{
		Curve:     ecckd.Secp256k1,
		CoinType:  ecckd.Bitcoin,
		CacheSize: DefaultCacheSize,
		Siblings:  ecckd.DefaultSiblingOptions(),
	}
}

// Option modifies a Config.
type Option func(*Config)

// WithCurve sets the curve of keys decoded from strings.
func WithCurve(curve ecckd.Curve) Option {
	return func(c *Config) {
		c.Curve = curve
	}
}

// WithCoinType sets the coin of the account.
func WithCoinType(coin ecckd.CoinType) Option {
	return func(c *Config) {
		c.CoinType = coin
	}
}

// WithCacheSize sets the number of cached nodes, zero disables the cache.
func WithCacheSize(size uint64) Option {
	return func(c *Config) {
		c.CacheSize = size
	}
}

// WithSiblingOptions sets how public key ranges are derived.
func WithSiblingOptions(opts ecckd.SiblingOptions) Option {
	return func(c *Config) {
		c.Siblings = opts
	}
}

func newConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
