// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdwallet

import (
	"errors"

	"github.com/ModChain/hdwallet/ecckd"
	"github.com/lightninglabs/neutrino/cache/lru"
)

// cachedKey wraps a derived node so it can be stored in the LRU cache.
type cachedKey struct {
	*ecckd.ExtendedKey
}

// Size returns the "size" of an entry.  Every node counts as one, so the
// cache capacity is a number of nodes.
func (c *cachedKey) Size() (uint64, error) {
	return 1, nil
}

// Keychain is a root node together with a cache of the nodes derived from it.
// Nodes are immutable, so a cached node is always identical to a freshly
// derived one.  A Keychain is safe for concurrent use.
type Keychain struct {
	root *ecckd.ExtendedKey
	cfg  Config

	// cache maps canonical path strings to derived nodes.  It is nil when
	// caching is disabled.
	cache *lru.Cache[string, *cachedKey]
}

// NewKeychain returns a keychain rooted at root.
func NewKeychain(root *ecckd.ExtendedKey, opts ...Option) (*Keychain, error) {
	if root == nil {
		return nil, errors.New("keychain requires a root key")
	}

	cfg := newConfig(opts)
	k := &Keychain{
		root: root,
		cfg:  cfg,
	}
	if cfg.CacheSize > 0 {
		k.cache = lru.NewCache[string, *cachedKey](cfg.CacheSize)
	}
	return k, nil
}

// Root returns the root node.
func (k *Keychain) Root() *ecckd.ExtendedKey {
	return k.root
}

// Curve returns the curve of the root node.
func (k *Keychain) Curve() ecckd.Curve {
	return k.root.Curve()
}

// Config returns the configuration of the keychain.
func (k *Keychain) Config() Config {
	return k.cfg
}

// KeyByPath returns the node at path relative to the root, e.g. "0/5" or
// "m/0/5".  "m" returns the root itself.
func (k *Keychain) KeyByPath(path string) (*ecckd.ExtendedKey, error) {
	p, err := ecckd.ParsePath(path)
	if err != nil {
		return nil, err
	}
	return k.Key(p)
}

// Key returns the node at path relative to the root.  Derivation resumes from
// the deepest cached ancestor and every node on the way is cached.
func (k *Keychain) Key(path ecckd.Path) (*ecckd.ExtendedKey, error) {
	if len(path) == 0 {
		return k.root, nil
	}

	// Find the deepest cached node on the path.
	node, start := k.root, 0
	for i := len(path); i > 0; i-- {
		if cached, ok := k.lookup(path[:i]); ok {
			node, start = cached, i
			break
		}
	}
	if start == len(path) {
		log.Tracef("Keychain cache hit for %v", path)
		return node, nil
	}

	for i := start; i < len(path); i++ {
		step := path[i]

		var err error
		node, err = node.DeriveChild(step.Index, step.Hardened)
		if err != nil {
			return nil, &ecckd.PathError{
				Step:    i,
				Segment: step.String(),
				Err:     err,
			}
		}
		k.store(path[:i+1], node)
	}
	return node, nil
}

// DeriveNonHardenedChildKeys derives the non-hardened children first through
// last of parent, in index order.
func (k *Keychain) DeriveNonHardenedChildKeys(parent *ecckd.ExtendedKey,
	first, last uint32) ([]*ecckd.ExtendedKey, error) {

	return parent.DeriveSiblingRangeOpts(first, last, k.cfg.Siblings)
}

func (k *Keychain) lookup(path ecckd.Path) (*ecckd.ExtendedKey, bool) {
	if k.cache == nil {
		return nil, false
	}
	cached, err := k.cache.Get(path.String())
	if err != nil {
		return nil, false
	}
	return cached.ExtendedKey, true
}

func (k *Keychain) store(path ecckd.Path, node *ecckd.ExtendedKey) {
	if k.cache == nil {
		return
	}
	if _, err := k.cache.Put(path.String(), &cachedKey{node}); err != nil {
		log.Debugf("Unable to cache node %v: %v", path, err)
	}
}
