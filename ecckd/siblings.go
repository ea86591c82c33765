package ecckd

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold is the number of siblings above which
// DeriveSiblingRange spreads the work over several goroutines.
const DefaultParallelThreshold = 64

// MaxSiblingBatch is the largest number of siblings a single range call
// derives.  The result slice is allocated up front, so larger ranges must be
// split by the caller.
const MaxSiblingBatch = 1 << 16

// SiblingOptions tunes batch derivation.  The zero value derives serially.
type SiblingOptions struct {
	// ParallelThreshold is the range size above which derivation runs on
	// a worker pool.  Zero disables parallel derivation.
	ParallelThreshold int

	// Workers limits the worker pool.  Zero means GOMAXPROCS.
	Workers int
}

// DefaultSiblingOptions returns the options used by DeriveSiblingRange.
func DefaultSiblingOptions() SiblingOptions {
	return SiblingOptions{
		ParallelThreshold: DefaultParallelThreshold,
	}
}

// DeriveSiblingRange derives the non-hardened children first through last,
// both inclusive, in ascending index order.  The result equals calling
// DeriveChild for every index, but the parent public key is computed once.
// Ranges of more than MaxSiblingBatch keys fail with ErrInvalidIndexRange.
func (k *ExtendedKey) DeriveSiblingRange(first, last uint32) (
	[]*ExtendedKey, error) {

	return k.DeriveSiblingRangeOpts(first, last, DefaultSiblingOptions())
}

// DeriveSiblingRangeOpts is DeriveSiblingRange with explicit options.
func (k *ExtendedKey) DeriveSiblingRangeOpts(first, last uint32,
	opts SiblingOptions) ([]*ExtendedKey, error) {

	if first > last || last > MaxIndex {
		return nil, makeError(ErrInvalidIndexRange, fmt.Sprintf("sibling "+
			"range %d..%d is outside the non-hardened index space",
			first, last))
	}
	if last-first >= MaxSiblingBatch {
		return nil, makeError(ErrInvalidIndexRange, fmt.Sprintf("sibling "+
			"range %d..%d exceeds the batch limit of %d keys", first,
			last, MaxSiblingBatch))
	}
	if err := k.checkDerivation(false); err != nil {
		return nil, err
	}

	p, err := k.parent()
	if err != nil {
		return nil, err
	}

	n := int(last-first) + 1
	children := make([]*ExtendedKey, n)

	if opts.ParallelThreshold <= 0 || n <= opts.ParallelThreshold {
		for j := range children {
			children[j], err = p.child(first + uint32(j))
			if err != nil {
				return nil, err
			}
		}
		return children, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log.Debugf("Deriving %d siblings of depth %d key on %d workers", n,
		k.depth, workers)

	// Every worker writes its own slots of children, so the slice needs no
	// further synchronization.
	var g errgroup.Group
	g.SetLimit(workers)
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		g.Go(func() error {
			for j := start; j < end; j++ {
				child, err := p.child(first + uint32(j))
				if err != nil {
					return err
				}
				children[j] = child
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return children, nil
}

// DeriveSiblings derives the non-hardened children at the given indices
// against the same parent, preserving the order of indices.
func (k *ExtendedKey) DeriveSiblings(indices []uint32) ([]*ExtendedKey,
	error) {

	if err := k.checkDerivation(false); err != nil {
		return nil, err
	}
	for _, i := range indices {
		if i > MaxIndex {
			return nil, makeError(ErrInvalidIndexRange, fmt.Sprintf(
				"index %d is outside the non-hardened index "+
					"space", i))
		}
	}

	p, err := k.parent()
	if err != nil {
		return nil, err
	}

	children := make([]*ExtendedKey, 0, len(indices))
	for _, i := range indices {
		child, err := p.child(i)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}
