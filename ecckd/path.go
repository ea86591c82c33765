package ecckd

import (
	"fmt"
	"strconv"
	"strings"
)

// PathStep is one level of a derivation path.
type PathStep struct {
	// Index is the logical child index, below HardenedKeyStart.
	Index uint32

	Hardened bool
}

// ChildIndex returns the serialized child number of the step.
func (s PathStep) ChildIndex() uint32 {
	if s.Hardened {
		return s.Index | HardenedKeyStart
	}
	return s.Index
}

// String returns the step in path notation, e.g. "44'" or "7".
func (s PathStep) String() string {
	if s.Hardened {
		return strconv.FormatUint(uint64(s.Index), 10) + "'"
	}
	return strconv.FormatUint(uint64(s.Index), 10)
}

// Path is an ordered list of derivation steps, applied left to right.
type Path []PathStep

// PathFromIndices builds a path from serialized child numbers, where the
// hardened bit selects hardened derivation.
func PathFromIndices(indices ...uint32) Path {
	p := make(Path, 0, len(indices))
	for _, i := range indices {
		p = append(p, PathStep{
			Index:    i &^ HardenedKeyStart,
			Hardened: i >= HardenedKeyStart,
		})
	}
	return p
}

// Indices returns the serialized child numbers of the path.
func (p Path) Indices() []uint32 {
	indices := make([]uint32, 0, len(p))
	for _, s := range p {
		indices = append(indices, s.ChildIndex())
	}
	return indices
}

// String returns the path in "m/a'/b" notation.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

// ParsePath parses a derivation path.  An optional leading "m" names the root
// explicitly and "m" alone is the empty path.  Every other segment is a
// decimal index below 2^31, suffixed with ' (or h, H) when hardened.
func ParsePath(path string) (Path, error) {
	if path == "" {
		return nil, makeError(ErrInvalidPathSegment, "empty derivation "+
			"path")
	}

	segments := strings.Split(path, "/")
	if segments[0] == "m" {
		segments = segments[1:]
		if len(segments) == 0 {
			return Path{}, nil
		}
	}

	p := make(Path, 0, len(segments))
	for i, seg := range segments {
		step, err := parseSegment(seg)
		if err != nil {
			return nil, makeError(ErrInvalidPathSegment, fmt.Sprintf(
				"invalid path segment %d %q in %q: %v", i, seg, path,
				err))
		}
		p = append(p, step)
	}
	return p, nil
}

func parseSegment(seg string) (PathStep, error) {
	var step PathStep
	if n := len(seg); n > 0 {
		switch seg[n-1] {
		case '\'', 'h', 'H':
			step.Hardened = true
			seg = seg[:n-1]
		}
	}
	if seg == "" {
		return step, fmt.Errorf("missing index")
	}
	for _, c := range seg {
		if c < '0' || c > '9' {
			return step, fmt.Errorf("index is not a decimal number")
		}
	}

	n, err := strconv.ParseUint(seg, 10, 32)
	if err != nil || n > uint64(MaxIndex) {
		return step, fmt.Errorf("index must be below %d",
			HardenedKeyStart)
	}
	step.Index = uint32(n)
	return step, nil
}
