package ecckd

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

// checksum returns the first four bytes of sha256(sha256(in)).
func checksum(in []byte) []byte {
	return chainhash.DoubleHashB(in)[:checksumLen]
}

// ripemd160 + sha256
func rmd160sha256(in []byte) []byte {
	a := sha256.Sum256(in)
	rmd := ripemd160.New()
	rmd.Write(a[:])
	return rmd.Sum(nil)
}

// paddedAppend appends src to dst, left padding it with zeros to size bytes.
func paddedAppend(size int, dst, src []byte) []byte {
	for i := 0; i < size-len(src); i++ {
		dst = append(dst, 0)
	}
	return append(dst, src...)
}

// cloneBytes returns a copy of b so callers can never alias key material held
// by an immutable ExtendedKey.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
