package ecckd

import (
	"crypto/hmac"
	"crypto/sha512"
)

// hmacCKD returns IL and IR of HMAC-SHA512(key=salt, data=seed).
//
// See: https://github.com/bitcoin/bips/blob/master/bip-0032.mediawiki
func hmacCKD(seed, salt []byte) (il, ir []byte, err error) {
	data := hmac.New(sha512.New, salt)
	if _, err = data.Write(seed); err != nil {
		return
	}
	I := data.Sum(nil)

	il = I[:32] // IL
	ir = I[32:] // IR
	return
}

// childHMAC is the CKD hash used by the derivation engine.  Tests replace it
// to force degenerate intermediate keys.
var childHMAC = hmacCKD
