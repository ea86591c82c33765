package ecckd

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// MarshalBinary encodes the key with version v in the standard 82 byte
// format that is Base58 encoded for humans.  A private key serialized with a
// public version is written in its public form.  A public key cannot be
// serialized with a private version.
func (k *ExtendedKey) MarshalBinary(v *Version) ([]byte, error) {
	if v == nil {
		return nil, makeError(ErrUnknownVersion, "no extended key "+
			"version given")
	}
	if v.IsPrivate() && !k.isPrivate {
		return nil, makeError(ErrNoPrivateMaterial, fmt.Sprintf("cannot "+
			"serialize a public key as %s", v.prefix))
	}

	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], k.childNum)
	version := v.Bytes()

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)
	serializedBytes := make([]byte, 0, serializedKeyLen+checksumLen)
	serializedBytes = append(serializedBytes, version[:]...)
	serializedBytes = append(serializedBytes, k.depth)
	serializedBytes = append(serializedBytes, k.parentFP[:]...)
	serializedBytes = append(serializedBytes, childNumBytes[:]...)
	serializedBytes = append(serializedBytes, k.chainCode...)
	if v.IsPrivate() {
		serializedBytes = append(serializedBytes, 0x00)
		serializedBytes = paddedAppend(32, serializedBytes, k.key)
	} else {
		serializedBytes = append(serializedBytes, k.PublicKeyBytes()...)
	}

	serializedBytes = append(serializedBytes, checksum(serializedBytes)...)
	return serializedBytes, nil
}

// Encode returns the Base58Check extended key string for version v.
func (k *ExtendedKey) Encode(v *Version) (string, error) {
	bin, err := k.MarshalBinary(v)
	if err != nil {
		return "", err
	}
	return base58.Encode(bin), nil
}

// Decode parses a Base58Check secp256k1 extended key string and returns the
// key with the version it was serialized with.
func Decode(str string) (*ExtendedKey, *Version, error) {
	return DecodeCurve(str, Secp256k1)
}

// DecodeCurve is like Decode for keys of the given curve.  The curve is not
// part of the serialization, so it has to be supplied by the caller.
func DecodeCurve(str string, curve Curve) (*ExtendedKey, *Version, error) {
	bin := base58.Decode(str)
	if len(bin) == 0 && len(str) != 0 {
		return nil, nil, makeError(ErrMalformedPayload, "extended key "+
			"is not valid base58")
	}
	return UnmarshalBinary(bin, curve)
}

// UnmarshalBinary is the inverse of MarshalBinary.  Length, checksum and
// version failures are reported as ErrMalformedPayload, ErrChecksumMismatch
// and ErrUnknownVersion.
func UnmarshalBinary(data []byte, curve Curve) (*ExtendedKey, *Version,
	error) {

	if len(data) != serializedKeyLen+checksumLen {
		return nil, nil, makeError(ErrMalformedPayload, fmt.Sprintf(
			"serialized extended key must be %d bytes, got %d",
			serializedKeyLen+checksumLen, len(data)))
	}

	// Split the payload and checksum up and ensure the checksum matches.
	payload := data[:serializedKeyLen]
	checkSum := data[serializedKeyLen:]
	if !bytes.Equal(checkSum, checksum(payload)) {
		return nil, nil, makeError(ErrChecksumMismatch, "bad extended "+
			"key checksum")
	}

	// Deserialize each of the payload fields.
	version, ok := VersionByBytes(payload[:4])
	if !ok {
		return nil, nil, makeError(ErrUnknownVersion, fmt.Sprintf(
			"unknown extended key version %x", payload[:4]))
	}
	depth := payload[4]
	var fingerprint [4]byte
	copy(fingerprint[:], payload[5:9])
	childNumber := binary.BigEndian.Uint32(payload[9:13])
	chainCode := payload[13:45]
	keyData := payload[45:78]

	// Private key data is prefixed with 0x00.  Serialized compressed
	// secp256k1 pubkeys either start with 0x02 or 0x03, ed25519 public
	// keys share the 0x00 prefix so the version decides for them.
	if version.IsPrivate() {
		if keyData[0] != 0x00 {
			return nil, nil, makeError(ErrMalformedPayload, fmt.Sprintf(
				"%s key data is not a private key", version.prefix))
		}
		keyData = keyData[1:]
	}

	if depth == 0 && (childNumber != 0 || fingerprint != [4]byte{}) {
		return nil, nil, makeError(ErrMalformedPayload, "root key "+
			"with non-zero parent fingerprint or child number")
	}

	key, err := NewExtendedKey(keyData, chainCode, fingerprint, depth,
		childNumber, curve, version.IsPrivate())
	if err != nil {
		return nil, nil, makeError(ErrMalformedPayload, err.Error())
	}
	return key, version, nil
}
