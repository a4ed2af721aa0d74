// Package digest computes BLAKE3 content digests of blobs and buffers.
package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

type domainKey [32]byte

// ASCII domain names, zero-padded to the 32-byte key size.
var (
	blobDomainKey = domainKey{
		'm', 'e', 's', 'h', 'b', 'l', 'o', 'b', '.', 'b', 'l', 'o', 'b', 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	bufferDomainKey = domainKey{
		'm', 'e', 's', 'h', 'b', 'l', 'o', 'b', '.', 'b', 'u', 'f', 'f', 'e', 'r', 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Blob returns the digest of a whole serialized blob.
func Blob(data []byte) Hash {
	return keyedHash(blobDomainKey, data)
}

// Buffer returns the digest of a decoded index or vertex buffer. Decoded
// buffers are in host byte order, so blobs of every variant holding the
// same mesh produce the same buffer digests on one host.
func Buffer(data []byte) Hash {
	return keyedHash(bufferDomainKey, data)
}

// String returns the hex encoding of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters of h.
func (h Hash) Short() string {
	return hex.EncodeToString(h[:6])
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// Parse decodes a 64-character hex string.
func Parse(s string) (Hash, error) {
	var h Hash
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(h) {
		return h, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(h))
	}
	copy(h[:], decoded)
	return h, nil
}

func keyedHash(key domainKey, data []byte) Hash {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h
}
