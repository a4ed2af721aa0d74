package chunk

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/meshblob/errors"
)

// Signature selects the address width and byte order of a blob.
type Signature uint8

const (
	// SignatureCurrent resolves to the host width and byte order. It is
	// never written to a blob.
	SignatureCurrent Signature = iota
	SignatureLittle32
	SignatureLittle64
	SignatureBig32
	SignatureBig64
)

var signatureBytes = [...][4]byte{
	SignatureLittle32: {'B', 'L', 'O', 'B'},
	SignatureLittle64: {'B', 'L', 'O', 'b'},
	SignatureBig32:    {'B', 'l', 'o', 'b'},
	SignatureBig64:    {'b', 'l', 'o', 'b'},
}

var signatureNames = [...]string{
	SignatureCurrent:  "current",
	SignatureLittle32: "little32",
	SignatureLittle64: "little64",
	SignatureBig32:    "big32",
	SignatureBig64:    "big64",
}

// Signatures lists every selectable signature, SignatureCurrent first.
func Signatures() []Signature {
	return []Signature{SignatureCurrent, SignatureLittle32, SignatureLittle64, SignatureBig32, SignatureBig64}
}

// ParseSignature maps a variant name (current, little32, little64, big32,
// big64) to its signature. Matching is case-insensitive.
func ParseSignature(name string) (Signature, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for sig, n := range signatureNames {
		if n == lower {
			return Signature(sig), nil
		}
	}
	return 0, errors.InvalidEnum(errors.PhaseConfig, []string{"signature"}, strconv.Quote(name), "signature")
}

// String returns the variant name.
func (s Signature) String() string {
	if int(s) < len(signatureNames) {
		return signatureNames[s]
	}
	return fmt.Sprintf("Signature(%d)", uint8(s))
}

// Resolve replaces SignatureCurrent with the concrete host signature.
func (s Signature) Resolve() Signature {
	if s != SignatureCurrent {
		return s
	}
	wide := strconv.IntSize == 64
	switch {
	case HostIsLittleEndian() && wide:
		return SignatureLittle64
	case HostIsLittleEndian():
		return SignatureLittle32
	case wide:
		return SignatureBig64
	default:
		return SignatureBig32
	}
}

// Valid reports whether s is one of the five known signatures.
func (s Signature) Valid() bool {
	return s <= SignatureBig64
}

// Is64 reports whether size and offset fields are 64-bit wide.
func (s Signature) Is64() bool {
	s = s.Resolve()
	return s == SignatureLittle64 || s == SignatureBig64
}

// ByteOrder returns the byte order of multi-byte fields.
func (s Signature) ByteOrder() binary.ByteOrder {
	s = s.Resolve()
	if s == SignatureLittle32 || s == SignatureLittle64 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid signature %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Signature) UnmarshalText(text []byte) error {
	sig, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*s = sig
	return nil
}

func (s Signature) bytes() [4]byte {
	return signatureBytes[s.Resolve()]
}

func signatureFromBytes(b []byte) (Signature, bool) {
	for sig := SignatureLittle32; sig <= SignatureBig64; sig++ {
		want := signatureBytes[sig]
		if string(b) == string(want[:]) {
			return sig, true
		}
	}
	return 0, false
}

// HostIsLittleEndian reports the byte order of the running machine.
func HostIsLittleEndian() bool {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	return b[0] == 1
}

// HostOrder returns binary.LittleEndian or binary.BigEndian to match the
// running machine.
func HostOrder() binary.ByteOrder {
	if HostIsLittleEndian() {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
