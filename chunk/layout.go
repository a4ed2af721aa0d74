package chunk

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Version is the required value of the first header byte.
const Version = 128

// Field widths shared by both address-width variants.
const (
	prologueSize  = 1 + 1 + 2 + 4 + 2 + 2 + 4 // version .. type
	meshFixedSize = 4 + 4 + 4 + 1 + 1 + 2     // index count .. attribute count
	attrFixedSize = 4 + 2 + 1 + 1 + 4 + 2 + 2 // format .. array size
)

// Header, mesh header and attribute record sizes for each address width.
const (
	HeaderSize32          = prologueSize + 4
	HeaderSize64          = prologueSize + 8
	MeshHeaderSize32      = HeaderSize32 + meshFixedSize + 3*4
	MeshHeaderSize64      = HeaderSize64 + meshFixedSize + 3*8
	AttributeRecordSize32 = attrFixedSize + 4
	AttributeRecordSize64 = attrFixedSize + 8
)

// The wire contract; any drift fails to compile.
var (
	_ = [1]struct{}{}[HeaderSize32-20]
	_ = [1]struct{}{}[HeaderSize64-24]
	_ = [1]struct{}{}[MeshHeaderSize32-48]
	_ = [1]struct{}{}[MeshHeaderSize64-64]
	_ = [1]struct{}{}[AttributeRecordSize32-20]
	_ = [1]struct{}{}[AttributeRecordSize64-24]
)

// Type identifies the payload of a data chunk.
type Type uint32

// TypeMesh is the only payload type the importer decodes.
const TypeMesh Type = 'M'<<24 | 'e'<<16 | 's'<<8 | 'h'

func (t Type) String() string {
	b := [4]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("Type(0x%08x)", uint32(t))
		}
	}
	return string(b[:])
}

// Traits are the layout parameters of one concrete signature, selected
// once per read or write.
type Traits struct {
	Order          binary.ByteOrder
	HeaderSize     int
	MeshHeaderSize int
	AttributeSize  int
	MaxSize        uint64
	Signature      Signature
	Wide           bool
	// Swap is set when the blob byte order differs from the host.
	Swap bool
}

// TraitsFor returns the layout parameters of sig, resolving SignatureCurrent.
func TraitsFor(sig Signature) Traits {
	sig = sig.Resolve()
	t := Traits{
		Signature: sig,
		Order:     sig.ByteOrder(),
		Wide:      sig.Is64(),
	}
	t.Swap = t.Order != HostOrder()
	if t.Wide {
		t.HeaderSize = HeaderSize64
		t.MeshHeaderSize = MeshHeaderSize64
		t.AttributeSize = AttributeRecordSize64
		t.MaxSize = math.MaxUint64
	} else {
		t.HeaderSize = HeaderSize32
		t.MeshHeaderSize = MeshHeaderSize32
		t.AttributeSize = AttributeRecordSize32
		t.MaxSize = math.MaxUint32
	}
	return t
}
