package chunk

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wippyai/meshblob/chunk/internal/binary"
	"github.com/wippyai/meshblob/errors"
	"github.com/wippyai/meshblob/mesh"
)

// Header is the data chunk header common to every blob.
type Header struct {
	Size        uint64
	Type        Type
	TypeVersion uint16
	Signature   Signature
}

// MeshHeader is the mesh-specific header following Header.
type MeshHeader struct {
	Header
	IndexOffset    uint64
	IndexDataSize  uint64
	VertexDataSize uint64
	IndexCount     uint32
	VertexCount    uint32
	Primitive      mesh.Primitive
	AttributeCount uint16
	IndexType      mesh.IndexType
}

// AttributeRecord is one entry of the attribute table.
type AttributeRecord struct {
	Offset       uint64
	Format       mesh.VertexFormat
	VertexCount  uint32
	Name         mesh.AttributeName
	Stride       int16
	ArraySize    uint16
	IsOffsetOnly bool
}

func putHeader(w *binary.Writer, t Traits, h Header) {
	sig := t.Signature.bytes()
	w.U8(Version)
	w.WriteBytes([]byte{'\n', '\r', '\n'})
	w.WriteBytes(sig[:])
	w.U16(0)
	w.U16(h.TypeVersion)
	w.U32(uint32(h.Type))
	w.Word(h.Size, t.Wide)
}

// PutHeader writes h into dst[:t.HeaderSize]. The signature comes from t.
func PutHeader(dst []byte, t Traits, h Header) {
	w := binary.NewWriter(dst[:t.HeaderSize], t.Order)
	putHeader(w, t, h)
	checkWritten(w, t.HeaderSize)
}

// PutMeshHeader writes h into dst[:t.MeshHeaderSize].
func PutMeshHeader(dst []byte, t Traits, h MeshHeader) {
	w := binary.NewWriter(dst[:t.MeshHeaderSize], t.Order)
	putHeader(w, t, h.Header)
	w.U32(h.IndexCount)
	w.U32(h.VertexCount)
	w.U32(uint32(h.Primitive))
	w.U8(byte(h.IndexType))
	w.Zero(1)
	w.U16(h.AttributeCount)
	w.Word(h.IndexOffset, t.Wide)
	w.Word(h.IndexDataSize, t.Wide)
	w.Word(h.VertexDataSize, t.Wide)
	checkWritten(w, t.MeshHeaderSize)
}

// PutAttribute writes a into dst[:t.AttributeSize].
func PutAttribute(dst []byte, t Traits, a AttributeRecord) {
	w := binary.NewWriter(dst[:t.AttributeSize], t.Order)
	w.U32(uint32(a.Format))
	w.U16(uint16(a.Name))
	if a.IsOffsetOnly {
		w.U8(1)
	} else {
		w.U8(0)
	}
	w.Zero(1)
	w.U32(a.VertexCount)
	w.U16(uint16(a.Stride))
	w.U16(a.ArraySize)
	w.Word(a.Offset, t.Wide)
	checkWritten(w, t.AttributeSize)
}

func checkWritten(w *binary.Writer, size int) {
	if w.Position() != size {
		panic(fmt.Sprintf("chunk: wrote %d bytes of a %d-byte record", w.Position(), size))
	}
}

// ReadHeader validates the data chunk header at the start of data and
// returns it together with the traits of its signature.
//
// It fails if data is shorter than the header, if the version, line-ending
// or reserved bytes are wrong, if the signature is unknown, or if the
// declared size is smaller than the header, larger than the host can
// address or larger than len(data).
func ReadHeader(data []byte) (Header, Traits, error) {
	if len(data) < HeaderSize32 {
		return Header{}, Traits{}, errors.New(errors.PhaseOpen, errors.KindInvalidHeader).
			Value(len(data)).
			Detail("expected at least %d bytes, got %d", HeaderSize32, len(data)).Build()
	}
	if data[0] != Version {
		return Header{}, Traits{}, errors.New(errors.PhaseOpen, errors.KindInvalidHeader).
			Path("version").Value(data[0]).
			Detail("expected %d, got %d", Version, data[0]).Build()
	}
	if data[1] != '\n' || data[2] != '\r' || data[3] != '\n' {
		return Header{}, Traits{}, errors.InvalidHeader(errors.PhaseOpen, "line endings",
			"expected 0a 0d 0a, got % x", data[1:4])
	}
	if data[8] != 0 || data[9] != 0 {
		return Header{}, Traits{}, errors.InvalidHeader(errors.PhaseOpen, "zero",
			"reserved field is % x, expected zero", data[8:10])
	}
	sig, ok := signatureFromBytes(data[4:8])
	if !ok {
		return Header{}, Traits{}, errors.New(errors.PhaseOpen, errors.KindInvalidHeader).
			Path("signature").Value(strconv.Quote(string(data[4:8]))).
			Detail("unrecognized signature %q", data[4:8]).Build()
	}

	t := TraitsFor(sig)
	if len(data) < t.HeaderSize {
		return Header{}, Traits{}, errors.New(errors.PhaseOpen, errors.KindInvalidHeader).
			Value(len(data)).
			Detail("expected at least %d bytes for a %s header, got %d", t.HeaderSize, sig, len(data)).Build()
	}

	r := binary.NewReader(data[:t.HeaderSize], t.Order)
	r.Skip(10)
	h := Header{Signature: sig}
	h.TypeVersion = r.U16()
	h.Type = Type(r.U32())
	h.Size = r.Word(t.Wide)
	if err := r.Err(); err != nil {
		return Header{}, Traits{}, errors.Wrap(errors.PhaseOpen, errors.KindInvalidHeader, err, "truncated header")
	}

	if h.Size > math.MaxInt {
		return Header{}, Traits{}, errors.New(errors.PhaseOpen, errors.KindInvalidHeader).
			Path("size").Value(h.Size).
			Detail("blob size %d does not fit the host address space", h.Size).Build()
	}
	if h.Size < uint64(t.HeaderSize) {
		return Header{}, Traits{}, errors.New(errors.PhaseOpen, errors.KindInvalidHeader).
			Path("size").Value(h.Size).
			Detail("declared %d bytes, smaller than the %d-byte header", h.Size, t.HeaderSize).Build()
	}
	if h.Size > uint64(len(data)) {
		return Header{}, Traits{}, errors.New(errors.PhaseOpen, errors.KindInvalidHeader).
			Path("size").Value(h.Size).
			Detail("declared %d bytes, got %d", h.Size, len(data)).Build()
	}
	return h, t, nil
}

// ReadMeshHeader decodes the mesh header from data, which must hold at
// least t.MeshHeaderSize bytes.
func ReadMeshHeader(data []byte, t Traits) (MeshHeader, error) {
	r := binary.NewReader(data, t.Order)
	r.Skip(10)
	var h MeshHeader
	h.Signature = t.Signature
	h.TypeVersion = r.U16()
	h.Type = Type(r.U32())
	h.Size = r.Word(t.Wide)
	h.IndexCount = r.U32()
	h.VertexCount = r.U32()
	h.Primitive = mesh.Primitive(r.U32())
	h.IndexType = mesh.IndexType(r.U8())
	r.Skip(1)
	h.AttributeCount = r.U16()
	h.IndexOffset = r.Word(t.Wide)
	h.IndexDataSize = r.Word(t.Wide)
	h.VertexDataSize = r.Word(t.Wide)
	if err := r.Err(); err != nil {
		return MeshHeader{}, errors.Wrap(errors.PhaseExtract, errors.KindInvalidData, err, "truncated mesh header")
	}
	return h, nil
}

// ReadAttribute decodes one attribute record from data.
func ReadAttribute(data []byte, t Traits) (AttributeRecord, error) {
	r := binary.NewReader(data, t.Order)
	var a AttributeRecord
	a.Format = mesh.VertexFormat(r.U32())
	a.Name = mesh.AttributeName(r.U16())
	a.IsOffsetOnly = r.U8() != 0
	r.Skip(1)
	a.VertexCount = r.U32()
	a.Stride = int16(r.U16())
	a.ArraySize = r.U16()
	a.Offset = r.Word(t.Wide)
	if err := r.Err(); err != nil {
		return AttributeRecord{}, errors.Wrap(errors.PhaseExtract, errors.KindInvalidData, err, "truncated attribute record")
	}
	return a, nil
}
