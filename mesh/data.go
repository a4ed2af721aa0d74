package mesh

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/wippyai/meshblob/errors"
)

// Data is an indexed mesh. Index and vertex values are in host byte order.
type Data struct {
	IndexData  []byte
	VertexData []byte
	Attributes []Attribute

	// IndexOffset is the byte offset of the first index inside IndexData.
	IndexOffset int
	IndexCount  uint32
	VertexCount uint32
	Primitive   Primitive
	IndexType   IndexType
}

// IsIndexed reports whether the mesh has an index buffer.
func (d *Data) IsIndexed() bool {
	return d.IndexType != IndexTypeNone
}

// IndexBytes returns the index view, nil for non-indexed meshes.
func (d *Data) IndexBytes() []byte {
	if !d.IsIndexed() {
		return nil
	}
	end := d.IndexOffset + int(d.IndexCount)*d.IndexType.Size()
	return d.IndexData[d.IndexOffset:end]
}

// Indices returns the index values widened to uint32.
func (d *Data) Indices() ([]uint32, error) {
	if !d.IsIndexed() {
		return nil, errors.InvalidInput(errors.PhaseValidate, "mesh is not indexed")
	}
	if err := d.validateIndices(); err != nil {
		return nil, err
	}
	view := d.IndexBytes()
	out := make([]uint32, d.IndexCount)
	switch d.IndexType {
	case IndexTypeUnsignedByte:
		for i := range out {
			out[i] = uint32(view[i])
		}
	case IndexTypeUnsignedShort:
		for i := range out {
			out[i] = uint32(binary.NativeEndian.Uint16(view[i*2:]))
		}
	case IndexTypeUnsignedInt:
		for i := range out {
			out[i] = binary.NativeEndian.Uint32(view[i*4:])
		}
	}
	return out, nil
}

// AttributeCount returns the number of attributes.
func (d *Data) AttributeCount() int {
	return len(d.Attributes)
}

// AttributeID returns the index of the n-th attribute with the given name.
func (d *Data) AttributeID(name AttributeName, n int) (int, bool) {
	for i, a := range d.Attributes {
		if a.Name != name {
			continue
		}
		if n == 0 {
			return i, true
		}
		n--
	}
	return 0, false
}

// HasAttribute reports whether the mesh has at least one attribute with the given name.
func (d *Data) HasAttribute(name AttributeName) bool {
	_, ok := d.AttributeID(name, 0)
	return ok
}

// AttributeElement returns the bytes holding attribute id of the given vertex.
// The slice aliases VertexData.
func (d *Data) AttributeElement(id int, vertex int) []byte {
	a := d.Attributes[id]
	start := a.Offset + vertex*int(a.Stride)
	return d.VertexData[start : start+a.ElementSize()]
}

// Validate checks that the index view and every attribute view lie inside
// their buffers and that all enum values are known.
func (d *Data) Validate() error {
	if d == nil {
		return errors.InvalidInput(errors.PhaseValidate, "nil mesh")
	}
	if err := d.validateIndices(); err != nil {
		return err
	}
	for i, a := range d.Attributes {
		path := []string{"attribute", strconv.Itoa(i)}
		if !a.Format.Valid() {
			return errors.InvalidEnum(errors.PhaseValidate, path, a.Format, "vertex format")
		}
		if a.Offset < 0 {
			return errors.New(errors.PhaseValidate, errors.KindOutOfBounds).
				Path(path...).Value(a.Offset).
				Detail("negative offset %d", a.Offset).Build()
		}
		lo, hi := a.byteRange(d.VertexCount)
		if lo < 0 {
			return errors.New(errors.PhaseValidate, errors.KindOutOfBounds).
				Path(path...).Value(lo).
				Detail("stride %d walks %d bytes before the vertex buffer", a.Stride, -lo).Build()
		}
		if hi > int64(len(d.VertexData)) {
			return errors.OutOfBounds(errors.PhaseValidate, path, uint64(hi), uint64(len(d.VertexData)))
		}
	}
	return nil
}

func (d *Data) validateIndices() error {
	if !d.IndexType.Valid() {
		return errors.InvalidEnum(errors.PhaseValidate, []string{"index type"}, uint8(d.IndexType), "index type")
	}
	if !d.IsIndexed() {
		if d.IndexCount != 0 {
			return errors.InvalidData(errors.PhaseValidate, []string{"indices"},
				fmt.Sprintf("index count %d on a non-indexed mesh", d.IndexCount))
		}
		return nil
	}
	if d.IndexOffset < 0 {
		return errors.New(errors.PhaseValidate, errors.KindOutOfBounds).
			Path("indices").Value(d.IndexOffset).
			Detail("negative index offset %d", d.IndexOffset).Build()
	}
	end := uint64(d.IndexOffset) + uint64(d.IndexCount)*uint64(d.IndexType.Size())
	if end > uint64(len(d.IndexData)) {
		return errors.OutOfBounds(errors.PhaseValidate, []string{"indices"}, end, uint64(len(d.IndexData)))
	}
	return nil
}
