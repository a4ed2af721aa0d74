package mesh

import "fmt"

// AttributeName is the semantic of a vertex attribute.
type AttributeName uint16

const (
	AttributePosition AttributeName = iota + 1
	AttributeTangent
	AttributeBitangent
	AttributeNormal
	AttributeTextureCoordinates
	AttributeColor
	AttributeObjectID
)

const attributeCustomBase = 1 << 15

var attributeNames = [...]string{
	AttributePosition:           "Position",
	AttributeTangent:            "Tangent",
	AttributeBitangent:          "Bitangent",
	AttributeNormal:             "Normal",
	AttributeTextureCoordinates: "TextureCoordinates",
	AttributeColor:              "Color",
	AttributeObjectID:           "ObjectId",
}

// AttributeCustom returns the n-th custom attribute name.
func AttributeCustom(n uint16) AttributeName {
	return AttributeName(attributeCustomBase + n&(attributeCustomBase-1))
}

// IsCustom reports whether a is an application-defined attribute.
func (a AttributeName) IsCustom() bool {
	return a >= attributeCustomBase
}

func (a AttributeName) String() string {
	if a.IsCustom() {
		return fmt.Sprintf("Custom(%d)", uint16(a-attributeCustomBase))
	}
	if int(a) < len(attributeNames) && attributeNames[a] != "" {
		return attributeNames[a]
	}
	return fmt.Sprintf("AttributeName(%d)", uint16(a))
}

// Attribute locates one vertex attribute inside a mesh vertex buffer.
type Attribute struct {
	Name   AttributeName
	Format VertexFormat
	// Offset is the byte offset of the first value from the start of the
	// vertex buffer.
	Offset int
	Stride int16
	// ArraySize is 0 for a single value per vertex.
	ArraySize uint16
}

// ElementSize returns the byte size of the data one vertex holds for
// this attribute, 0 for implementation-specific formats.
func (a Attribute) ElementSize() int {
	return a.Format.Size() * a.arrayCount()
}

func (a Attribute) arrayCount() int {
	if a.ArraySize == 0 {
		return 1
	}
	return int(a.ArraySize)
}

// byteRange returns the lowest and one-past-highest byte touched by
// count values. Negative strides walk backwards from Offset. An empty
// attribute touches nothing.
func (a Attribute) byteRange(count uint32) (lo, hi int64) {
	if count == 0 {
		return 0, 0
	}
	first := int64(a.Offset)
	last := first + int64(count-1)*int64(a.Stride)
	lo, hi = first, last
	if last < first {
		lo, hi = last, first
	}
	return lo, hi + int64(a.ElementSize())
}
