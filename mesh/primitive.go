package mesh

import "fmt"

// Primitive is the mesh topology.
type Primitive uint32

const (
	PrimitivePoints Primitive = iota + 1
	PrimitiveLines
	PrimitiveLineLoop
	PrimitiveLineStrip
	PrimitiveTriangles
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
	PrimitiveInstances
	PrimitiveFaces
	PrimitiveEdges
)

const implementationSpecific = 1 << 31

var primitiveNames = [...]string{
	PrimitivePoints:        "Points",
	PrimitiveLines:         "Lines",
	PrimitiveLineLoop:      "LineLoop",
	PrimitiveLineStrip:     "LineStrip",
	PrimitiveTriangles:     "Triangles",
	PrimitiveTriangleStrip: "TriangleStrip",
	PrimitiveTriangleFan:   "TriangleFan",
	PrimitiveInstances:     "Instances",
	PrimitiveFaces:         "Faces",
	PrimitiveEdges:         "Edges",
}

// PrimitiveWrap marks an implementation-specific primitive value.
func PrimitiveWrap(v uint32) Primitive {
	return Primitive(v | implementationSpecific)
}

// IsImplementationSpecific reports whether p wraps a backend-defined value.
func (p Primitive) IsImplementationSpecific() bool {
	return p&implementationSpecific != 0
}

func (p Primitive) String() string {
	if p.IsImplementationSpecific() {
		return fmt.Sprintf("ImplementationSpecific(0x%x)", uint32(p&^implementationSpecific))
	}
	if int(p) < len(primitiveNames) && primitiveNames[p] != "" {
		return primitiveNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", uint32(p))
}

// IndexType is the element type of the index buffer.
type IndexType uint8

const (
	IndexTypeNone IndexType = iota
	IndexTypeUnsignedByte
	IndexTypeUnsignedShort
	IndexTypeUnsignedInt
)

// Size returns the byte width of one index, 0 for IndexTypeNone.
func (t IndexType) Size() int {
	switch t {
	case IndexTypeUnsignedByte:
		return 1
	case IndexTypeUnsignedShort:
		return 2
	case IndexTypeUnsignedInt:
		return 4
	default:
		return 0
	}
}

// Valid reports whether t is a known index type.
func (t IndexType) Valid() bool {
	return t <= IndexTypeUnsignedInt
}

func (t IndexType) String() string {
	switch t {
	case IndexTypeNone:
		return "None"
	case IndexTypeUnsignedByte:
		return "UnsignedByte"
	case IndexTypeUnsignedShort:
		return "UnsignedShort"
	case IndexTypeUnsignedInt:
		return "UnsignedInt"
	default:
		return fmt.Sprintf("IndexType(%d)", uint8(t))
	}
}
