package swap

import "github.com/wippyai/meshblob/mesh"

// LayoutOf returns the component layout of one value of a.
func LayoutOf(a mesh.Attribute) Layout {
	arrays := int(a.ArraySize)
	if arrays == 0 {
		arrays = 1
	}
	return Layout{
		Arrays:        arrays,
		Vectors:       a.Format.VectorCount(),
		Components:    a.Format.ComponentCount(),
		ComponentSize: a.Format.ComponentSize(),
	}
}

// Attribute swaps every component of the first count values of a inside
// vertexData. Implementation-specific formats have no known layout and
// are left untouched; callers reject them before swapping.
//
// Each call swaps the bytes a views regardless of other attributes. When
// two attributes view the same multi-byte components, calling Attribute
// for both reverses those bytes twice and leaves them in their original
// order; misaligned overlaps are scrambled.
func Attribute(vertexData []byte, a mesh.Attribute, count uint32) {
	if a.Format.IsImplementationSpecific() {
		return
	}
	Strided(vertexData, a.Offset, int(a.Stride), int(count), LayoutOf(a))
}
