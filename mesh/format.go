package mesh

import (
	"fmt"
	"strconv"
)

// ComponentType is the scalar type of one vertex format component.
type ComponentType uint8

const (
	ComponentUnsignedByte ComponentType = iota + 1
	ComponentByte
	ComponentUnsignedShort
	ComponentShort
	ComponentUnsignedInt
	ComponentInt
	ComponentHalf
	ComponentFloat
	ComponentDouble
)

// Size returns the byte width of one component, 0 if t is unknown.
func (t ComponentType) Size() int {
	switch t {
	case ComponentUnsignedByte, ComponentByte:
		return 1
	case ComponentUnsignedShort, ComponentShort, ComponentHalf:
		return 2
	case ComponentUnsignedInt, ComponentInt, ComponentFloat:
		return 4
	case ComponentDouble:
		return 8
	default:
		return 0
	}
}

// normalizable reports whether t may carry the normalized flag.
func (t ComponentType) normalizable() bool {
	switch t {
	case ComponentUnsignedByte, ComponentByte, ComponentUnsignedShort, ComponentShort:
		return true
	default:
		return false
	}
}

var componentNames = [...]struct{ scalar, suffix string }{
	ComponentUnsignedByte:  {"UnsignedByte", "ub"},
	ComponentByte:          {"Byte", "b"},
	ComponentUnsignedShort: {"UnsignedShort", "us"},
	ComponentShort:         {"Short", "s"},
	ComponentUnsignedInt:   {"UnsignedInt", "ui"},
	ComponentInt:           {"Int", "i"},
	ComponentHalf:          {"Half", "h"},
	ComponentFloat:         {"Float", ""},
	ComponentDouble:        {"Double", "d"},
}

// VertexFormat describes the layout of one attribute value.
//
// Bit layout:
//
//	bits 0-7    component type
//	bits 8-11   components per vector (1-4)
//	bits 12-15  vectors per value (1-4, matrices use >1)
//	bit  16     normalized
//	bit  31     implementation-specific, remaining bits opaque
type VertexFormat uint32

const (
	formatTypeMask     = 0xff
	formatCountShift   = 8
	formatVectorShift  = 12
	formatNormalized   = 1 << 16
	formatKnownBitMask = formatTypeMask | 0xf<<formatCountShift | 0xf<<formatVectorShift | formatNormalized
)

func packFormat(t ComponentType, components, vectors uint32, normalized bool) VertexFormat {
	f := uint32(t) | components<<formatCountShift | vectors<<formatVectorShift
	if normalized {
		f |= formatNormalized
	}
	return VertexFormat(f)
}

// Common vertex formats.
var (
	VertexFormatFloat   = packFormat(ComponentFloat, 1, 1, false)
	VertexFormatVector2 = packFormat(ComponentFloat, 2, 1, false)
	VertexFormatVector3 = packFormat(ComponentFloat, 3, 1, false)
	VertexFormatVector4 = packFormat(ComponentFloat, 4, 1, false)

	VertexFormatHalf     = packFormat(ComponentHalf, 1, 1, false)
	VertexFormatVector2h = packFormat(ComponentHalf, 2, 1, false)
	VertexFormatVector3h = packFormat(ComponentHalf, 3, 1, false)
	VertexFormatVector4h = packFormat(ComponentHalf, 4, 1, false)

	VertexFormatDouble   = packFormat(ComponentDouble, 1, 1, false)
	VertexFormatVector3d = packFormat(ComponentDouble, 3, 1, false)

	VertexFormatUnsignedByte  = packFormat(ComponentUnsignedByte, 1, 1, false)
	VertexFormatUnsignedShort = packFormat(ComponentUnsignedShort, 1, 1, false)
	VertexFormatUnsignedInt   = packFormat(ComponentUnsignedInt, 1, 1, false)
	VertexFormatInt           = packFormat(ComponentInt, 1, 1, false)

	VertexFormatVector2usNormalized = packFormat(ComponentUnsignedShort, 2, 1, true)
	VertexFormatVector3sNormalized  = packFormat(ComponentShort, 3, 1, true)
	VertexFormatVector3bNormalized  = packFormat(ComponentByte, 3, 1, true)
	VertexFormatVector3ubNormalized = packFormat(ComponentUnsignedByte, 3, 1, true)
	VertexFormatVector4ubNormalized = packFormat(ComponentUnsignedByte, 4, 1, true)
	VertexFormatVector4usNormalized = packFormat(ComponentUnsignedShort, 4, 1, true)

	VertexFormatMatrix3x3 = packFormat(ComponentFloat, 3, 3, false)
	VertexFormatMatrix4x4 = packFormat(ComponentFloat, 4, 4, false)
)

// VertexFormatOf builds a format from its parts. It returns false if the
// combination is not representable.
func VertexFormatOf(t ComponentType, components, vectors int, normalized bool) (VertexFormat, bool) {
	if components < 1 || components > 4 || vectors < 1 || vectors > 4 {
		return 0, false
	}
	f := packFormat(t, uint32(components), uint32(vectors), normalized)
	return f, f.Valid()
}

// VertexFormatWrap marks an implementation-specific format value.
func VertexFormatWrap(v uint32) VertexFormat {
	return VertexFormat(v | implementationSpecific)
}

// IsImplementationSpecific reports whether the format layout is opaque.
func (f VertexFormat) IsImplementationSpecific() bool {
	return f&implementationSpecific != 0
}

// Unwrap returns the backend-defined value of an implementation-specific format.
func (f VertexFormat) Unwrap() uint32 {
	return uint32(f &^ implementationSpecific)
}

// ComponentType returns the scalar type, 0 for implementation-specific formats.
func (f VertexFormat) ComponentType() ComponentType {
	if f.IsImplementationSpecific() {
		return 0
	}
	return ComponentType(f & formatTypeMask)
}

// ComponentCount returns the number of components per vector.
func (f VertexFormat) ComponentCount() int {
	if f.IsImplementationSpecific() {
		return 0
	}
	return int(f>>formatCountShift) & 0xf
}

// VectorCount returns the number of vectors per value, 1 for non-matrix formats.
func (f VertexFormat) VectorCount() int {
	if f.IsImplementationSpecific() {
		return 0
	}
	return int(f>>formatVectorShift) & 0xf
}

// ComponentSize returns the byte width of one component.
func (f VertexFormat) ComponentSize() int {
	return f.ComponentType().Size()
}

// IsNormalized reports whether integer components map to [0,1] or [-1,1].
func (f VertexFormat) IsNormalized() bool {
	return !f.IsImplementationSpecific() && f&formatNormalized != 0
}

// Size returns the byte size of one value, 0 for implementation-specific formats.
func (f VertexFormat) Size() int {
	return f.VectorCount() * f.ComponentCount() * f.ComponentSize()
}

// Valid reports whether f is implementation-specific or a well-formed descriptor.
func (f VertexFormat) Valid() bool {
	if f.IsImplementationSpecific() {
		return true
	}
	if uint32(f)&^formatKnownBitMask != 0 {
		return false
	}
	t := f.ComponentType()
	if t.Size() == 0 {
		return false
	}
	if c := f.ComponentCount(); c < 1 || c > 4 {
		return false
	}
	if v := f.VectorCount(); v < 1 || v > 4 {
		return false
	}
	if f.IsNormalized() && !t.normalizable() {
		return false
	}
	return true
}

func (f VertexFormat) String() string {
	if f.IsImplementationSpecific() {
		return fmt.Sprintf("ImplementationSpecific(0x%x)", f.Unwrap())
	}
	if !f.Valid() {
		return fmt.Sprintf("VertexFormat(0x%x)", uint32(f))
	}
	names := componentNames[f.ComponentType()]
	var s string
	switch {
	case f.VectorCount() > 1:
		s = "Matrix" + strconv.Itoa(f.VectorCount()) + "x" + strconv.Itoa(f.ComponentCount()) + names.suffix
	case f.ComponentCount() > 1:
		s = "Vector" + strconv.Itoa(f.ComponentCount()) + names.suffix
	default:
		s = names.scalar
	}
	if f.IsNormalized() {
		s += "Normalized"
	}
	return s
}
