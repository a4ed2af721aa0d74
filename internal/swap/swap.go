// Package swap reverses the byte order of fixed-width values in place.
package swap

import "slices"

// Elements reverses every consecutive width-byte element of data.
// Widths of 0 or 1 leave data untouched; a trailing partial element is ignored.
func Elements(data []byte, width int) {
	if width <= 1 {
		return
	}
	for i := 0; i+width <= len(data); i += width {
		slices.Reverse(data[i : i+width])
	}
}

// Layout describes how one attribute value is split into components.
type Layout struct {
	// Arrays is the number of array elements per vertex, at least 1.
	Arrays int
	// Vectors is the number of vectors per array element, at least 1.
	Vectors int
	// Components is the number of components per vector.
	Components int
	// ComponentSize is the byte width of one component.
	ComponentSize int
}

// Strided swaps every component of count values laid out in data starting
// at offset and advancing by stride bytes per value. Stride may be
// negative. The caller guarantees the whole range lies inside data.
func Strided(data []byte, offset, stride, count int, l Layout) {
	if l.ComponentSize <= 1 {
		return
	}
	vectorSize := l.Components * l.ComponentSize
	arraySize := l.Vectors * vectorSize
	for v := 0; v < count; v++ {
		base := offset + v*stride
		for a := 0; a < l.Arrays; a++ {
			for vec := 0; vec < l.Vectors; vec++ {
				for c := 0; c < l.Components; c++ {
					pos := base + a*arraySize + vec*vectorSize + c*l.ComponentSize
					slices.Reverse(data[pos : pos+l.ComponentSize])
				}
			}
		}
	}
}
