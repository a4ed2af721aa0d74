// Package chunk defines the binary layout of mesh blobs.
//
// A blob is a data chunk header, a mesh header, an attribute table, the
// index data and the vertex data, back to back:
//
//	┌────────────────────────────┐ 0
//	│ DataChunkHeader  20 / 24   │
//	│ MeshDataHeader   +28 / +40 │
//	├────────────────────────────┤ 48 / 64
//	│ attribute records          │ 20 / 24 bytes each
//	├────────────────────────────┤
//	│ index data                 │ indexDataSize bytes
//	├────────────────────────────┤
//	│ vertex data                │ vertexDataSize bytes
//	└────────────────────────────┘ size
//
// The two numbers are the 32-bit and 64-bit address width variants; they
// differ only in the width of size and offset fields. All multi-byte
// fields use the byte order named by the signature, except the signature
// itself which is four raw bytes readable before the order is known.
//
// # Data chunk header
//
//	Offset  Width  Field
//	──────────────────────────────────────────
//	0       1      version (128)
//	1       1      '\n'
//	2       2      '\r' '\n'
//	4       4      signature
//	8       2      reserved, zero
//	10      2      type version
//	12      4      type
//	16      4/8    size of the whole blob
//
// # Mesh header
//
//	Offset  Width  Field
//	──────────────────────────────────────────
//	H+0     4      index count
//	H+4     4      vertex count
//	H+8     4      primitive
//	H+12    1      index type
//	H+13    1      reserved, zero
//	H+14    2      attribute count
//	H+16    w      index offset
//	H+16+w  w      index data size
//	H+16+2w w      vertex data size
//
// # Attribute record
//
//	Offset  Width  Field
//	──────────────────────────────────────────
//	0       4      vertex format
//	4       2      attribute name
//	6       1      offset-only flag (always 1)
//	7       1      reserved, zero
//	8       4      vertex count
//	12      2      stride (signed)
//	14      2      array size
//	16      w      offset from the start of vertex data
//
// The line-ending bytes catch transports that rewrite newlines; a
// mismatch is a hard error.
package chunk
