// Package mesh defines the in-memory indexed mesh exchanged by the blob
// converter and importer.
//
// A mesh is a primitive topology, an optional index buffer and a vertex
// buffer described by an ordered list of attributes. Buffers are plain
// byte slices holding values in host byte order; attributes locate their
// data inside the vertex buffer by byte offset and stride.
//
//	┌──────────────┬──────────────────────────────────────────────┐
//	│ IndexData    │ [IndexOffset, IndexOffset+IndexCount*size)   │
//	│ VertexData   │ attribute i at Offset + v*Stride, v < count  │
//	└──────────────┴──────────────────────────────────────────────┘
//
// # Formats
//
// A VertexFormat packs a component type, a component count, a vector
// count (matrices have more than one vector) and a normalization flag
// into a uint32. Formats with the top bit set are implementation-specific:
// their layout is opaque and they cannot be byte-swapped or decoded.
package mesh
