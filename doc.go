// Package meshblob reads and writes indexed meshes in a compact binary
// blob format meant to be memory-mapped or loaded in a single read.
//
// A blob is a data chunk header followed by a mesh header, an attribute
// table, the index bytes and the vertex bytes. Four variants exist,
// selected by the signature in the header: little or big endian, with
// 32-bit or 64-bit size and offset fields.
//
// # Architecture Overview
//
//	meshblob/            Root package with one-call helpers
//	├── mesh/            In-memory mesh: formats, attributes, validation
//	├── chunk/           Header, mesh header and attribute record codec
//	├── converter/       Mesh to blob writer
//	├── importer/        Blob to mesh reader
//	├── errors/          Structured error types
//	├── internal/swap/   In-place byte order reversal
//	├── internal/compress/ zstd and lz4 framing for stored blobs
//	├── internal/digest/ BLAKE3 content digests
//	└── cmd/meshblob/    Command-line tool
//
// # Quick Start
//
// Serialize a mesh for a big-endian 64-bit consumer and read it back:
//
//	blob, err := meshblob.Serialize(m, chunk.SignatureBig64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decoded, err := meshblob.Decode(blob)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoded meshes are always in host byte order regardless of the variant
// they were stored in.
//
// # Error Handling
//
// Errors are *errors.Error values carrying the phase and kind of failure:
//
//	if errors.IsKind(err, errors.KindOutOfBounds) {
//	    // an index or attribute range lies outside its block
//	}
//
// # Logging
//
// The converter and importer packages log through zap. Both default to a
// no-op logger; SetLogger configures them together.
package meshblob
