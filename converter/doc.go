// Package converter serializes meshes into blobs.
//
// A Converter is configured with a signature selecting the address width
// and byte order of its output:
//
//	c := converter.New(converter.WithSignature(chunk.SignatureBig64))
//	blob, err := c.Convert(m)
//
// The output size is computed up front and the blob is written in one
// pass: mesh header, attribute table, index view, vertex buffer. When the
// target byte order differs from the host, header fields are written in
// the target order and every index and every attribute component is
// byte-swapped in the copied buffers; the input mesh is never modified.
//
// # Errors
//
//	[convert] invalid_input   mesh fails mesh.Data.Validate
//	[convert] invalid_enum    unknown signature
//	[convert] overflow        blob larger than a 32-bit size field allows
//	[convert] unsupported     implementation-specific format needs a swap
//
// # Thread Safety
//
// Converter holds only configuration and is safe for concurrent use.
package converter
