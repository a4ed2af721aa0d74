// Package importer decodes meshes from blobs.
//
// Reading is two-phase. Open validates the data chunk header and keeps an
// owned copy of the blob; Mesh decodes the mesh sub-format from that copy:
//
//	imp := importer.New()
//	if err := imp.Open(data); err != nil {
//		return err
//	}
//	defer imp.Close()
//	m, err := imp.Mesh(0)
//
// Open succeeds for any well-formed chunk. Chunks whose type is not Mesh
// report a MeshCount of zero.
//
// Mesh returns a mesh whose index and vertex buffers are freshly
// allocated and converted to host byte order, so repeated calls are
// independent of each other and of the input slice.
//
// # Errors
//
//	[open]    invalid_header   short input, bad magic, unknown signature, bad size
//	[extract] not_initialized  no blob opened
//	[extract] not_found        mesh id out of range
//	[extract] unsupported      type version != 0, implementation-specific format needs a swap
//	[extract] invalid_data     size mismatch, bad index type or attribute record
//	[extract] out_of_bounds    index or attribute range outside its block
//
// # Thread Safety
//
// An Importer is not safe for concurrent use. Meshes it returns share no
// memory with it.
package importer
