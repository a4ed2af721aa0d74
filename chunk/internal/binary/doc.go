// Package binary provides fixed-width field cursors over preallocated
// byte slices in a caller-chosen byte order.
//
// Unlike encoding/binary.Read/Write it never reflects over structs: every
// field is written or read explicitly at the cursor position, so the wire
// layout is exactly the sequence of calls. This package is internal to
// the chunk codec.
package binary
