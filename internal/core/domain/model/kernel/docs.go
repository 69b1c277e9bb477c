// Package kernel provides core domain primitives shared across the order
// pipeline's domain model.
//
// Currently it holds a single primitive: UUID, a value object for order
// identifiers with validation and comparison behavior. The zero value is
// invalid; identifiers must be obtained through one of the constructor
// functions, which keeps the "id assigned exactly once" invariant easy to
// enforce at aggregate boundaries.
//
// Primitives in this package are immutable and safe for concurrent use.
package kernel
