// Package kernel provides core domain primitives for the freight ledger.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for party and aggregate identifiers with validation and
//     comparison capabilities; the nil UUID serves as the reserved "no link" sentinel
//     and is never a valid registry member
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
