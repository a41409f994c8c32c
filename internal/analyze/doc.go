// Package analyze extracts and memoizes property metadata of struct types.
//
// It uses reflect to build a canonical in-memory model of a struct and the
// structs it embeds, which play the role of ancestors: promoted fields are
// part of the embedding struct, and a declaration on a more derived struct
// shadows one from an embedded struct.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeRef: closed classification of a declared type (builtin/named/union/unresolved)
//   - FieldDescriptor: property name, Go name, type, visibility, owner and index path
//   - FieldMap: ordered property name -> FieldDescriptor mapping
//   - Cache: process-wide memoization keyed by reflect.Type
package analyze
