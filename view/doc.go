// Package view defines the family of externally safe projection types
// populated by the binder and the normalizer that turns them into the plain
// map/list/scalar tree handed to an encoder.
//
// A view is any struct. Views embedding Bound are constructed by the binder
// whenever a field of that type is paired, and Iterable (or any Collection)
// fields are built element by element. Response, Data and KeyValue describe
// top-level results; Render and Write encode them as JSON.
package view
