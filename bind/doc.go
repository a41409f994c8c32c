// Package bind populates view structs from domain objects.
//
// Sync pairs the properties of the target and source types by name, keeps
// the pairs whose declared types are compatible, and copies values across.
// Fields typed as bindable views (structs embedding view.Bound) are built
// recursively from the source value; collection views are built element by
// element. A target field that already holds a non-zero value readable
// through its public surface is left untouched.
//
// Pairings are computed once per (target, source) type pair and memoized.
package bind
