// Package match decides which field pairs the binder may copy.
//
// Key functions:
//   - Resolver.Check / Resolver.IsAssignable: type compatibility of a target
//     field against a source field
//   - Suggest: near-miss property names for unmatched target fields
package match
