// Package diagnostic provides structured explanations of pairing decisions
// made by the binder.
//
// Key capabilities:
//   - Paired field reports with the compatibility verdict
//   - Skipped field reports with the rejection reason
//   - Near-miss property name suggestions
//   - Metadata failures that abort a bind
package diagnostic
