// Package tree stores rename records keyed by entry.
//
// A Tree maps entries to optional rename records and keeps every stored
// entry's ancestors reachable, so child and sibling queries never scan the
// whole set. Entries inserted without a record act as navigation nodes.
//
// Key types:
//   - HashTree: the map-backed Tree
//   - DeltaTrackingTree: records changes since a base snapshot
//   - Delta: base snapshot plus the set of changed entries
//   - Status: READONLY / UNMAPPED / MAPPED classification of an entry pair
//
// Trees are not safe for concurrent mutation; callers partition work by tree.
package tree
