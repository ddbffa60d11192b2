// Package mappingops implements the pure algorithms over mapping trees.
//
// Invert swaps the naming direction of a tree. Compose applies two rename
// sets in sequence, pivoting through the target namespace of the left tree.
// Both use translate.VoidResolver: the trees being combined were obfuscated
// independently, so inheritance chasing would conflate them.
//
// Entries other than classes, methods and fields (packages and local
// variables) are passed through translated, with their records unchanged.
package mappingops
