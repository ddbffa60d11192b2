// Package index answers structural questions about a compiled archive.
//
// It is built from the class files of a jar and records, per class, the
// declared fields and methods plus the super class and interface edges.
// The inheritance-aware resolver walks these edges to find where an
// inherited member is declared.
//
// Key types:
//   - Index: classes, members and inheritance edges
//   - ClassInfo: one class and its declarations
//   - Jar: a zip archive opened for class file streaming
package index
