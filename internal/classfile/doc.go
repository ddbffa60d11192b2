// Package classfile reads and writes the metadata subset of JVM class files.
//
// Parse extracts what the mapping engine needs from a class without
// retaining its bytes: access flags, class hierarchy, declared fields and
// methods, and runtime annotations on the class and its members. Code and
// every other attribute are skipped.
//
// Encode writes the same subset back out. The output is a structurally valid
// class file without method bodies, which is enough for archives consumed by
// the distribution scan and the jar index.
package classfile
