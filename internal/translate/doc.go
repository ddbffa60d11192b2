// Package translate answers "what is the current name of X".
//
// A Resolver decides which declaration a rename logically belongs to.
// VoidResolver performs no inheritance chase and is used when two
// independently obfuscated mapping sets are combined. IndexResolver walks
// the class hierarchy of a jar index to find the declaring ancestor of an
// inherited member.
//
// MappingTranslator rewrites entries into the target namespace. Structural
// components are translated first (outer class before inner name, owner
// before member, descriptor classes before the member itself, method before
// local variable), then the rename of the resolved entry is applied. Entries
// without a rename keep their original name segment.
package translate
