// Package entry defines the identifiers the mapping engine renames.
//
// An Entry is one of a closed set of value types:
//   - PackageEntry: a package path such as "net/minecraft/world"
//   - ClassEntry: a full internal class name; inner classes use '$'
//   - MethodEntry: owning class, name and method descriptor
//   - FieldEntry: owning class, name and type descriptor
//   - LocalVariableEntry: owning method, slot index and argument flag
//
// Entries are comparable values. Two entries are the same identifier when
// Identity returns equal values; the name carried by a local variable is
// display data only and does not take part in identity.
//
// Descriptors follow the JVM syntax ("(ILjava/lang/String;)V") and can be
// remapped class by class, which is how translation rewrites member owners
// and signatures after classes have been renamed.
package entry
