// Package mapping provides the YAML mapping document: its schema, parsing,
// conversion to and from mapping trees, and validation against a jar index.
//
// # Schema Overview
//
//	version: "1"
//	packages:
//	  - obf: a
//	    deobf: net/example
//	classes:
//	  - obf: a/b
//	    deobf: net/example/Block
//	    access: public
//	    fields:
//	      - obf: a
//	        desc: I
//	        deobf: lightLevel
//	    methods:
//	      - obf: a
//	        desc: (IJ)V
//	        deobf: setLight
//	        # list form or index map form
//	        params:
//	          1: level
//	          2: time
//	        locals:
//	          - index: 4
//	            name: previous
//	    classes:
//	      - obf: c          # inner class, simple name only
//	        deobf: Face
//
// A class, field or method without deobf (and without access) is kept only
// for navigation. Inner class names are simple names; top-level class names
// are full internal names.
//
// # Validation
//
// Validate checks a document against a jar index and reports, without
// stopping at the first problem:
//   - classes and members that are not declared in the jar
//   - duplicated classes, members and variables
//   - malformed descriptors and parameter slots out of range
package mapping
