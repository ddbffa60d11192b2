// Package format is the pluggable registry of mapping formats.
//
// A Format has a name and ordered lists of named reader and writer
// variants. Each variant declares the path shapes it accepts (a single file
// or a directory), a schema of options and a structural precondition check
// on a path (for example, that required sidecar files exist).
//
// When no variant is named explicitly, the registry probes the variants of
// the format in registration order and picks the first whose path shape
// matches and whose precondition check passes. Unknown formats, unknown
// variants, missing required options and variants that accept no path at
// all are configuration errors reported before any file is touched.
//
// Readers and writers receive a lazily loaded jar index, so the archive is
// only opened by formats that need it.
package format
