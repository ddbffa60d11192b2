// Package errors defines the typed failures surfaced by the mapping engine.
//
// Every failure that leaves a reader, writer or mapping algorithm carries one of
// four codes so callers can tell them apart without string matching:
//   - PARSE_ERROR: malformed mapping source (bad CSV row, unparseable descriptor)
//   - CONFIG_ERROR: unknown format or variant, missing option, unsupported path
//   - CONSISTENCY_ERROR: distribution contradictions and violated preconditions
//   - IO_ERROR: filesystem or archive access failures
package errors
