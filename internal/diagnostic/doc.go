// Package diagnostic collects structured errors, warnings and notes.
//
// Diagnostics are used where a check should report every problem it finds
// instead of stopping at the first one:
//   - path checks of format readers and writers (each missing sidecar file)
//   - validation of a mapping document against a jar index
//   - entries skipped by writers that cannot represent them
package diagnostic
