// Package legacy bridges the CSV naming scheme used by older mod
// toolchains ("mcp" directories) to mapping trees.
//
// A directory holds three naming tables (fields.csv, methods.csv,
// params.csv) keyed by placeholder names such as func_123_a, a class and
// member table (joined.tsrg), a constructor id table (constructors.txt) and
// the compiled classes (joined_srg.jar). The jar is scanned for the
// @OnlyIn side annotation to fill in the side column of new rows.
//
// Trees read from such a directory are keyed by placeholder names and
// classify entries with their own Status rules: classes cannot be renamed,
// and members and arguments count as unmapped while their name still
// matches a placeholder pattern.
package legacy
