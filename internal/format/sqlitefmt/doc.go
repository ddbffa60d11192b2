// Package sqlitefmt stores a mapping tree in a single SQLite database.
//
// Every node of the tree is one row of the entries table. Navigation
// nodes have a NULL target. Local variables are stored against their
// method (owner, name and descriptor of the method) with their slot in idx.
//
// The database is opened through the pure Go modernc.org/sqlite driver,
// so paths must be local files.
package sqlitefmt
