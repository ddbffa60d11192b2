// Package tiny reads and writes Tiny v1 mapping files.
//
// A Tiny v1 file starts with a header naming its namespaces
// ("v1\tofficial\tintermediary\tnamed") followed by tab-separated CLASS,
// FIELD and METHOD lines. Member owners and descriptors are written in the
// first namespace. The reader builds a tree keyed by the from_column
// namespace with records naming the to_column namespace.
package tiny
