// Package yamlfmt is the native YAML mapping format.
//
// The file variant stores a whole tree as one mapping document. The
// directory variant stores one document per top-level class, at a path
// derived from the class name, plus package renames in package-info.yaml.
package yamlfmt
