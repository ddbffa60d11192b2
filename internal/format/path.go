package format

import (
	"context"
	"fmt"
	"strings"

	"remapper/internal/diagnostic"
	"remapper/internal/storage"
)

// PathType is a path shape a reader or writer accepts.
type PathType int

const (
	// PathFile accepts anything that is not a directory, including paths
	// that do not exist yet.
	PathFile PathType = iota
	// PathDirectory accepts existing directories.
	PathDirectory
)

func (p PathType) String() string {
	if p == PathDirectory {
		return "directory"
	}

	return "file"
}

// Test reports whether path has this shape.
func (p PathType) Test(ctx context.Context, fs *storage.Store, path string) bool {
	isDir := fs.IsDir(ctx, path)
	if p == PathFile {
		return !isDir
	}

	return isDir
}

// PathTypes is the set of shapes a variant accepts.
type PathTypes []PathType

// Files accepts single files.
var Files = PathTypes{PathFile}

// Directories accepts directories.
var Directories = PathTypes{PathDirectory}

// Match reports whether any of the shapes matches path.
func (ps PathTypes) Match(ctx context.Context, fs *storage.Store, path string) bool {
	for _, p := range ps {
		if p.Test(ctx, fs, path) {
			return true
		}
	}

	return false
}

func (ps PathTypes) String() string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}

	return "[" + strings.Join(names, ", ") + "]"
}

// CheckPathTypes is the default path check: it fails when no shape is
// declared, or when path matches none of them.
func CheckPathTypes(ctx context.Context, fs *storage.Store, path string, types PathTypes, diags *diagnostic.Diagnostics) bool {
	if len(types) == 0 {
		diags.AddError(diagnostic.CodeUnsupportedPath, "does not support any paths", path, "")
		return false
	}

	if types.Match(ctx, fs, path) {
		return true
	}

	diags.AddError(diagnostic.CodeUnsupportedPath,
		fmt.Sprintf("%q is not one of: %s", path, types), path, "")

	return false
}

// CheckRequiredFiles reports every name missing from dir. It assumes the
// path shape was already checked.
func CheckRequiredFiles(ctx context.Context, fs *storage.Store, dir string, names []string, diags *diagnostic.Diagnostics) bool {
	ok := true

	for _, name := range names {
		if !fs.IsFile(ctx, storage.Join(dir, name)) {
			diags.AddError(diagnostic.CodeMissingFile, "required file "+name+" is missing", dir, name)

			ok = false
		}
	}

	return ok
}
