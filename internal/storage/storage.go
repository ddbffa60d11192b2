// Package storage reads and writes mapping files through viant/afs.
//
// Paths without a scheme address the local filesystem; any URL afs
// understands works as well. Every failure is reported as an IO error.
package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	afsstorage "github.com/viant/afs/storage"

	rerrors "remapper/internal/errors"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// File is a named blob written by WriteFiles.
type File struct {
	Name    string
	Content []byte
}

// Store is a thin wrapper over an afs service.
type Store struct {
	fs afs.Service
}

// New creates a store backed by afs.New().
func New() *Store {
	return &Store{fs: afs.New()}
}

// Join joins path elements with '/'.
func Join(elem ...string) string {
	return path.Join(elem...)
}

// Read returns the content at location.
func (s *Store) Read(ctx context.Context, location string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, rerrors.IO("failed to read "+location, err)
	}

	return data, nil
}

// ReadLines returns the content at location split into lines, without line terminators.
// A trailing empty line is dropped.
func (s *Store) ReadLines(ctx context.Context, location string) ([]string, error) {
	data, err := s.Read(ctx, location)
	if err != nil {
		return nil, err
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	if text == "" {
		return nil, nil
	}

	return strings.Split(text, "\n"), nil
}

// Write stores data at location, creating parent directories.
func (s *Store) Write(ctx context.Context, location string, data []byte) error {
	if dir := path.Dir(location); dir != "." && dir != "/" {
		if err := s.MkdirAll(ctx, dir); err != nil {
			return err
		}
	}

	if err := s.fs.Upload(ctx, location, filePerm, bytes.NewReader(data)); err != nil {
		return rerrors.IO("failed to write "+location, err)
	}

	return nil
}

// WriteLines stores lines joined by '\n' with a trailing newline.
func (s *Store) WriteLines(ctx context.Context, location string, lines []string) error {
	var b strings.Builder

	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	return s.Write(ctx, location, []byte(b.String()))
}

// WriteFiles writes every file into dir, creating it if needed.
func (s *Store) WriteFiles(ctx context.Context, dir string, files []File) error {
	if err := s.MkdirAll(ctx, dir); err != nil {
		return err
	}

	for _, f := range files {
		if err := s.Write(ctx, Join(dir, f.Name), f.Content); err != nil {
			return err
		}
	}

	return nil
}

// MkdirAll creates dir if it does not exist.
func (s *Store) MkdirAll(ctx context.Context, dir string) error {
	ok, err := s.fs.Exists(ctx, dir)
	if err != nil {
		return rerrors.IO("failed to stat "+dir, err)
	}

	if ok {
		return nil
	}

	if err := s.fs.Create(ctx, dir, dirPerm, true); err != nil {
		return rerrors.IO("failed to create directory "+dir, err)
	}

	return nil
}

// Exists reports whether location exists. Errors count as absent.
func (s *Store) Exists(ctx context.Context, location string) bool {
	ok, err := s.fs.Exists(ctx, location)
	return err == nil && ok
}

// IsDir reports whether location is an existing directory.
func (s *Store) IsDir(ctx context.Context, location string) bool {
	if !s.Exists(ctx, location) {
		return false
	}

	obj, err := s.fs.Object(ctx, location)
	if err != nil {
		return false
	}

	return obj.IsDir()
}

// IsFile reports whether location is an existing regular file.
func (s *Store) IsFile(ctx context.Context, location string) bool {
	if !s.Exists(ctx, location) {
		return false
	}

	obj, err := s.fs.Object(ctx, location)
	if err != nil {
		return false
	}

	return !obj.IsDir()
}

// List returns the names of the regular files directly inside dir, sorted.
func (s *Store) List(ctx context.Context, dir string) ([]string, error) {
	objects, err := s.fs.List(ctx, dir)
	if err != nil {
		return nil, rerrors.IO("failed to list "+dir, err)
	}

	var names []string

	for _, obj := range objects {
		if obj.IsDir() {
			continue
		}

		names = append(names, obj.Name())
	}

	sort.Strings(names)

	return names, nil
}

// Walk returns the paths, relative to dir, of every regular file below dir, sorted.
func (s *Store) Walk(ctx context.Context, dir string) ([]string, error) {
	var names []string

	var visitor afsstorage.OnVisit = func(_ context.Context, _, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		if !info.IsDir() {
			names = append(names, path.Join(parent, info.Name()))
		}

		return true, nil
	}

	if err := s.fs.Walk(ctx, dir, visitor); err != nil {
		return nil, rerrors.IO("failed to walk "+dir, err)
	}

	sort.Strings(names)

	return names, nil
}

// Remove deletes location if it exists.
func (s *Store) Remove(ctx context.Context, location string) error {
	if !s.Exists(ctx, location) {
		return nil
	}

	if err := s.fs.Delete(ctx, location); err != nil {
		return rerrors.IO("failed to delete "+location, err)
	}

	return nil
}
