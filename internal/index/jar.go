package index

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"

	"remapper/internal/classfile"
	rerrors "remapper/internal/errors"
)

const classSuffix = ".class"

// Jar is an archive opened from memory. Its class files may be read from
// several goroutines at once.
type Jar struct {
	zr      *zip.Reader
	classes map[string]*zip.File
}

// OpenJar opens jar data.
func OpenJar(data []byte) (*Jar, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, rerrors.IO("failed to open jar", err)
	}

	j := &Jar{zr: zr, classes: make(map[string]*zip.File)}

	for _, f := range zr.File {
		if isClass(f) {
			j.classes[f.Name] = f
		}
	}

	return j, nil
}

// ClassNames returns the archive paths of every class file in archive order.
func (j *Jar) ClassNames() []string {
	var out []string

	for _, f := range j.zr.File {
		if isClass(f) {
			out = append(out, f.Name)
		}
	}

	return out
}

func isClass(f *zip.File) bool {
	return !f.FileInfo().IsDir() && strings.HasSuffix(f.Name, classSuffix)
}

// ReadClass returns the bytes of the class file at name.
func (j *Jar) ReadClass(name string) ([]byte, error) {
	f, ok := j.classes[name]
	if !ok {
		return nil, rerrors.IO("no class file "+name+" in jar", nil)
	}

	return readFile(f)
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, rerrors.IO("failed to open "+f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, rerrors.IO("failed to read "+f.Name, err)
	}

	return data, nil
}

// ForEachClass calls fn with the bytes of every class file. The bytes are
// not retained after fn returns. ctx is checked between class files.
func (j *Jar) ForEachClass(ctx context.Context, fn func(name string, data []byte) error) error {
	for _, f := range j.zr.File {
		if !isClass(f) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := readFile(f)
		if err != nil {
			return err
		}

		if err := fn(f.Name, data); err != nil {
			return err
		}
	}

	return nil
}

// LoadJar builds an index from the class files of jar data.
func LoadJar(ctx context.Context, data []byte) (*Index, error) {
	jar, err := OpenJar(data)
	if err != nil {
		return nil, err
	}

	ix := New()

	err = jar.ForEachClass(ctx, func(name string, data []byte) error {
		cf, err := classfile.Parse(data)
		if err != nil {
			return rerrors.Parse(name, 0, "invalid class file", err)
		}

		ix.Add(FromClassFile(cf))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ix, nil
}

// WriteJar writes the given classes as a jar.
func WriteJar(w io.Writer, classes ...*classfile.ClassFile) error {
	zw := zip.NewWriter(w)

	for _, cf := range classes {
		data, err := classfile.Encode(cf)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", cf.Name, err)
		}

		f, err := zw.Create(cf.Name + classSuffix)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", cf.Name, err)
		}

		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("failed to write %s: %w", cf.Name, err)
		}
	}

	return zw.Close()
}

// JarBytes is WriteJar into memory.
func JarBytes(classes ...*classfile.ClassFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJar(&buf, classes...); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
