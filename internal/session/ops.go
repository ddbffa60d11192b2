package session

import (
	"context"

	"remapper/internal/diagnostic"
	"remapper/internal/format"
	"remapper/internal/mapping"
	"remapper/internal/mappingops"
	"remapper/internal/tree"
)

// Source is a mapping location with the format to read or write it in.
type Source struct {
	Spec string
	Path string
}

// ConvertRequest describes a format conversion.
type ConvertRequest struct {
	In  Source
	Out Source
	// DeltaFrom, when set, names mappings to diff against; only the changes
	// relative to them are written.
	DeltaFrom *Source
	JarPath   string
}

// Convert reads In and writes it to Out. When Out names the input format
// without a variant, the writer paired with the reader used is preferred.
func (s *Session) Convert(ctx context.Context, req ConvertRequest) error {
	jar := s.JarIndexSupplier(ctx, req.JarPath)

	t, readWith, err := s.read(ctx, req.In.Spec, req.In.Path, jar)
	if err != nil {
		return err
	}

	var delta *tree.Delta

	if req.DeltaFrom != nil {
		base, err := s.Read(ctx, req.DeltaFrom.Spec, req.DeltaFrom.Path, jar)
		if err != nil {
			return err
		}

		delta = tree.Diff(base, t)
		s.Logger.Info("computed delta", "base", req.DeltaFrom.Path, "changes", delta.Len())
	}

	if err := s.write(ctx, req.Out.Spec, req.Out.Path, t, delta, jar, readWith); err != nil {
		return err
	}

	s.finished("convert", req.Out.Path, jar)

	return nil
}

// finished logs a completed operation, noting whether the jar was opened.
func (s *Session) finished(op, out string, jar *format.JarIndex) {
	s.Logger.Info("wrote mappings", "op", op, "path", out, "jar_loaded", jar.Loaded())
}

// InvertRequest describes an inversion.
type InvertRequest struct {
	In      Source
	Out     Source
	JarPath string
}

// Invert reads In, swaps obfuscated and deobfuscated names and writes Out.
func (s *Session) Invert(ctx context.Context, req InvertRequest) error {
	jar := s.JarIndexSupplier(ctx, req.JarPath)

	t, err := s.Read(ctx, req.In.Spec, req.In.Path, jar)
	if err != nil {
		return err
	}

	if err := s.Write(ctx, req.Out.Spec, req.Out.Path, mappingops.Invert(t), nil, jar); err != nil {
		return err
	}

	s.finished("invert", req.Out.Path, jar)

	return nil
}

// ComposeRequest describes a composition of Left then Right.
type ComposeRequest struct {
	Left    Source
	Right   Source
	Out     Source
	Keep    mappingops.KeepMode
	JarPath string
}

// Compose reads both sides, composes them and writes Out.
func (s *Session) Compose(ctx context.Context, req ComposeRequest) error {
	jar := s.JarIndexSupplier(ctx, req.JarPath)

	left, err := s.Read(ctx, req.Left.Spec, req.Left.Path, jar)
	if err != nil {
		return err
	}

	right, err := s.Read(ctx, req.Right.Spec, req.Right.Path, jar)
	if err != nil {
		return err
	}

	out := mappingops.ComposeWith(left, right, req.Keep)
	s.Logger.Info("composed mappings", "left", left.Len(), "right", right.Len(), "out", out.Len(), "keep", req.Keep.String())

	if err := s.Write(ctx, req.Out.Spec, req.Out.Path, out, nil, jar); err != nil {
		return err
	}

	s.finished("compose", req.Out.Path, jar)

	return nil
}

// Check reads mappings and validates them against the jar at jarPath.
func (s *Session) Check(ctx context.Context, mappings Source, jarPath string) (*diagnostic.Diagnostics, error) {
	jar := s.JarIndexSupplier(ctx, jarPath)

	t, err := s.Read(ctx, mappings.Spec, mappings.Path, jar)
	if err != nil {
		return nil, err
	}

	mf, err := mapping.FromTree(t)
	if err != nil {
		return nil, err
	}

	ix, err := jar.Get()
	if err != nil {
		return nil, err
	}

	return mapping.Validate(mf, ix), nil
}

// FormatInfo describes a registered format for listings.
type FormatInfo struct {
	Name    string
	Readers []VariantInfo
	Writers []VariantInfo
}

// VariantInfo describes one reader or writer variant.
type VariantInfo struct {
	Name      string
	PathTypes string
	Options   []format.Option
}

// Describe lists the registered formats in registration order.
func (s *Session) Describe() []FormatInfo {
	var out []FormatInfo

	for _, f := range s.Formats.Formats() {
		info := FormatInfo{Name: f.Name}

		for _, r := range f.Readers {
			info.Readers = append(info.Readers, VariantInfo{
				Name:      r.Name,
				PathTypes: r.Reader.PathTypes().String(),
				Options:   r.Reader.Options(),
			})
		}

		for _, w := range f.Writers {
			info.Writers = append(info.Writers, VariantInfo{
				Name:      w.Name,
				PathTypes: w.Writer.PathTypes().String(),
				Options:   w.Writer.Options(),
			})
		}

		out = append(out, info)
	}

	return out
}
