package legacy

import (
	"context"
	"log/slog"

	"remapper/internal/format"
	"remapper/internal/storage"
)

// Name is the registry name of the format.
const Name = "mcp"

// Variant names.
const (
	VariantDirectory = "directory"
	VariantFull      = "full"
	VariantDelta     = "delta"
)

// requiredFiles must all exist in a directory the reader accepts.
var requiredFiles = []string{
	Fields.File(),
	Methods.File(),
	Params.File(),
	TsrgFile,
	ConstructorsFile,
	JarFile,
}

// New returns the mcp format. Jar scans go through cache, which may be
// nil.
func New(cache *FactsCache) *format.Format {
	return &format.Format{
		Name:    Name,
		Readers: []format.NamedReader{{Name: VariantDirectory, Reader: reader{cache: cache}}},
		Writers: []format.NamedWriter{
			{Name: VariantFull, Writer: fullWriter{cache: cache}},
			{Name: VariantDelta, Writer: deltaWriter{cache: cache}},
		},
		DefaultWriter: func(string) string { return VariantDelta },
	}
}

// sidecars are the inputs of a mapping directory besides the tree.
type sidecars struct {
	names  *Names
	deltas *Names
	facts  *JarFacts
	config *SrgConfig
}

// loadSteps is the number of steps load reports.
const loadSteps = 8

// load reads everything but the tree from dir. When optional is set the
// naming tables may be missing.
func load(ctx context.Context, fs *storage.Store, dir string, cache *FactsCache, steps *format.StepCounter, optional bool) (*sidecars, error) {
	steps.Step("scanning " + JarFile)

	jar, err := fs.Read(ctx, storage.Join(dir, JarFile))
	if err != nil {
		return nil, err
	}

	facts, err := cache.Facts(ctx, jar)
	if err != nil {
		return nil, err
	}

	steps.Step("reading " + TsrgFile)

	tsrg, err := fs.ReadLines(ctx, storage.Join(dir, TsrgFile))
	if err != nil {
		return nil, err
	}

	steps.Step("reading " + ConstructorsFile)

	ctors, err := fs.ReadLines(ctx, storage.Join(dir, ConstructorsFile))
	if err != nil {
		return nil, err
	}

	config, err := ParseSrgConfig(tsrg, ctors, facts, steps.Step)
	if err != nil {
		return nil, err
	}

	steps.Step("reading naming tables")

	var raw [len(tables)][]byte

	for _, t := range tables {
		location := storage.Join(dir, t.File())
		if optional && !fs.IsFile(ctx, location) {
			continue
		}

		if raw[t], err = fs.Read(ctx, location); err != nil {
			return nil, err
		}
	}

	names, err := ReadNames(raw[Fields], raw[Methods], raw[Params])
	if err != nil {
		return nil, err
	}

	out := &sidecars{names: names, facts: facts, config: config}

	deltaPath := storage.Join(dir, DeltasFile)
	if !fs.IsFile(ctx, deltaPath) {
		return out, nil
	}

	lines, err := fs.ReadLines(ctx, deltaPath)
	if err != nil {
		return nil, err
	}

	dists, err := facts.Dists(config)
	if err != nil {
		return nil, err
	}

	if out.deltas, err = ParseDeltas(DeltasFile, lines, dists, names); err != nil {
		return nil, err
	}

	return out, nil
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}

	return l
}
