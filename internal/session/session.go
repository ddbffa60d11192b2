// Package session wires the format registry, caches and logger of one
// remapper run. Nothing here is global: every caller builds its own
// Session and closes it when done.
package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"remapper/internal/config"
	rerrors "remapper/internal/errors"
	"remapper/internal/format"
	"remapper/internal/format/sqlitefmt"
	"remapper/internal/format/srg"
	"remapper/internal/format/tiny"
	"remapper/internal/format/yamlfmt"
	"remapper/internal/index"
	"remapper/internal/legacy"
	"remapper/internal/logging"
	"remapper/internal/storage"
	"remapper/internal/tree"
)

// Session is the context mapping operations run in.
type Session struct {
	ID      string
	Config  *config.Config
	Logger  *slog.Logger
	Formats *format.Registry
	Facts   *legacy.FactsCache
}

// New builds a session from cfg. A nil cfg uses the defaults and a nil
// logger discards everything.
func New(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger = logger.With("session", id)

	facts, err := legacy.NewFactsCache(cfg.Cache.JarEntries, cfg.Scan.Workers)
	if err != nil {
		return nil, err
	}

	registry := format.NewRegistry(storage.New(), logger)

	for _, f := range []*format.Format{
		yamlfmt.New(),
		tiny.New(),
		srg.New(),
		sqlitefmt.New(),
		legacy.New(facts),
	} {
		if err := registry.Register(f); err != nil {
			return nil, err
		}
	}

	logger.Debug("session started", "formats", registry.Names(), "workers", cfg.Scan.Workers)

	return &Session{
		ID:      id,
		Config:  cfg,
		Logger:  logger,
		Formats: registry,
		Facts:   facts,
	}, nil
}

// Close drops the cached jar facts.
func (s *Session) Close() {
	s.Facts.Purge()
	s.Logger.Debug("session closed")
}

// FS returns the store the session reads and writes through.
func (s *Session) FS() *storage.Store {
	return s.Formats.FS()
}

// JarIndexSupplier returns an index of the jar at path that is loaded the
// first time a format asks for it. An empty path yields a supplier that
// fails with a configuration error.
func (s *Session) JarIndexSupplier(ctx context.Context, path string) *format.JarIndex {
	return format.NewLazy(func() (*index.Index, error) {
		if path == "" {
			return nil, rerrors.Config("this format needs the jar the mappings belong to; pass --jar", nil)
		}

		data, err := s.FS().Read(ctx, path)
		if err != nil {
			return nil, err
		}

		ix, err := index.LoadJar(ctx, data)
		if err != nil {
			return nil, err
		}

		s.Logger.Debug("indexed jar", "path", path, "classes", ix.Len())

		return ix, nil
	})
}

// Progress returns a progress listener logging through the session.
func (s *Session) Progress() format.Progress {
	return &format.LogProgress{Logger: s.Logger}
}

// Read reads path with the format named by spec ("name[:variant]").
func (s *Session) Read(ctx context.Context, spec, path string, jar *format.JarIndex) (tree.Tree, error) {
	t, _, err := s.read(ctx, spec, path, jar)
	return t, err
}

func (s *Session) read(ctx context.Context, spec, path string, jar *format.JarIndex) (tree.Tree, format.Spec, error) {
	parsed, err := format.ParseSpec(spec)
	if err != nil {
		return nil, format.Spec{}, err
	}

	return s.Formats.ReadVariant(ctx, parsed, path, format.ReadOptions{
		Options:  s.Config.MappingOptions,
		JarIndex: jar,
		Progress: s.Progress(),
	})
}

// Write writes t to path with the format named by spec. A nil delta writes
// every mapping, except with writers that only write changes.
func (s *Session) Write(ctx context.Context, spec, path string, t tree.Tree, delta *tree.Delta, jar *format.JarIndex) error {
	return s.write(ctx, spec, path, t, delta, jar, format.Spec{})
}

func (s *Session) write(ctx context.Context, spec, path string, t tree.Tree, delta *tree.Delta, jar *format.JarIndex, readWith format.Spec) error {
	parsed, err := format.ParseSpec(spec)
	if err != nil {
		return err
	}

	return s.Formats.Write(ctx, parsed, path, t, format.WriteOptions{
		Options:  s.Config.MappingOptions,
		Delta:    delta,
		ReadWith: readWith,
		JarIndex: jar,
		Progress: s.Progress(),
	})
}
