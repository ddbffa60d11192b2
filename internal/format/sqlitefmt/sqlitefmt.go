package sqlitefmt

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"remapper/internal/diagnostic"
	"remapper/internal/entry"
	rerrors "remapper/internal/errors"
	"remapper/internal/format"
	"remapper/internal/storage"
	"remapper/internal/tree"
)

// Name is the registry name of the format.
const Name = "sqlite"

// VariantFile is the only variant.
const VariantFile = "file"

// New returns the sqlite format.
func New() *format.Format {
	return &format.Format{
		Name:    Name,
		Readers: []format.NamedReader{{Name: VariantFile, Reader: reader{}}},
		Writers: []format.NamedWriter{{Name: VariantFile, Writer: writer{}}},
	}
}

func open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, rerrors.IO("failed to open "+path, err)
	}

	pragmas := []string{
		"PRAGMA synchronous=OFF",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, rerrors.IO("failed to set pragma", err)
		}
	}

	return db, nil
}

type row struct {
	kind     string
	owner    string
	name     string
	desc     string
	idx      int
	argument bool
	target   sql.NullString
	access   string
}

func toRow(n tree.Node) (row, bool) {
	r := row{idx: -1, access: entry.AccessUnchanged.String()}

	if n.Mapping != nil {
		r.target = sql.NullString{String: n.Mapping.TargetName, Valid: true}
		r.access = n.Mapping.Access.String()
	}

	switch e := n.Entry.(type) {
	case entry.PackageEntry:
		r.kind, r.name = kindPackage, e.Path()
	case entry.ClassEntry:
		r.kind, r.name = kindClass, e.FullName()
	case entry.FieldEntry:
		r.kind, r.owner, r.name, r.desc = kindField, e.Owner().FullName(), e.Name(), string(e.Desc())
	case entry.MethodEntry:
		r.kind, r.owner, r.name, r.desc = kindMethod, e.Owner().FullName(), e.Name(), string(e.Desc())
	case entry.LocalVariableEntry:
		m := e.Method()
		r.kind, r.owner, r.name, r.desc = kindLocal, m.Owner().FullName(), m.Name(), string(m.Desc())
		r.idx, r.argument = e.Index(), e.IsArgument()
	default:
		return row{}, false
	}

	return r, true
}

func (r row) toEntry() (entry.Entry, error) {
	switch r.kind {
	case kindPackage:
		return entry.Package(r.name), nil
	case kindClass:
		return entry.NewClass(r.name)
	case kindField:
		return entry.NewField(r.owner, r.name, r.desc)
	case kindMethod:
		return entry.NewMethod(r.owner, r.name, r.desc)
	case kindLocal:
		m, err := entry.NewMethod(r.owner, r.name, r.desc)
		if err != nil {
			return nil, err
		}

		if r.idx < 0 {
			return nil, fmt.Errorf("local of %s has no slot", m)
		}

		return entry.Local(m, r.idx, "", r.argument), nil
	default:
		return nil, fmt.Errorf("unknown entry kind %q", r.kind)
	}
}

func (r row) toMapping() (*entry.Mapping, error) {
	if !r.target.Valid {
		return nil, nil
	}

	access, err := entry.ParseAccessModifier(r.access)
	if err != nil {
		return nil, err
	}

	return &entry.Mapping{TargetName: r.target.String, Access: access}, nil
}

type reader struct{}

func (reader) Options() []format.Option { return nil }

func (reader) PathTypes() format.PathTypes { return format.Files }

func (reader) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	if !format.CheckPathTypes(ctx, fs, path, format.Files, diags) {
		return false
	}

	if !fs.IsFile(ctx, path) {
		diags.AddError(diagnostic.CodeMissingFile, "database does not exist", path, "")
		return false
	}

	return true
}

func (reader) Read(ctx context.Context, req format.ReadRequest) (tree.Tree, error) {
	steps := format.NewStepCounter(req.Progress, 2, "reading "+req.Path)
	steps.Step("opening database")

	db, err := open(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	steps.Step("reading entries")

	rows, err := db.QueryContext(ctx,
		`SELECT rowid, kind, owner, name, descriptor, idx, argument, target, access FROM entries`)
	if err != nil {
		return nil, rerrors.Parse(req.Path, 0, "not a mapping database", err)
	}
	defer rows.Close()

	t := tree.NewHashTree()

	for rows.Next() {
		var (
			id int
			r  row
		)

		if err := rows.Scan(&id, &r.kind, &r.owner, &r.name, &r.desc, &r.idx, &r.argument, &r.target, &r.access); err != nil {
			return nil, rerrors.IO("failed to scan entry", err)
		}

		e, err := r.toEntry()
		if err != nil {
			return nil, rerrors.Parse(req.Path, id, "invalid entry", err)
		}

		m, err := r.toMapping()
		if err != nil {
			return nil, rerrors.Parse(req.Path, id, "invalid record", err)
		}

		t.Insert(e, m)
	}

	if err := rows.Err(); err != nil {
		return nil, rerrors.IO("failed to read entries", err)
	}

	steps.Done()

	return t, nil
}

type writer struct{}

func (writer) Options() []format.Option { return nil }

func (writer) PathTypes() format.PathTypes { return format.Files }

func (writer) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	return format.CheckPathTypes(ctx, fs, path, format.Files, diags)
}

// Write replaces the database at req.Path with the nodes of req.Tree.
func (writer) Write(ctx context.Context, req format.WriteRequest) error {
	steps := format.NewStepCounter(req.Progress, 2, "writing "+req.Path)
	steps.Step("creating database")

	if err := os.Remove(req.Path); err != nil && !os.IsNotExist(err) {
		return rerrors.IO("failed to replace "+req.Path, err)
	}

	db, err := open(ctx, req.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return rerrors.IO("failed to create schema", err)
	}

	steps.Step("writing entries")

	if err := insertAll(ctx, db, req.Tree); err != nil {
		return err
	}

	steps.Done()

	return nil
}

func insertAll(ctx context.Context, db *sql.DB, t tree.Tree) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return rerrors.IO("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
		return rerrors.IO("failed to write schema version", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (kind, owner, name, descriptor, idx, argument, target, access)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return rerrors.IO("failed to prepare insert", err)
	}
	defer stmt.Close()

	for _, n := range t.Nodes() {
		r, ok := toRow(n)
		if !ok {
			continue
		}

		if _, err := stmt.ExecContext(ctx, r.kind, r.owner, r.name, r.desc, r.idx, r.argument, r.target, r.access); err != nil {
			return rerrors.IO("failed to insert "+n.Entry.String(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return rerrors.IO("failed to commit", err)
	}

	return nil
}
