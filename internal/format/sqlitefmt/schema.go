package sqlitefmt

const schemaVersion = 1

const schema = `
	CREATE TABLE IF NOT EXISTS entries (
		kind TEXT NOT NULL,
		owner TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		descriptor TEXT NOT NULL DEFAULT '',
		idx INTEGER NOT NULL DEFAULT -1,
		argument INTEGER NOT NULL DEFAULT 0,
		target TEXT,
		access TEXT NOT NULL DEFAULT 'unchanged',
		PRIMARY KEY (kind, owner, name, descriptor, idx, argument)
	);
	CREATE INDEX IF NOT EXISTS idx_entries_owner ON entries(owner);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
`

// Row kinds.
const (
	kindPackage = "package"
	kindClass   = "class"
	kindField   = "field"
	kindMethod  = "method"
	kindLocal   = "local"
)
