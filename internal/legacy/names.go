package legacy

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"maps"
	"strings"

	"remapper/internal/common"
	rerrors "remapper/internal/errors"
)

// Table is one of the three naming tables.
type Table int

const (
	Fields Table = iota
	Methods
	Params
)

var tables = [...]Table{Fields, Methods, Params}

// File returns the file name of the table in a mapping directory.
func (t Table) File() string {
	switch t {
	case Fields:
		return "fields.csv"
	case Methods:
		return "methods.csv"
	default:
		return "params.csv"
	}
}

// Header returns the header row the table is written with.
func (t Table) Header() []string {
	if t == Params {
		return []string{"param", "name", "side"}
	}

	return []string{"searge", "name", "side", "desc"}
}

// command returns the delta file command of the table.
func (t Table) command() string {
	switch t {
	case Fields:
		return "!sf"
	case Methods:
		return "!sm"
	default:
		return "!sp"
	}
}

// Row is a naming table row.
type Row struct {
	Srg     string
	Name    string
	Side    Dist
	Comment string
}

// Names holds the three naming tables, keyed by placeholder.
type Names struct {
	rows [len(tables)]map[string]Row
}

// NewNames returns empty tables.
func NewNames() *Names {
	n := &Names{}
	for _, t := range tables {
		n.rows[t] = make(map[string]Row)
	}

	return n
}

// ReadNames parses the three tables. Each input holds a whole CSV file
// including its header row; an empty input is an empty table.
func ReadNames(fields, methods, params []byte) (*Names, error) {
	n := NewNames()

	for t, data := range [...][]byte{fields, methods, params} {
		if err := n.parse(Table(t), data); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func (n *Names) parse(t Table, data []byte) error {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header := true

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return rerrors.Parse(t.File(), pe.Line, "malformed row", pe.Err)
			}

			return rerrors.Parse(t.File(), 0, "malformed row", err)
		}

		line, _ := r.FieldPos(0)

		if header {
			header = false
			continue
		}

		if len(record) < 3 {
			return rerrors.Parse(t.File(), line, "row needs at least searge, name and side columns", nil)
		}

		side, err := ParseDist(record[2])
		if err != nil {
			return rerrors.Parse(t.File(), line, "bad side column", err)
		}

		n.rows[t][record[0]] = Row{
			Srg:     record[0],
			Name:    record[1],
			Side:    side,
			Comment: strings.Join(record[3:], ","),
		}
	}
}

// Lookup returns the name recorded for a placeholder.
func (n *Names) Lookup(srg string) (string, bool) {
	for _, t := range tables {
		if row, ok := n.rows[t][srg]; ok {
			return row.Name, true
		}
	}

	return "", false
}

// Has reports whether a placeholder has a row.
func (n *Names) Has(srg string) bool {
	_, ok := n.Lookup(srg)
	return ok
}

// Map returns the name recorded for srg, or srg itself.
func (n *Names) Map(srg string) string {
	if name, ok := n.Lookup(srg); ok {
		return name
	}

	return srg
}

// Get returns the row of srg in table t.
func (n *Names) Get(t Table, srg string) (Row, bool) {
	row, ok := n.rows[t][srg]
	return row, ok
}

// Field returns a fields.csv row.
func (n *Names) Field(srg string) (Row, bool) { return n.Get(Fields, srg) }

// Method returns a methods.csv row.
func (n *Names) Method(srg string) (Row, bool) { return n.Get(Methods, srg) }

// Param returns a params.csv row.
func (n *Names) Param(srg string) (Row, bool) { return n.Get(Params, srg) }

// Rows returns the rows of t sorted by placeholder.
func (n *Names) Rows(t Table) []Row {
	out := make([]Row, 0, len(n.rows[t]))
	for _, srg := range common.SortedKeys(n.rows[t]) {
		out = append(out, n.rows[t][srg])
	}

	return out
}

// Len returns the total number of rows.
func (n *Names) Len() int {
	total := 0
	for _, rows := range n.rows {
		total += len(rows)
	}

	return total
}

// MethodSides returns the side of every method row keyed by method id.
func (n *Names) MethodSides() map[string]Dist {
	out := make(map[string]Dist, len(n.rows[Methods]))
	for srg, row := range n.rows[Methods] {
		out[PlaceholderID(srg)] = row.Side
	}

	return out
}

// Overlay returns a copy of n with the rows of deltas on top. n is not
// modified.
func (n *Names) Overlay(deltas *Names) *Names {
	out := NewNames()

	for _, t := range tables {
		maps.Copy(out.rows[t], n.rows[t])

		if deltas != nil {
			maps.Copy(out.rows[t], deltas.rows[t])
		}
	}

	return out
}

func (n *Names) put(t Table, row Row) {
	n.rows[t][row.Srg] = row
}

// Dists holds the jar derived side of placeholder ids.
type Dists struct {
	Fields  map[string]Dist
	Methods map[string]Dist
}

func (d Dists) field(id string) Dist  { return lookupDist(d.Fields, id) }
func (d Dists) method(id string) Dist { return lookupDist(d.Methods, id) }

func lookupDist(m map[string]Dist, id string) Dist {
	if d, ok := m[id]; ok {
		return d
	}

	return Both
}

// ParseDeltas reads delta file lines of the form "!sf|!sm|!sp <srg> <name>
// [comment...]". The side of a row comes from its base row when there is
// one, and from the jar otherwise.
func ParseDeltas(file string, lines []string, dists Dists, base *Names) (*Names, error) {
	out := NewNames()
	methodSides := base.MethodSides()

	for i, line := range lines {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		if len(parts) < 3 {
			return nil, rerrors.Parse(file, i+1, "delta needs a command, a placeholder and a name", nil)
		}

		var t Table

		switch parts[0] {
		case Fields.command():
			t = Fields
		case Methods.command():
			t = Methods
		case Params.command():
			t = Params
		default:
			return nil, rerrors.Parse(file, i+1, "unknown delta command "+parts[0], nil)
		}

		row := Row{Srg: parts[1], Name: parts[2], Comment: strings.Join(parts[3:], " ")}
		id := PlaceholderID(row.Srg)

		if prior, ok := base.Get(t, row.Srg); ok {
			row.Side = prior.Side
		} else {
			switch t {
			case Fields:
				row.Side = dists.field(id)
			case Methods:
				row.Side = dists.method(id)
			default:
				side, ok := methodSides[id]
				if !ok {
					side = dists.method(id)
				}

				row.Side = side
			}
		}

		out.put(t, row)
	}

	return out, nil
}

// deltaLine renders a row as a delta file line.
func deltaLine(t Table, row Row) string {
	line := t.command() + " " + row.Srg + " " + row.Name
	if row.Comment != "" {
		line += " " + row.Comment
	}

	return line
}
