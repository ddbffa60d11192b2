package legacy

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"remapper/internal/common"
	"remapper/internal/entry"
	rerrors "remapper/internal/errors"
)

// Sidecar file names of a mapping directory.
const (
	TsrgFile         = "joined.tsrg"
	ConstructorsFile = "constructors.txt"
	JarFile          = "joined_srg.jar"
	DeltasFile       = "deltas_mcpbot.txt"
)

// SrgConfig is the class and member table of a mapping directory, with
// every entry in the placeholder namespace.
type SrgConfig struct {
	// obf class name -> placeholder class name
	classes map[string]string
	// placeholder classes in file order
	classOrder []entry.ClassEntry
	fields     []entry.FieldEntry
	methods    []entry.MethodEntry
	ctors      map[entry.MethodEntry]int
	byID       map[string][]entry.MethodEntry
}

// ParseSrgConfig reads joined.tsrg and constructors.txt. Field types are
// not part of the table and are taken from facts. step, when not nil, is
// called once per stage; there are four.
func ParseSrgConfig(tsrg, constructors []string, facts *JarFacts, step func(string)) (*SrgConfig, error) {
	if step == nil {
		step = func(string) {}
	}

	c := &SrgConfig{
		classes: make(map[string]string),
		ctors:   make(map[entry.MethodEntry]int),
		byID:    make(map[string][]entry.MethodEntry),
	}

	step("reading classes")

	if err := c.parseClasses(tsrg); err != nil {
		return nil, err
	}

	step("reading fields and methods")

	if err := c.parseMembers(tsrg, facts); err != nil {
		return nil, err
	}

	step("reading constructors")

	if err := c.parseConstructors(constructors); err != nil {
		return nil, err
	}

	step("indexing constructors")

	for m, id := range c.ctors {
		key := ConstructorID(id)
		c.byID[key] = append(c.byID[key], m)
	}

	for _, ms := range c.byID {
		slices.SortFunc(ms, func(a, b entry.MethodEntry) int { return entry.Compare(a, b) })
	}

	return c, nil
}

func isMemberLine(line string) bool {
	return strings.HasPrefix(line, "\t") || strings.HasPrefix(line, " ")
}

func (c *SrgConfig) parseClasses(lines []string) error {
	for i, line := range lines {
		if strings.TrimSpace(line) == "" || isMemberLine(line) {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) != 2 {
			return rerrors.Parse(TsrgFile, i+1, "class line needs an obf and a placeholder name", nil)
		}

		cls, err := entry.NewClass(parts[1])
		if err != nil {
			return rerrors.Parse(TsrgFile, i+1, "bad class name", err)
		}

		c.classes[parts[0]] = parts[1]
		c.classOrder = append(c.classOrder, cls)
	}

	return nil
}

func (c *SrgConfig) parseMembers(lines []string, facts *JarFacts) error {
	var owner entry.ClassEntry

	remap := func(obf entry.ClassEntry) entry.ClassEntry {
		if name, ok := c.classes[obf.FullName()]; ok {
			return entry.Class(name)
		}

		return obf
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Fields(line)

		if !isMemberLine(line) {
			owner = entry.Class(parts[1])
			continue
		}

		if owner.IsZero() {
			return rerrors.Parse(TsrgFile, i+1, "member line before any class line", nil)
		}

		switch len(parts) {
		case 2:
			desc, ok := facts.FieldDesc(owner, parts[1])
			if !ok {
				return rerrors.Parse(TsrgFile, i+1, "field "+owner.FullName()+"."+parts[1]+" is not in the jar", nil)
			}

			c.fields = append(c.fields, entry.Field(owner, parts[1], desc))
		case 3:
			obfDesc, err := entry.ParseMethodDescriptor(parts[1])
			if err != nil {
				return rerrors.Parse(TsrgFile, i+1, "bad method descriptor", err)
			}

			m := entry.Method(owner, parts[2], obfDesc.Remap(remap))
			c.methods = append(c.methods, m)

			if IsPlaceholderMethod(m.Name()) {
				id := PlaceholderID(m.Name())
				c.byID[id] = append(c.byID[id], m)
			}
		default:
			return rerrors.Parse(TsrgFile, i+1, "member line needs 2 or 3 columns", nil)
		}
	}

	return nil
}

func (c *SrgConfig) parseConstructors(lines []string) error {
	for i, line := range lines {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		if len(parts) != 3 {
			return rerrors.Parse(ConstructorsFile, i+1, "line needs an id, a class and a descriptor", nil)
		}

		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return rerrors.Parse(ConstructorsFile, i+1, "bad constructor id", err)
		}

		m, err := entry.NewMethod(parts[1], entry.ConstructorName, parts[2])
		if err != nil {
			return rerrors.Parse(ConstructorsFile, i+1, "bad constructor", err)
		}

		c.ctors[m] = id
	}

	return nil
}

// Classes returns the placeholder classes in file order.
func (c *SrgConfig) Classes() []entry.ClassEntry { return c.classOrder }

// Fields returns the fields in file order.
func (c *SrgConfig) Fields() []entry.FieldEntry { return c.fields }

// Methods returns the methods in file order.
func (c *SrgConfig) Methods() []entry.MethodEntry { return c.methods }

// Constructors returns the constructor ids.
func (c *SrgConfig) Constructors() map[entry.MethodEntry]int { return c.ctors }

// ClassName returns the placeholder name of an obf class.
func (c *SrgConfig) ClassName(obf string) (string, bool) {
	name, ok := c.classes[obf]
	return name, ok
}

// MethodID returns the id used in the parameter placeholders of m.
func (c *SrgConfig) MethodID(m entry.MethodEntry) (string, bool) {
	if m.IsConstructor() {
		id, ok := c.ctors[m]
		if !ok {
			return "", false
		}

		return ConstructorID(id), true
	}

	if !IsPlaceholderMethod(m.Name()) {
		return "", false
	}

	return PlaceholderID(m.Name()), true
}

// MethodsByID returns every method sharing a parameter id, including
// constructors.
func (c *SrgConfig) MethodsByID() map[string][]entry.MethodEntry {
	return maps.Clone(c.byID)
}

// MethodIDs returns the keys of MethodsByID, sorted.
func (c *SrgConfig) MethodIDs() []string {
	return common.SortedKeys(c.byID)
}
