package legacy

import (
	"context"
	"maps"
	"runtime"
	"slices"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/minio/highwayhash"
	"golang.org/x/sync/errgroup"

	"remapper/internal/classfile"
	"remapper/internal/entry"
	rerrors "remapper/internal/errors"
	"remapper/internal/index"
)

const (
	onlyInMarker   = "OnlyIn"
	distEnumMarker = "Dist"
	objectDesc     = "Ljava/lang/Object;"
)

type fieldKey struct {
	owner entry.ClassEntry
	name  string
}

type fieldFact struct {
	desc entry.TypeDescriptor
	dist Dist
}

// JarFacts is what the bridge needs from the compiled classes: the side of
// every class and member, field types and which placeholder methods are
// static. A JarFacts is not modified after ScanJar returns it.
type JarFacts struct {
	classes map[entry.ClassEntry]Dist
	fields  map[fieldKey]fieldFact
	methods map[entry.MethodEntry]Dist
	static  map[string]bool
}

func newJarFacts() *JarFacts {
	return &JarFacts{
		classes: make(map[entry.ClassEntry]Dist),
		fields:  make(map[fieldKey]fieldFact),
		methods: make(map[entry.MethodEntry]Dist),
		static:  make(map[string]bool),
	}
}

// merge folds other into f. The same element seen twice is present on the
// union of both sides.
func (f *JarFacts) merge(other *JarFacts) {
	for c, d := range other.classes {
		if prev, ok := f.classes[c]; ok {
			d = Merge(prev, d)
		}

		f.classes[c] = d
	}

	for k, fact := range other.fields {
		if prev, ok := f.fields[k]; ok {
			fact.dist = Merge(prev.dist, fact.dist)
		}

		f.fields[k] = fact
	}

	for m, d := range other.methods {
		if prev, ok := f.methods[m]; ok {
			d = Merge(prev, d)
		}

		f.methods[m] = d
	}

	for id := range other.static {
		f.static[id] = true
	}
}

// ClassDist returns the side of a class; unknown classes are on Both.
func (f *JarFacts) ClassDist(c entry.ClassEntry) Dist {
	if d, ok := f.classes[c]; ok {
		return d
	}

	return Both
}

// FieldDesc returns the type of a field declared in the jar.
func (f *JarFacts) FieldDesc(owner entry.ClassEntry, name string) (entry.TypeDescriptor, bool) {
	fact, ok := f.fields[fieldKey{owner: owner, name: name}]
	return fact.desc, ok
}

// IsStatic reports whether the placeholder method id belongs to a static
// method.
func (f *JarFacts) IsStatic(methodID string) bool {
	return f.static[methodID]
}

// Len returns the number of classes scanned.
func (f *JarFacts) Len() int {
	return len(f.classes)
}

func (f *JarFacts) sortedClasses() []entry.ClassEntry {
	return slices.SortedFunc(maps.Keys(f.classes), func(a, b entry.ClassEntry) int {
		return strings.Compare(a.FullName(), b.FullName())
	})
}

// FieldDists returns the side of every placeholder field id. A field's
// side is narrowed by its class; fields sharing an id are merged.
func (f *JarFacts) FieldDists() (map[string]Dist, error) {
	out := make(map[string]Dist)

	keys := slices.SortedFunc(maps.Keys(f.fields), func(a, b fieldKey) int {
		if c := strings.Compare(a.owner.FullName(), b.owner.FullName()); c != 0 {
			return c
		}

		return strings.Compare(a.name, b.name)
	})

	for _, k := range keys {
		if !IsPlaceholderField(k.name) {
			continue
		}

		d, err := CommonDist(f.ClassDist(k.owner), f.fields[k].dist)
		if err != nil {
			return nil, rerrors.Consistency("side of field "+k.owner.FullName()+"."+k.name, err)
		}

		fold(out, PlaceholderID(k.name), d)
	}

	return out, nil
}

// MethodDists returns the side of every placeholder method id and of every
// constructor listed in constructors, keyed the way parameter placeholders
// name them.
func (f *JarFacts) MethodDists(constructors map[entry.MethodEntry]int) (map[string]Dist, error) {
	out := make(map[string]Dist)

	keys := slices.SortedFunc(maps.Keys(f.methods), func(a, b entry.MethodEntry) int {
		return entry.Compare(a, b)
	})

	for _, m := range keys {
		var id string

		switch {
		case IsPlaceholderMethod(m.Name()):
			id = PlaceholderID(m.Name())
		case m.IsConstructor():
			n, ok := constructors[m]
			if !ok {
				continue
			}

			id = ConstructorID(n)
		default:
			continue
		}

		d, err := CommonDist(f.ClassDist(m.Owner()), f.methods[m])
		if err != nil {
			return nil, rerrors.Consistency("side of method "+m.String(), err)
		}

		fold(out, id, d)
	}

	return out, nil
}

// Dists computes FieldDists and MethodDists for cfg.
func (f *JarFacts) Dists(cfg *SrgConfig) (Dists, error) {
	fields, err := f.FieldDists()
	if err != nil {
		return Dists{}, err
	}

	methods, err := f.MethodDists(cfg.Constructors())
	if err != nil {
		return Dists{}, err
	}

	return Dists{Fields: fields, Methods: methods}, nil
}

func fold(out map[string]Dist, id string, d Dist) {
	if prev, ok := out[id]; ok {
		d = Merge(prev, d)
	}

	out[id] = d
}

// onlyIn returns the side an annotation restricts its target to, and
// whether the annotation is a side annotation at all. An annotation with
// an _interface element only restricts that interface, so the target
// itself stays on Both.
func onlyIn(a classfile.Annotation) (Dist, bool) {
	if !strings.Contains(a.Type, onlyInMarker) {
		return Both, false
	}

	if v, ok := a.Element("_interface"); ok && v.Tag == classfile.TagClass && v.Class != objectDesc {
		return Both, true
	}

	v, ok := a.Element("value")
	if !ok || v.Tag != classfile.TagEnum || !strings.Contains(v.EnumType, distEnumMarker) {
		return Both, true
	}

	switch v.EnumName {
	case "CLIENT":
		return Client, true
	case "DEDICATED_SERVER":
		return Server, true
	default:
		return Both, true
	}
}

// annotatedDist combines every side annotation of one element.
func annotatedDist(anns []classfile.Annotation) (Dist, error) {
	var ds []Dist

	for _, a := range anns {
		if d, ok := onlyIn(a); ok {
			ds = append(ds, d)
		}
	}

	return CommonAll(ds...)
}

// scanClass extracts the facts of one class file.
func scanClass(name string, data []byte) (*JarFacts, error) {
	cf, err := classfile.Parse(data)
	if err != nil {
		return nil, rerrors.Parse(name, 0, "invalid class file", err)
	}

	out := newJarFacts()
	owner := entry.Class(cf.Name)

	d, err := annotatedDist(cf.Annotations)
	if err != nil {
		return nil, rerrors.Consistency("side of class "+cf.Name, err)
	}

	out.classes[owner] = d

	for _, fm := range cf.Fields {
		d, err := annotatedDist(fm.Annotations)
		if err != nil {
			return nil, rerrors.Consistency("side of field "+cf.Name+"."+fm.Name, err)
		}

		out.fields[fieldKey{owner: owner, name: fm.Name}] = fieldFact{desc: entry.TypeDescriptor(fm.Descriptor), dist: d}
	}

	for _, mm := range cf.Methods {
		m := entry.Method(owner, mm.Name, entry.MethodDescriptor(mm.Descriptor))

		d, err := annotatedDist(mm.Annotations)
		if err != nil {
			return nil, rerrors.Consistency("side of method "+m.String(), err)
		}

		out.methods[m] = d

		if mm.IsStatic() && IsPlaceholderMethod(mm.Name) {
			out.static[PlaceholderID(mm.Name)] = true
		}
	}

	return out, nil
}

// ScanJar collects the facts of every class in jar data. Class files are
// parsed by up to workers goroutines; workers < 1 means one per CPU.
func ScanJar(ctx context.Context, data []byte, workers int) (*JarFacts, error) {
	jar, err := index.OpenJar(data)
	if err != nil {
		return nil, err
	}

	if workers < 1 {
		workers = runtime.NumCPU()
	}

	var (
		mu  sync.Mutex
		out = newJarFacts()
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	// Each worker inflates its own class file.
	for _, name := range jar.ClassNames() {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			data, err := jar.ReadClass(name)
			if err != nil {
				return err
			}

			part, err := scanClass(name, data)
			if err != nil {
				return err
			}

			mu.Lock()
			out.merge(part)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

var hashKey = []byte("remapper-jar-facts-cache-key-032")

// FactsCache keeps the facts of recently scanned jars, keyed by a hash of
// their content. It is safe for concurrent use.
type FactsCache struct {
	cache   *lru.Cache[uint64, *JarFacts]
	workers int
}

// NewFactsCache holds up to size jars and scans with the given number of
// workers.
func NewFactsCache(size, workers int) (*FactsCache, error) {
	cache, err := lru.New[uint64, *JarFacts](size)
	if err != nil {
		return nil, rerrors.Config("invalid jar cache size", err)
	}

	return &FactsCache{cache: cache, workers: workers}, nil
}

// Facts returns the facts of jar data, scanning it on a miss. A nil cache
// always scans.
func (c *FactsCache) Facts(ctx context.Context, data []byte) (*JarFacts, error) {
	if c == nil {
		return ScanJar(ctx, data, 0)
	}

	key, err := hashJar(data)
	if err != nil {
		return nil, err
	}

	if facts, ok := c.cache.Get(key); ok {
		return facts, nil
	}

	facts, err := ScanJar(ctx, data, c.workers)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, facts)

	return facts, nil
}

// Len returns the number of cached jars.
func (c *FactsCache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached jar.
func (c *FactsCache) Purge() {
	c.cache.Purge()
}

func hashJar(data []byte) (uint64, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}

	if _, err := h.Write(data); err != nil {
		return 0, err
	}

	return h.Sum64(), nil
}
