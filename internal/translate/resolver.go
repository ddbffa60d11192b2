package translate

import (
	"remapper/internal/common"
	"remapper/internal/entry"
	"remapper/internal/index"
)

// Strategy selects which declarations Resolve returns for an inherited member.
type Strategy int

const (
	// ResolveClosest returns the nearest declaring ancestor.
	ResolveClosest Strategy = iota
	// ResolveRoot returns every topmost declaration.
	ResolveRoot
	// ResolveDeclaring returns the reference itself without chasing.
	ResolveDeclaring
)

// String returns the strategy name used in configuration.
func (s Strategy) String() string {
	switch s {
	case ResolveClosest:
		return "closest"
	case ResolveRoot:
		return "root"
	case ResolveDeclaring:
		return "declaring"
	default:
		return common.UnknownStr
	}
}

// Resolver finds the declarations a reference resolves to.
type Resolver interface {
	// Resolve returns the declarations of e under strategy; never empty.
	Resolve(e entry.Entry, strategy Strategy) []entry.Entry
	// ResolveFirst returns the first declaration of the default strategy.
	ResolveFirst(e entry.Entry) entry.Entry
}

// VoidResolver resolves every entry to itself.
type VoidResolver struct{}

// Resolve implements Resolver.
func (VoidResolver) Resolve(e entry.Entry, _ Strategy) []entry.Entry {
	return []entry.Entry{e}
}

// ResolveFirst implements Resolver.
func (VoidResolver) ResolveFirst(e entry.Entry) entry.Entry {
	return e
}

// Config holds the resolution policy of an IndexResolver.
type Config struct {
	// Strategy is used by ResolveFirst.
	Strategy Strategy
	// MaxDepth limits how many inheritance levels are searched (0 = unlimited).
	MaxDepth int
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{
		Strategy: ResolveClosest,
		MaxDepth: 64,
	}
}

type cacheKey struct {
	entry    entry.Entry
	strategy Strategy
}

// IndexResolver chases inherited members through a jar index.
// It memoizes results and is not safe for concurrent use.
type IndexResolver struct {
	index  *index.Index
	config Config
	// resolved caches results per entry and strategy
	resolved map[cacheKey][]entry.Entry
}

// NewIndexResolver creates a resolver over ix.
func NewIndexResolver(ix *index.Index, config Config) *IndexResolver {
	return &IndexResolver{
		index:    ix,
		config:   config,
		resolved: make(map[cacheKey][]entry.Entry),
	}
}

// ResolveFirst implements Resolver.
func (r *IndexResolver) ResolveFirst(e entry.Entry) entry.Entry {
	resolved, ok := common.First(r.Resolve(e, r.config.Strategy))
	if !ok {
		return e
	}

	return resolved
}

// Resolve implements Resolver. Classes and packages resolve to themselves;
// local variables resolve through their method.
func (r *IndexResolver) Resolve(e entry.Entry, strategy Strategy) []entry.Entry {
	key := cacheKey{entry: entry.Identity(e), strategy: strategy}
	if cached, ok := r.resolved[key]; ok {
		return rename(cached, e)
	}

	var out []entry.Entry

	switch v := e.(type) {
	case entry.MethodEntry:
		out = r.resolveMember(v, v.Owner(), strategy)
	case entry.FieldEntry:
		out = r.resolveMember(v, v.Owner(), strategy)
	case entry.LocalVariableEntry:
		for _, m := range r.Resolve(v.Method(), strategy) {
			out = append(out, v.WithMethod(m.(entry.MethodEntry)))
		}
	default:
		out = []entry.Entry{e}
	}

	r.resolved[key] = out

	return rename(out, e)
}

// rename restores the display name of a local variable on cached results.
func rename(resolved []entry.Entry, e entry.Entry) []entry.Entry {
	l, ok := e.(entry.LocalVariableEntry)
	if !ok {
		return resolved
	}

	out := make([]entry.Entry, len(resolved))
	for i, r := range resolved {
		out[i] = r.WithName(l.Name())
	}

	return out
}

func (r *IndexResolver) resolveMember(member entry.Entry, owner entry.ClassEntry, strategy Strategy) []entry.Entry {
	if strategy == ResolveDeclaring || isConstructor(member) {
		return []entry.Entry{member}
	}

	if _, ok := r.index.Class(owner); !ok {
		return []entry.Entry{member}
	}

	declarers := r.declarers(member, owner)
	if len(declarers) == 0 {
		return []entry.Entry{member}
	}

	if strategy == ResolveClosest {
		return []entry.Entry{withOwner(member, declarers[0])}
	}

	var out []entry.Entry

	for _, d := range declarers {
		if r.isRoot(member, d) {
			out = append(out, withOwner(member, d))
		}
	}

	return out
}

// declarers walks owner and its ancestors breadth-first and returns the
// classes that declare member, nearest first.
func (r *IndexResolver) declarers(member entry.Entry, owner entry.ClassEntry) []entry.ClassEntry {
	var out []entry.ClassEntry

	seen := map[entry.ClassEntry]bool{owner: true}
	level := []entry.ClassEntry{owner}

	for depth := 0; len(level) > 0; depth++ {
		if r.config.MaxDepth > 0 && depth > r.config.MaxDepth {
			break
		}

		var next []entry.ClassEntry

		for _, c := range level {
			if r.index.Declares(c, member) {
				out = append(out, c)
			}

			for _, p := range r.index.Parents(c) {
				if !seen[p] {
					seen[p] = true
					next = append(next, p)
				}
			}
		}

		level = next
	}

	return out
}

func (r *IndexResolver) isRoot(member entry.Entry, c entry.ClassEntry) bool {
	for _, a := range r.index.Ancestors(c) {
		if r.index.Declares(a, member) {
			return false
		}
	}

	return true
}

func isConstructor(e entry.Entry) bool {
	m, ok := e.(entry.MethodEntry)
	return ok && m.IsConstructor()
}

func withOwner(member entry.Entry, owner entry.ClassEntry) entry.Entry {
	switch v := member.(type) {
	case entry.MethodEntry:
		return v.WithOwner(owner)
	case entry.FieldEntry:
		return v.WithOwner(owner)
	default:
		return member
	}
}
