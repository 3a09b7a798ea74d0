package java

import (
	"strings"
	"sync"
)

// Import is one import declaration. Path is the dotted name without the
// trailing ".*" of on-demand imports.
type Import struct {
	Path       string
	IsStatic   bool
	IsWildcard bool
}

// ParseImport reads the text between "import" and ";", e.g.
// "static java.util.Map.*".
func ParseImport(text string) Import {
	text = strings.TrimSpace(text)
	var imp Import
	if rest, ok := strings.CutPrefix(text, "static "); ok {
		imp.IsStatic = true
		text = strings.TrimSpace(rest)
	}
	if rest, ok := strings.CutSuffix(text, ".*"); ok {
		imp.IsWildcard = true
		text = rest
	}
	imp.Path = strings.ReplaceAll(text, " ", "")
	return imp
}

func (i Import) String() string {
	var sb strings.Builder
	if i.IsStatic {
		sb.WriteString("static ")
	}
	sb.WriteString(i.Path)
	if i.IsWildcard {
		sb.WriteString(".*")
	}
	return sb.String()
}

// lastSegment returns the part of a dotted name after the final dot.
func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Source is one compilation unit. It is immutable once its Builder has
// finished, apart from the memoised name resolutions.
type Source struct {
	lib      *Library
	id       int
	url      string
	pkg      string
	imports  []Import
	classes  []*Class
	byBinary map[string]*Class

	// guarded by lib.mu
	registered bool

	mu       sync.Mutex
	resolved map[string]string
}

func (s *Source) URL() string { return s.url }

// PackageName is "" for the default package.
func (s *Source) PackageName() string { return s.pkg }

// Package returns nil for the default package.
func (s *Source) Package() *Package {
	if s.pkg == "" {
		return nil
	}
	return &Package{lib: s.lib, name: s.pkg}
}

func (s *Source) Imports() []Import { return s.imports }

// Classes returns the top-level classes in declaration order.
func (s *Source) Classes() []*Class { return s.classes }

// AllClasses returns every class of the unit, nested ones included,
// outer before inner.
func (s *Source) AllClasses() []*Class {
	var out []*Class
	var walk func([]*Class)
	walk = func(cs []*Class) {
		for _, c := range cs {
			out = append(out, c)
			walk(c.nested)
			for _, f := range c.fields {
				if f.body != nil {
					walk([]*Class{f.body})
				}
			}
		}
	}
	walk(s.classes)
	return out
}

// ClassByName finds a top-level class by simple name.
func (s *Source) ClassByName(name string) *Class {
	for _, c := range s.classes {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (s *Source) classByBinary(binary string) *Class {
	return s.byBinary[binary]
}

// ClassByBinaryName finds any class of the unit, nested or anonymous.
func (s *Source) ClassByBinaryName(binary string) *Class {
	return s.classByBinary(binary)
}

func (s *Source) index() {
	s.byBinary = make(map[string]*Class)
	for _, c := range s.AllClasses() {
		s.byBinary[c.binary] = c
	}
}

// exists checks the unit's own classes before asking the Library, so
// that an unregistered Source still sees its siblings.
func (s *Source) exists(binary string) bool {
	if _, ok := s.byBinary[binary]; ok {
		return true
	}
	return s.lib != nil && s.lib.HasClassReference(binary)
}

// ResolveFullyQualifiedName maps a name as written in this unit to its
// dotted fully-qualified name, or "" when it cannot be resolved.
func (s *Source) ResolveFullyQualifiedName(name string) string {
	if b := s.ResolveBinaryName(name); b != "" {
		return canonicalName(b)
	}
	return ""
}

// ResolveBinaryName is ResolveFullyQualifiedName in "$" form, which is
// what the Library indexes classes under.
func (s *Source) ResolveBinaryName(name string) string {
	return s.memo(name, func() string { return s.lookupBinaryName(name) })
}

// memo caches compute's result under key. The first stored result wins,
// so a name never changes its resolution once published.
func (s *Source) memo(key string, compute func() string) string {
	s.mu.Lock()
	binary, ok := s.resolved[key]
	s.mu.Unlock()
	if ok {
		return binary
	}

	binary = compute()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolved == nil {
		s.resolved = make(map[string]string)
	}
	if prev, ok := s.resolved[key]; ok {
		return prev
	}
	s.resolved[key] = binary
	return binary
}
