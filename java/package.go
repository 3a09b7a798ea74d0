package java

import "strings"

// Package is a named package known to a Library. Its classes are
// computed from the Library on each call.
type Package struct {
	lib  *Library
	name string
}

func (p *Package) Name() string { return p.name }

// Classes returns the top-level classes of the package.
func (p *Package) Classes() []*Class {
	var out []*Class
	for _, c := range p.lib.Classes() {
		if c.pkg == p.name && c.enclosing == "" {
			out = append(out, c)
		}
	}
	return out
}

// Parent is the enclosing package, or nil for a single-segment name.
func (p *Package) Parent() *Package {
	i := strings.LastIndexByte(p.name, '.')
	if i < 0 {
		return nil
	}
	return &Package{lib: p.lib, name: p.name[:i]}
}

// SubPackages returns the known packages directly below p.
func (p *Package) SubPackages() []*Package {
	var out []*Package
	prefix := p.name + "."
	for _, sub := range p.lib.Packages() {
		rest, ok := strings.CutPrefix(sub.name, prefix)
		if ok && !strings.Contains(rest, ".") {
			out = append(out, sub)
		}
	}
	return out
}

func (p *Package) Equal(other *Package) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.name == other.name
}

func (p *Package) String() string { return "package " + p.name }
