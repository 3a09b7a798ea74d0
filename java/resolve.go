package java

import (
	"strings"
)

// nestedBinary joins the segments of a relative nested name with "$":
// "Outer.Inner" becomes "Outer$Inner".
func nestedBinary(name string) string {
	return strings.ReplaceAll(name, ".", "$")
}

// binaryCandidates lists the binary names a dotted name may denote,
// turning trailing dots into "$" one at a time:
// "a.B.C" yields "a.B.C", "a.B$C", "a$B$C".
func binaryCandidates(name string) []string {
	out := []string{name}
	cur := name
	for {
		i := strings.LastIndexByte(cur[:indexOrLen(cur)], '.')
		if i < 0 {
			return out
		}
		cur = cur[:i] + "$" + cur[i+1:]
		out = append(out, cur)
	}
}

// indexOrLen returns the index of the first "$", or len(s).
func indexOrLen(s string) int {
	if i := strings.IndexByte(s, '$'); i >= 0 {
		return i
	}
	return len(s)
}

// lookupBinaryName runs the simple-name resolution order for this unit.
func (s *Source) lookupBinaryName(name string) string {
	if name == "" {
		return ""
	}

	// primitives and void
	if primitiveNames[name] {
		return name
	}

	// single-type imports, static ones included since they may name a
	// member type
	for _, imp := range s.imports {
		if imp.IsWildcard {
			continue
		}
		if imp.Path == name || strings.HasSuffix(imp.Path, "."+name) {
			return s.importedBinary(imp.Path)
		}
	}

	// Outer.Inner where only Outer was imported
	if i := strings.IndexByte(name, '.'); i > 0 {
		outer, rest := name[:i], name[i+1:]
		for _, imp := range s.imports {
			if !imp.IsWildcard && lastSegment(imp.Path) == outer {
				return s.importedBinary(imp.Path) + "$" + nestedBinary(rest)
			}
		}
	}

	if s.pkg != "" {
		if candidate := s.pkg + "." + nestedBinary(name); s.exists(candidate) {
			return candidate
		}
	}

	// already fully qualified
	for _, candidate := range binaryCandidates(name) {
		if s.exists(candidate) {
			return candidate
		}
	}

	// member types of this unit's top-level classes
	for _, c := range s.classes {
		if candidate := c.binary + "$" + nestedBinary(name); s.exists(candidate) {
			return candidate
		}
	}

	if candidate := "java.lang." + nestedBinary(name); javaLangTypes[name] || s.exists(candidate) {
		return candidate
	}

	for _, imp := range s.imports {
		if !imp.IsWildcard {
			continue
		}
		if !imp.IsStatic {
			if candidate := imp.Path + "." + nestedBinary(name); s.exists(candidate) {
				return candidate
			}
		}
		if owner := s.classBinaryOf(imp.Path); owner != "" {
			if candidate := owner + "$" + nestedBinary(name); s.exists(candidate) {
				return candidate
			}
		}
	}

	return ""
}

// classBinaryOf finds the binary name of the class a dotted name
// denotes, or "" if it denotes none.
func (s *Source) classBinaryOf(dotted string) string {
	for _, candidate := range binaryCandidates(dotted) {
		if s.exists(candidate) {
			return candidate
		}
	}
	return ""
}

// importedBinary turns an import path into a binary name. Imports are
// trusted: a path naming no known class still resolves to itself.
func (s *Source) importedBinary(path string) string {
	if b := s.classBinaryOf(path); b != "" {
		return b
	}
	return path
}

// resolveInClass resolves a name written inside the body of the class
// with the given binary name: member types of the class, of its
// supertypes and of its enclosing classes shadow the unit-level lookup.
func (s *Source) resolveInClass(classBinary, name string) string {
	if classBinary == "" {
		return s.ResolveBinaryName(name)
	}
	return s.memo(classBinary+"\x00"+name, func() string {
		first, rest, _ := strings.Cut(name, ".")
		for c := s.classByBinary(classBinary); c != nil; c = s.classByBinary(c.enclosing) {
			if c.name == first && !c.anonymous {
				if rest == "" {
					return c.binary
				}
				if candidate := c.binary + "$" + nestedBinary(rest); s.exists(candidate) {
					return candidate
				}
			}
			if candidate := c.binary + "$" + nestedBinary(name); s.exists(candidate) {
				return candidate
			}
			if b := s.inheritedMemberType(c, name, map[string]bool{}); b != "" {
				return b
			}
		}
		return s.ResolveBinaryName(name)
	})
}

func (s *Source) inheritedMemberType(c *Class, name string, visited map[string]bool) string {
	if visited[c.binary] {
		return ""
	}
	visited[c.binary] = true
	supers := c.interfaces
	if c.superclass != nil {
		supers = append([]*Type{c.superclass}, supers...)
	}
	for _, t := range supers {
		sup := t.Class()
		if sup == nil || sup.stub {
			continue
		}
		if candidate := sup.binary + "$" + nestedBinary(name); s.exists(candidate) {
			return candidate
		}
		if b := s.inheritedMemberType(sup, name, visited); b != "" {
			return b
		}
	}
	return ""
}
