package java

import (
	"strings"
	"sync"
)

// Class is a class, interface, enum, annotation type or record, a
// primitive pseudo-class, or a stub standing in for a name that could
// not be found anywhere.
//
// Identity is the binary name: two Class values describing the same
// binary name are Equal even if they were materialised separately.
type Class struct {
	modifiers
	annotated
	documented

	lib       *Library
	sourceID  int
	pkg       string
	name      string
	binary    string
	enclosing string
	kind      ClassKind
	line      int
	anonymous bool
	stub      bool

	superclass   *Type
	interfaces   []*Type
	typeParams   []*TypeVariable
	nested       []*Class
	nestedNames  []string
	fields       []*Field
	methods      []*Method
	constructors []*Constructor
	initializers []Initializer

	superOnce sync.Once
	superCls  *Class
}

// Initializer is a static or instance initializer block.
type Initializer struct {
	Static bool
	Body   string
}

// Name is the simple name; "1", "2", ... for anonymous classes.
func (c *Class) Name() string { return c.name }

func (c *Class) BinaryName() string { return c.binary }

func (c *Class) FullyQualifiedName() string { return canonicalName(c.binary) }

// GenericFullyQualifiedName appends the type parameter names,
// e.g. "java.util.Map<K,V>".
func (c *Class) GenericFullyQualifiedName() string {
	if len(c.typeParams) == 0 {
		return c.FullyQualifiedName()
	}
	names := make([]string, len(c.typeParams))
	for i, p := range c.typeParams {
		names[i] = p.name
	}
	return c.FullyQualifiedName() + "<" + strings.Join(names, ",") + ">"
}

func (c *Class) PackageName() string { return c.pkg }

// Package returns nil for classes in the default package.
func (c *Class) Package() *Package {
	if c.pkg == "" {
		return nil
	}
	return &Package{lib: c.lib, name: c.pkg}
}

// Source is nil for classes that did not come from a parsed unit.
func (c *Class) Source() *Source {
	if c.lib == nil {
		return nil
	}
	return c.lib.source(c.sourceID)
}

// ResolveBinaryName resolves a type name as written inside the body of
// c. It returns "" for unknown names and for classes without a Source.
func (c *Class) ResolveBinaryName(name string) string {
	src := c.Source()
	if src == nil {
		return ""
	}
	return src.resolveInClass(c.binary, name)
}

func (c *Class) Kind() ClassKind    { return c.kind }
func (c *Class) Line() int          { return c.line }
func (c *Class) IsInterface() bool  { return c.kind == ClassKindInterface || c.kind == ClassKindAnnotation }
func (c *Class) IsEnum() bool       { return c.kind == ClassKindEnum }
func (c *Class) IsAnnotation() bool { return c.kind == ClassKindAnnotation }
func (c *Class) IsRecord() bool     { return c.kind == ClassKindRecord }
func (c *Class) IsPrimitive() bool  { return c.kind == ClassKindPrimitive }
func (c *Class) IsAnonymous() bool  { return c.anonymous }

// IsStub reports whether the class is a placeholder for a name found
// in no tier.
func (c *Class) IsStub() bool { return c.stub }

func (c *Class) IsInner() bool { return c.enclosing != "" }

// DeclaringClass is the enclosing class, nil for top-level classes.
func (c *Class) DeclaringClass() *Class {
	if c.enclosing == "" {
		return nil
	}
	return classRef{lib: c.lib, sourceID: c.sourceID, binary: c.enclosing}.class()
}

func (c *Class) Equal(other *Class) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.binary == other.binary
}

func (c *Class) String() string {
	return string(c.kind) + " " + c.FullyQualifiedName()
}

func (c *Class) TypeParameters() []*TypeVariable { return c.typeParams }

// SuperClass is the declared superclass, or the implicit one:
// java.lang.Object for classes, java.lang.Enum<E> for enums and
// java.lang.Record for records. Interfaces, annotation types, stubs,
// primitives and java.lang.Object have none.
func (c *Class) SuperClass() *Type {
	if c.superclass != nil {
		return c.superclass
	}
	if c.stub || c.binary == objectName {
		return nil
	}
	switch c.kind {
	case ClassKindClass:
		return c.lib.objectType()
	case ClassKindEnum:
		return newResolvedType(c.lib, enumName, []*Type{newResolvedType(c.lib, c.binary, nil, 0)}, 0)
	case ClassKindRecord:
		return newResolvedType(c.lib, recordName, nil, 0)
	}
	return nil
}

// SuperJavaClass resolves SuperClass. A superclass chain that leads
// back to this class is cut here: the edge is dropped and logged.
func (c *Class) SuperJavaClass() *Class {
	c.superOnce.Do(func() {
		t := c.SuperClass()
		if t == nil || c.lib == nil {
			return
		}
		sup := t.Class()
		seen := map[string]bool{}
		for s := sup; s != nil; {
			if s.Equal(c) {
				c.lib.log.Warningf("superclass of %s leads back to itself, ignoring it", c.FullyQualifiedName())
				return
			}
			if seen[s.binary] {
				break
			}
			seen[s.binary] = true
			st := s.SuperClass()
			if st == nil {
				break
			}
			s = st.Class()
		}
		c.superCls = sup
	})
	return c.superCls
}

// Interfaces returns the declared interfaces; annotation types also
// report java.lang.annotation.Annotation.
func (c *Class) Interfaces() []*Type {
	if c.kind == ClassKindAnnotation && len(c.interfaces) == 0 && c.lib != nil {
		return []*Type{newResolvedType(c.lib, annotationName, nil, 0)}
	}
	return c.interfaces
}

func (c *Class) InterfaceClasses() []*Class {
	types := c.Interfaces()
	out := make([]*Class, 0, len(types))
	for _, t := range types {
		if cls := t.Class(); cls != nil {
			out = append(out, cls)
		}
	}
	return out
}

// IsA reports whether c is target, or extends or implements it
// directly or transitively. Interfaces are never subtypes of
// java.lang.Object by this relation.
func (c *Class) IsA(target *Class) bool {
	return c.isA(target, map[string]bool{})
}

func (c *Class) isA(target *Class, visited map[string]bool) bool {
	if target == nil {
		return false
	}
	if c.Equal(target) {
		return true
	}
	if visited[c.binary] {
		return false
	}
	visited[c.binary] = true
	for _, iface := range c.InterfaceClasses() {
		if iface.isA(target, visited) {
			return true
		}
	}
	if c.IsInterface() {
		return false
	}
	if sup := c.SuperJavaClass(); sup != nil && sup != c {
		return sup.isA(target, visited)
	}
	return false
}

// IsAName resolves name through the Library and tests IsA.
func (c *Class) IsAName(name string) bool {
	if c.lib == nil {
		return c.binary == name || c.FullyQualifiedName() == name
	}
	return c.IsA(c.lib.Resolve(name))
}

// NestedClasses returns the member classes in declaration order.
func (c *Class) NestedClasses() []*Class {
	if c.nestedNames == nil {
		return c.nested
	}
	out := make([]*Class, 0, len(c.nestedNames))
	for _, n := range c.nestedNames {
		out = append(out, c.lib.Resolve(n))
	}
	return out
}

// NestedClassByName accepts a simple name or a dotted path of member
// classes, e.g. "Inner.Deeper".
func (c *Class) NestedClassByName(name string) *Class {
	first, rest, _ := strings.Cut(name, ".")
	for _, n := range c.NestedClasses() {
		if n.name == first {
			if rest == "" {
				return n
			}
			return n.NestedClassByName(rest)
		}
	}
	return nil
}

func (c *Class) Constructors() []*Constructor { return c.constructors }
func (c *Class) Initializers() []Initializer  { return c.initializers }

func (c *Class) FieldByName(name string) *Field {
	for _, f := range c.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

// EnumConstants returns the fields declared as enum constants.
func (c *Class) EnumConstants() []*Field {
	var out []*Field
	for _, f := range c.fields {
		if f.enumConstant {
			out = append(out, f)
		}
	}
	return out
}

// DerivedClasses returns every class known to the Library whose direct
// superclass or interfaces include c.
func (c *Class) DerivedClasses() []*Class {
	if c.lib == nil {
		return nil
	}
	var out []*Class
	for _, other := range c.lib.Classes() {
		if other.Equal(c) {
			continue
		}
		if sup := other.SuperJavaClass(); sup != nil && sup.Equal(c) {
			out = append(out, other)
			continue
		}
		for _, iface := range other.InterfaceClasses() {
			if iface.Equal(c) {
				out = append(out, other)
				break
			}
		}
	}
	return out
}

func (c *Class) ref() classRef {
	return classRef{lib: c.lib, sourceID: c.sourceID, binary: c.binary}
}

// classRef names a class by binary name and, for parsed classes, the
// arena slot of its Source, so that back-references never hold the
// class itself.
type classRef struct {
	lib      *Library
	sourceID int
	binary   string
}

func (r classRef) class() *Class {
	if r.lib == nil {
		return nil
	}
	if src := r.lib.source(r.sourceID); src != nil {
		if c := src.classByBinary(r.binary); c != nil {
			return c
		}
	}
	return r.lib.Resolve(r.binary)
}
