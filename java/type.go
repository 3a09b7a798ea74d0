package java

import (
	"strings"
	"sync"
)

type TypeKind int

const (
	// TypeKindClass is a named type: a class, interface, primitive or void.
	TypeKindClass TypeKind = iota
	TypeKindVariable
	TypeKindWildcard
)

type WildcardBound int

const (
	WildcardUnbounded WildcardBound = iota
	WildcardExtends
	WildcardSuper
)

// scope is the lexical context a Type's name is resolved in: a Source
// and, inside a class body, the binary name of the innermost class.
type scope struct {
	lib    *Library
	source int
	class  string
}

func (s scope) resolve(name string) string {
	if s.lib == nil {
		return name
	}
	if src := s.lib.source(s.source); src != nil {
		if binary := src.resolveInClass(s.class, name); binary != "" {
			return binary
		}
	}
	return name
}

// Type is a reference to a type as written in a declaration. A class
// type resolves its name lazily against the scope it was written in;
// type variables and wildcards erase to their first bound.
//
// Two Types are equal when their erased fully-qualified names and array
// dimensions match. Generic arguments do not take part in equality.
type Type struct {
	kind      TypeKind
	name      string
	args      []*Type
	dims      int
	variable  *TypeVariable
	bound     *Type
	boundKind WildcardBound
	scope     scope

	once   sync.Once
	binary string
}

func newClassType(sc scope, name string, args []*Type, dims int) *Type {
	return &Type{kind: TypeKindClass, name: name, args: args, dims: dims, scope: sc}
}

// newResolvedType builds a class type whose binary name is already known,
// as for types read from compiled classes.
func newResolvedType(lib *Library, binary string, args []*Type, dims int) *Type {
	return &Type{
		kind:   TypeKindClass,
		name:   binary,
		args:   args,
		dims:   dims,
		scope:  scope{lib: lib, source: -1},
		binary: binary,
	}
}

func newVariableType(lib *Library, v *TypeVariable, dims int) *Type {
	return &Type{kind: TypeKindVariable, name: v.name, variable: v, dims: dims, scope: scope{lib: lib, source: -1}}
}

func newWildcardType(lib *Library, kind WildcardBound, bound *Type) *Type {
	return &Type{kind: TypeKindWildcard, name: "?", boundKind: kind, bound: bound, scope: scope{lib: lib, source: -1}}
}

func (t *Type) Kind() TypeKind { return t.kind }

// Value is the name as written in source, without arguments or brackets.
func (t *Type) Value() string { return t.name }

func (t *Type) Dimensions() int               { return t.dims }
func (t *Type) IsArray() bool                 { return t.dims > 0 }
func (t *Type) IsVariable() bool              { return t.kind == TypeKindVariable }
func (t *Type) IsWildcard() bool              { return t.kind == TypeKindWildcard }
func (t *Type) Variable() *TypeVariable       { return t.variable }
func (t *Type) ActualTypeArguments() []*Type  { return t.args }
func (t *Type) WildcardBound() WildcardBound { return t.boundKind }

// Bound is the wildcard's extends/super bound, nil for "?".
func (t *Type) Bound() *Type { return t.bound }

func (t *Type) IsPrimitive() bool {
	return t.kind == TypeKindClass && t.dims == 0 && primitiveNames[t.elementBinaryName()] && t.name != "void"
}

func (t *Type) IsVoid() bool {
	return t.kind == TypeKindClass && t.dims == 0 && t.name == "void"
}

// elementBinaryName is the erased binary name without array brackets.
func (t *Type) elementBinaryName() string {
	switch t.kind {
	case TypeKindVariable:
		if t.variable != nil && len(t.variable.bounds) > 0 {
			return t.variable.bounds[0].elementBinaryName()
		}
		return objectName
	case TypeKindWildcard:
		if t.boundKind == WildcardExtends && t.bound != nil {
			return t.bound.elementBinaryName()
		}
		return objectName
	}
	t.once.Do(func() {
		if t.binary == "" {
			t.binary = t.scope.resolve(t.name)
		}
	})
	return t.binary
}

func brackets(dims int) string {
	return strings.Repeat("[]", dims)
}

// BinaryName is the erased name with "$" between nested classes,
// e.g. "java.util.Map$Entry[]".
func (t *Type) BinaryName() string {
	return t.elementBinaryName() + brackets(t.dims)
}

// FullyQualifiedName is the erased dotted name, e.g. "java.util.Map.Entry[]".
func (t *Type) FullyQualifiedName() string {
	return canonicalName(t.elementBinaryName()) + brackets(t.dims)
}

// GenericFullyQualifiedName renders the type with its arguments, keeping
// type variable names, e.g. "java.util.List<T>[]".
func (t *Type) GenericFullyQualifiedName() string {
	return t.render(func(t *Type) string { return canonicalName(t.elementBinaryName()) })
}

// GenericValue renders the type with its arguments as written in
// source, e.g. "Map<String,List<T>>".
func (t *Type) GenericValue() string {
	return t.render(func(t *Type) string { return t.name })
}

func (t *Type) render(name func(*Type) string) string {
	var sb strings.Builder
	switch t.kind {
	case TypeKindVariable:
		sb.WriteString(t.name)
	case TypeKindWildcard:
		sb.WriteByte('?')
		if t.bound != nil {
			if t.boundKind == WildcardSuper {
				sb.WriteString(" super ")
			} else {
				sb.WriteString(" extends ")
			}
			sb.WriteString(t.bound.render(name))
		}
	default:
		sb.WriteString(name(t))
		if len(t.args) > 0 {
			sb.WriteByte('<')
			for i, a := range t.args {
				if i > 0 {
					sb.WriteByte(',')
				}
				sb.WriteString(a.render(name))
			}
			sb.WriteByte('>')
		}
	}
	sb.WriteString(brackets(t.dims))
	return sb.String()
}

func (t *Type) String() string {
	return t.GenericFullyQualifiedName()
}

// Equal compares erased fully-qualified names and dimensions.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.dims == other.dims && t.FullyQualifiedName() == other.FullyQualifiedName()
}

// Class resolves the erased element type through the Library. It never
// returns nil when the type belongs to a Library.
func (t *Type) Class() *Class {
	if t.scope.lib == nil {
		return nil
	}
	return t.scope.lib.Resolve(t.elementBinaryName())
}

// ComponentType strips one array dimension; nil for non-arrays.
func (t *Type) ComponentType() *Type {
	if t.dims == 0 {
		return nil
	}
	return t.withDims(t.dims - 1)
}

// IsA reports whether a value of type t is assignable to other by the
// class hierarchy. Arrays must have matching dimensions.
func (t *Type) IsA(other *Type) bool {
	if t.dims != other.dims {
		return false
	}
	a, b := t.Class(), other.Class()
	if a == nil || b == nil {
		return t.Equal(other)
	}
	return a.IsA(b)
}

// copyWith returns a new Type sharing t's identity, with the given
// arguments and dimensions. Class types keep their resolved name so the
// copy does not depend on t's scope being resolvable later.
func (t *Type) copyWith(args []*Type, dims int) *Type {
	c := &Type{
		kind:      t.kind,
		name:      t.name,
		args:      args,
		dims:      dims,
		variable:  t.variable,
		bound:     t.bound,
		boundKind: t.boundKind,
		scope:     t.scope,
	}
	if t.kind == TypeKindClass {
		c.binary = t.elementBinaryName()
	}
	return c
}

func (t *Type) withDims(dims int) *Type {
	return t.copyWith(t.args, dims)
}
