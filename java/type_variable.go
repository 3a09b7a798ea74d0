package java

import "strings"

// TypeVariable is a formal type parameter of a class or method.
type TypeVariable struct {
	name   string
	bounds []*Type
}

func (v *TypeVariable) Name() string { return v.name }

// Bounds are the declared upper bounds in order; empty means Object.
func (v *TypeVariable) Bounds() []*Type { return v.bounds }

// FullyQualifiedName is the erasure: the first bound, or java.lang.Object.
func (v *TypeVariable) FullyQualifiedName() string {
	if len(v.bounds) == 0 {
		return objectName
	}
	return canonicalName(v.bounds[0].elementBinaryName())
}

// GenericValue renders the declaration, e.g. "T extends Comparable<T>".
func (v *TypeVariable) GenericValue() string {
	if len(v.bounds) == 0 {
		return v.name
	}
	parts := make([]string, len(v.bounds))
	for i, b := range v.bounds {
		parts[i] = b.GenericValue()
	}
	return v.name + " extends " + strings.Join(parts, " & ")
}

func (v *TypeVariable) String() string {
	return v.GenericValue()
}

// typeParameterIndex finds v itself among params. Names are not
// compared, since a member may declare a variable that shadows one of
// its class.
func typeParameterIndex(params []*TypeVariable, v *TypeVariable) int {
	if v == nil {
		return -1
	}
	for i, p := range params {
		if p == v {
			return i
		}
	}
	return -1
}

func renderTypeParameters(params []*TypeVariable) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.GenericValue()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
