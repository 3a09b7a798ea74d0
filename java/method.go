package java

import (
	"strings"
)

// executable is the shape shared by methods and constructors.
type executable struct {
	modifiers
	annotated
	documented

	owner      classRef
	name       string
	typeParams []*TypeVariable
	params     []*Parameter
	exceptions []*Type
	body       string
	line       int
}

func (e *executable) Name() string                    { return e.name }
func (e *executable) TypeParameters() []*TypeVariable { return e.typeParams }
func (e *executable) Parameters() []*Parameter        { return e.params }
func (e *executable) Exceptions() []*Type             { return e.exceptions }
func (e *executable) Line() int                       { return e.line }

// Body is the raw source text of the body including braces, "" for
// abstract, native and reflected members.
func (e *executable) Body() string { return e.body }

// DeclaringClass is the class whose body declares the member.
func (e *executable) DeclaringClass() *Class { return e.owner.class() }

func (e *executable) IsVarArgs() bool {
	return len(e.params) > 0 && e.params[len(e.params)-1].varargs
}

func (e *executable) ParameterByName(name string) *Parameter {
	for _, p := range e.params {
		if p.name == name {
			return p
		}
	}
	return nil
}

func (e *executable) declaredParameterTypes() []*Type {
	types := make([]*Type, len(e.params))
	for i, p := range e.params {
		types[i] = p.typ
	}
	return types
}

// signatureMatches compares the name, the varargs flag and the erased
// types of a member whose parameter types are own against a query.
func (e *executable) signatureMatches(name string, own, query []*Type, varargs bool) bool {
	if e.name != name || len(own) != len(query) || e.IsVarArgs() != varargs {
		return false
	}
	for i, t := range own {
		if !t.Equal(query[i]) {
			return false
		}
	}
	return true
}

func renderParameters(params []*Parameter, types []*Type) string {
	parts := make([]string, len(params))
	for i, p := range params {
		t := types[i]
		typ := t.GenericValue()
		if p.varargs {
			typ = t.ComponentType().GenericValue() + "..."
		}
		parts[i] = typ + " " + p.name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func renderThrows(exceptions []*Type) string {
	if len(exceptions) == 0 {
		return ""
	}
	parts := make([]string, len(exceptions))
	for i, e := range exceptions {
		parts[i] = e.GenericValue()
	}
	return " throws " + strings.Join(parts, ", ")
}

type method struct {
	executable
	self         *Method
	returns      *Type
	isDefault    bool
	defaultValue string
}

// Method is either a method as declared by its class, or an inherited
// view of one observed through a subclass. Views share the declared
// record and remember the observing class, so generic types can be
// rebound from that class's perspective.
type Method struct {
	*method
	viewedFrom classRef
}

func (m *Method) IsInherited() bool { return m.viewedFrom.binary != "" }

// Declared returns the method as owned by its declaring class.
func (m *Method) Declared() *Method { return m.method.self }

// ViewedFrom is the class the method was looked up on.
func (m *Method) ViewedFrom() *Class {
	if !m.IsInherited() {
		return m.DeclaringClass()
	}
	return m.viewedFrom.class()
}

func (m *Method) viewFrom(ref classRef) *Method {
	if ref.binary == m.owner.binary {
		return m.method.self
	}
	return &Method{method: m.method, viewedFrom: ref}
}

// IsDefault reports an interface method with a default body.
func (m *Method) IsDefault() bool { return m.isDefault }

// DefaultValue is the raw default of an annotation type element.
func (m *Method) DefaultValue() string { return m.defaultValue }

// Returns is the return type as declared.
func (m *Method) Returns() *Type { return m.returns }

// ReturnType is the declared return type, or with resolveGenerics the
// return type as it reads from the class the method is viewed from.
func (m *Method) ReturnType(resolveGenerics bool) *Type {
	if !resolveGenerics || !m.IsInherited() {
		return m.returns
	}
	return m.rebind(m.returns)
}

// ParameterTypes lists parameter types; see ReturnType.
func (m *Method) ParameterTypes(resolveGenerics bool) []*Type {
	types := m.declaredParameterTypes()
	if !resolveGenerics || !m.IsInherited() {
		return types
	}
	for i, t := range types {
		types[i] = m.rebind(t)
	}
	return types
}

func (m *Method) rebind(t *Type) *Type {
	decl := m.DeclaringClass()
	from := m.ViewedFrom()
	if decl == nil || from == nil {
		return t
	}
	return substitute(t, decl, from)
}

// CallSignature renders "name(Type a, Type b)".
func (m *Method) CallSignature() string {
	return m.name + renderParameters(m.params, m.declaredParameterTypes())
}

// DeclarationSignature renders the method header as it would be
// declared, optionally with its modifiers.
func (m *Method) DeclarationSignature(withModifiers bool) string {
	var sb strings.Builder
	if withModifiers && len(m.mods) > 0 {
		sb.WriteString(strings.Join(m.mods, " "))
		sb.WriteByte(' ')
	}
	if tp := renderTypeParameters(m.typeParams); tp != "" {
		sb.WriteString(tp)
		sb.WriteByte(' ')
	}
	sb.WriteString(m.returns.GenericValue())
	sb.WriteByte(' ')
	sb.WriteString(m.CallSignature())
	sb.WriteString(renderThrows(m.exceptions))
	return sb.String()
}

// Equal compares declaring class, name and erased parameter types.
func (m *Method) Equal(other *Method) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.owner.binary == other.owner.binary && m.signatureMatches(other.name, m.declaredParameterTypes(), other.declaredParameterTypes(), other.IsVarArgs())
}

func (m *Method) String() string {
	return canonicalName(m.owner.binary) + "#" + m.name + erasedParameterList(m.declaredParameterTypes())
}

func erasedParameterList(types []*Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.FullyQualifiedName()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

type Constructor struct {
	executable
}

// ParameterTypes lists the declared parameter types. Constructors are
// not inherited, so resolveGenerics has nothing to rebind.
func (c *Constructor) ParameterTypes(resolveGenerics bool) []*Type {
	return c.declaredParameterTypes()
}

func (c *Constructor) CallSignature() string {
	return c.name + renderParameters(c.params, c.declaredParameterTypes())
}

func (c *Constructor) DeclarationSignature(withModifiers bool) string {
	var sb strings.Builder
	if withModifiers && len(c.mods) > 0 {
		sb.WriteString(strings.Join(c.mods, " "))
		sb.WriteByte(' ')
	}
	if tp := renderTypeParameters(c.typeParams); tp != "" {
		sb.WriteString(tp)
		sb.WriteByte(' ')
	}
	sb.WriteString(c.CallSignature())
	sb.WriteString(renderThrows(c.exceptions))
	return sb.String()
}

func (c *Constructor) String() string {
	return canonicalName(c.owner.binary) + "#<init>" + erasedParameterList(c.declaredParameterTypes())
}
