package java

import "strings"

// ClassLoader finds compiled classes by binary name, e.g.
// "java.util.Map$Entry". It returns an error wrapping ErrClassNotFound
// when it has no such class.
type ClassLoader interface {
	Load(binaryName string) (*ClassDescriptor, error)
}

// SourceParser fills a Builder from the text of one compilation unit.
// It calls BeginSource with url and EndSource when done.
type SourceParser interface {
	Parse(b *Builder, content []byte, url string) error
}

// ClassDescriptor is a compiled class as reported by a ClassLoader. All
// class names in it are binary names.
type ClassDescriptor struct {
	Name           string
	Kind           ClassKind
	Modifiers      []string
	TypeParameters []*TypeVariableDef
	Superclass     *TypeDef
	Interfaces     []*TypeDef
	Annotations    []*AnnotationDef
	Fields         []*FieldDef
	Methods        []*MethodDescriptor
	Constructors   []*MethodDescriptor
	// NestedClasses are binary names of the member classes.
	NestedClasses []string
	Enclosing     string
}

type MethodDescriptor struct {
	MethodDef
	Parameters []*ParameterDef
	Exceptions []*TypeDef
}

// classFromDescriptor builds a reflected Class. Reflected classes have
// no Source; their members refer back to them through the Library.
func (l *Library) classFromDescriptor(d *ClassDescriptor) *Class {
	pkg, name := splitBinaryName(d.Name)
	kind := d.Kind
	if kind == "" {
		kind = ClassKindClass
	}
	c := &Class{
		modifiers:   modifiers{mods: d.Modifiers},
		lib:         l,
		sourceID:    -1,
		pkg:         pkg,
		name:        name,
		binary:      d.Name,
		enclosing:   d.Enclosing,
		kind:        kind,
		nestedNames: d.NestedClasses,
	}
	if c.nestedNames == nil {
		c.nestedNames = []string{}
	}
	types := &typeMaker{lib: l, resolved: true}
	c.annotations = types.annotations(d.Annotations)
	c.typeParams = types.declare(d.TypeParameters, true)
	if kind == ClassKindClass && d.Superclass != nil && d.Superclass.Name != objectName {
		c.superclass = types.make(d.Superclass)
	}
	for _, i := range d.Interfaces {
		if kind == ClassKindAnnotation && i.Name == annotationName {
			continue
		}
		c.interfaces = append(c.interfaces, types.make(i))
	}

	ref := c.ref()
	for _, fd := range d.Fields {
		f := &Field{
			modifiers:    modifiers{mods: fd.Modifiers},
			owner:        ref,
			name:         fd.Name,
			typ:          types.make(fd.Type),
			initializer:  fd.Initializer,
			enumConstant: fd.EnumConstant,
		}
		c.fields = append(c.fields, f)
	}
	for i, md := range d.Methods {
		e := l.executableFromDescriptor(types, ref, md, false, i)
		m := &method{executable: *e, defaultValue: md.DefaultValue}
		m.isDefault = m.has("default")
		m.returns = types.make(md.Returns)
		if m.returns == nil {
			m.returns = newResolvedType(l, "void", nil, 0)
		}
		types.pop()
		m.self = &Method{method: m}
		c.methods = append(c.methods, m.self)
	}
	for i, md := range d.Constructors {
		e := l.executableFromDescriptor(types, ref, md, true, i)
		types.pop()
		c.constructors = append(c.constructors, &Constructor{executable: *e})
	}
	return c
}

// executableFromDescriptor leaves the member's type variables declared;
// the caller pops them once the return type is built.
func (l *Library) executableFromDescriptor(types *typeMaker, owner classRef, md *MethodDescriptor, ctor bool, index int) *executable {
	e := &executable{
		modifiers: modifiers{mods: md.Modifiers},
		owner:     owner,
		name:      md.Name,
	}
	e.typeParams = types.declare(md.TypeParameters, e.has("static"))
	for _, pd := range md.Parameters {
		typ := types.make(pd.Type)
		if pd.VarArgs {
			typ = typ.withDims(typ.dims + 1)
		}
		e.params = append(e.params, &Parameter{
			modifiers: modifiers{mods: pd.Modifiers},
			name:      pd.Name,
			typ:       typ,
			varargs:   pd.VarArgs,
			member:    memberRef{owner: owner, constructor: ctor, index: index},
		})
	}
	for _, t := range md.Exceptions {
		e.exceptions = append(e.exceptions, types.make(t))
	}
	return e
}

// splitBinaryName returns the package and simple name of a binary name:
// "java.util.Map$Entry" gives "java.util" and "Entry".
func splitBinaryName(binary string) (pkg, name string) {
	top := binary[:indexOrLen(binary)]
	if i := strings.LastIndexByte(top, '.'); i >= 0 {
		pkg = top[:i]
	}
	name = binary[len(pkg):]
	if pkg != "" {
		name = name[1:]
	}
	if i := strings.LastIndexByte(name, '$'); i >= 0 {
		name = name[i+1:]
	}
	return pkg, name
}
