package java

import (
	"fmt"
	"strconv"
)

// TypeDef is a type as handed to the Builder. Name is the type name as
// written ("Map.Entry", "int", "T"), or "?" for a wildcard argument.
type TypeDef struct {
	Name string
	Args []*TypeDef
	Dims int
	// Variable marks Name as a type variable. Parsers may leave it
	// unset: names matching a type parameter in scope are variables.
	Variable bool
	Wildcard WildcardBound
	Bound    *TypeDef
}

// Wildcard builds a "?", "? extends bound" or "? super bound" argument.
func Wildcard(kind WildcardBound, bound *TypeDef) *TypeDef {
	return &TypeDef{Name: "?", Wildcard: kind, Bound: bound}
}

type TypeVariableDef struct {
	Name   string
	Bounds []*TypeDef
}

type ClassDef struct {
	Name           string
	Kind           ClassKind
	Modifiers      []string
	TypeParameters []*TypeVariableDef
	Line           int
}

type MethodDef struct {
	Name           string
	Modifiers      []string
	TypeParameters []*TypeVariableDef
	// Returns is ignored for constructors.
	Returns *TypeDef
	// DefaultValue is the raw default of an annotation type element.
	DefaultValue string
	Line         int
}

type ParameterDef struct {
	Name        string
	Type        *TypeDef
	VarArgs     bool
	Modifiers   []string
	Annotations []*AnnotationDef
}

type FieldDef struct {
	Name         string
	Type         *TypeDef
	Modifiers    []string
	Initializer  string
	EnumConstant bool
	Arguments    []string
	Line         int
}

type AnnotationDef struct {
	Type   *TypeDef
	Values []AnnotationValue
}

// typeMaker turns TypeDefs into Types. When resolved is set the names
// are binary names already, as for compiled classes.
type typeMaker struct {
	lib      *Library
	sc       scope
	resolved bool
	vars     []varScope
}

// varScope holds the type variables of one class or member. Variables
// declared further out are not visible past a static scope.
type varScope struct {
	vars   []*TypeVariable
	static bool
}

func (m *typeMaker) lookupVar(name string) *TypeVariable {
	for i := len(m.vars) - 1; i >= 0; i-- {
		for _, v := range m.vars[i].vars {
			if v.name == name {
				return v
			}
		}
		if m.vars[i].static {
			return nil
		}
	}
	return nil
}

func (m *typeMaker) make(d *TypeDef) *Type {
	return m.makeIn(m.sc, d)
}

func (m *typeMaker) makeIn(sc scope, d *TypeDef) *Type {
	if d == nil {
		return nil
	}
	if d.Name == "?" {
		bound := m.makeIn(sc, d.Bound)
		kind := d.Wildcard
		if bound == nil {
			kind = WildcardUnbounded
		}
		return newWildcardType(m.lib, kind, bound)
	}
	if len(d.Args) == 0 {
		if v := m.lookupVar(d.Name); v != nil {
			return newVariableType(m.lib, v, d.Dims)
		}
		if d.Variable {
			return newVariableType(m.lib, &TypeVariable{name: d.Name}, d.Dims)
		}
	}
	var args []*Type
	for _, a := range d.Args {
		args = append(args, m.makeIn(sc, a))
	}
	if m.resolved {
		return newResolvedType(m.lib, d.Name, args, d.Dims)
	}
	return newClassType(sc, d.Name, args, d.Dims)
}

// declare pushes a new type variable scope. Variables are in scope of
// their own bounds, as in "T extends Comparable<T>". A static scope
// hides the variables of the scopes around it.
func (m *typeMaker) declare(defs []*TypeVariableDef, static bool) []*TypeVariable {
	vars := make([]*TypeVariable, len(defs))
	for i, d := range defs {
		vars[i] = &TypeVariable{name: d.Name}
	}
	m.vars = append(m.vars, varScope{vars: vars, static: static})
	for i, d := range defs {
		for _, b := range d.Bounds {
			vars[i].bounds = append(vars[i].bounds, m.make(b))
		}
	}
	return vars
}

func (m *typeMaker) pop() {
	m.vars = m.vars[:len(m.vars)-1]
}

func (m *typeMaker) annotations(defs []*AnnotationDef) []*Annotation {
	var out []*Annotation
	for _, d := range defs {
		out = append(out, &Annotation{typ: m.make(d.Type), values: d.Values, sc: m.sc})
	}
	return out
}

type classFrame struct {
	c          *Class
	anonymous  int
	scopeClass string
}

// Builder assembles one Source from parser callbacks. Calls append to
// the innermost open record; End calls close it. A Builder is used by
// one goroutine and builds exactly one Source.
type Builder struct {
	lib   *Library
	src   *Source
	done  bool
	types typeMaker

	frames []*classFrame
	method *executable
	ctor   bool
	index  int

	pendingAnnotations []*AnnotationDef
	pendingDoc         *documented
}

func NewBuilder(lib *Library) *Builder {
	if lib == nil {
		lib = NewLibrary()
	}
	return &Builder{lib: lib}
}

func (b *Builder) BeginSource(url string) error {
	if b.src != nil {
		return invalidState("source %q already begun", b.src.url)
	}
	b.src = b.lib.newSource(url)
	b.types = typeMaker{lib: b.lib, sc: scope{lib: b.lib, source: b.src.id}}
	return nil
}

func (b *Builder) requireSource() error {
	if b.src == nil || b.done {
		return invalidState("no open source")
	}
	return nil
}

func (b *Builder) SetPackage(name string) error {
	if err := b.requireSource(); err != nil {
		return err
	}
	if len(b.src.classes) > 0 {
		return invalidState("package declared after classes")
	}
	b.src.pkg = name
	return nil
}

// AddImport takes the text between "import" and ";".
func (b *Builder) AddImport(text string) error {
	if err := b.requireSource(); err != nil {
		return err
	}
	b.src.imports = append(b.src.imports, ParseImport(text))
	return nil
}

// AddAnnotation attaches an annotation to the next class, method,
// constructor or field.
func (b *Builder) AddAnnotation(def *AnnotationDef) error {
	if err := b.requireSource(); err != nil {
		return err
	}
	b.pendingAnnotations = append(b.pendingAnnotations, def)
	return nil
}

// AddJavadoc attaches a raw doc comment to the next declaration.
func (b *Builder) AddJavadoc(raw string, line int) error {
	if err := b.requireSource(); err != nil {
		return err
	}
	comment, tags := ParseDocComment(raw, line)
	b.pendingDoc = &documented{comment: comment, tags: tags}
	return nil
}

func (b *Builder) takePending(sc scope) ([]*Annotation, documented) {
	saved := b.types.sc
	b.types.sc = sc
	anns := b.types.annotations(b.pendingAnnotations)
	b.types.sc = saved
	b.pendingAnnotations = nil
	var doc documented
	if b.pendingDoc != nil {
		doc = *b.pendingDoc
		b.pendingDoc = nil
	}
	return anns, doc
}

func (b *Builder) current() *classFrame {
	if len(b.frames) == 0 {
		return nil
	}
	return b.frames[len(b.frames)-1]
}

func (b *Builder) classScope(binary string) scope {
	return scope{lib: b.lib, source: b.src.id, class: binary}
}

func (b *Builder) BeginClass(def *ClassDef) error {
	if err := b.requireSource(); err != nil {
		return err
	}
	if b.method != nil {
		return invalidState("class %s declared inside a method body", def.Name)
	}
	if def.Name == "" {
		return invalidState("class without a name")
	}
	kind := def.Kind
	if kind == "" {
		kind = ClassKindClass
	}
	c := &Class{
		modifiers: modifiers{mods: def.Modifiers},
		lib:       b.lib,
		sourceID:  b.src.id,
		pkg:       b.src.pkg,
		name:      def.Name,
		kind:      kind,
		line:      def.Line,
	}
	outer := b.current()
	switch {
	case outer != nil:
		c.enclosing = outer.c.binary
		c.binary = outer.c.binary + "$" + def.Name
		outer.c.nested = append(outer.c.nested, c)
	case b.src.pkg != "":
		c.binary = b.src.pkg + "." + def.Name
		b.src.classes = append(b.src.classes, c)
	default:
		c.binary = def.Name
		b.src.classes = append(b.src.classes, c)
	}
	b.openClass(c, def.TypeParameters, outer == nil || hasNoEnclosingInstance(c, outer.c))
	return nil
}

// hasNoEnclosingInstance reports whether nested, declared in outer, is
// implicitly or explicitly static.
func hasNoEnclosingInstance(nested, outer *Class) bool {
	if nested.has("static") || nested.kind != ClassKindClass {
		return true
	}
	return outer.kind == ClassKindInterface || outer.kind == ClassKindAnnotation
}

func (b *Builder) openClass(c *Class, typeParams []*TypeVariableDef, static bool) {
	scopeClass := c.enclosing
	c.annotations, c.documented = b.takePending(b.classScope(scopeClass))
	saved := b.types.sc
	b.types.sc = b.classScope(scopeClass)
	c.typeParams = b.types.declare(typeParams, static)
	b.types.sc = saved
	b.frames = append(b.frames, &classFrame{c: c, scopeClass: scopeClass})
	b.types.sc = b.classScope(c.binary)
}

// SetSuperclass records the extends clause of a class. Interfaces list
// their super-interfaces with AddInterface instead.
func (b *Builder) SetSuperclass(t *TypeDef) error {
	f := b.current()
	if f == nil || b.method != nil {
		return invalidState("superclass outside a class header")
	}
	if f.c.kind != ClassKindClass {
		return invalidState("%s %s cannot have a superclass", f.c.kind, f.c.FullyQualifiedName())
	}
	if f.c.superclass != nil {
		return invalidState("class %s already has a superclass", f.c.FullyQualifiedName())
	}
	f.c.superclass = b.types.makeIn(b.classScope(f.scopeClass), t)
	return nil
}

// AddInterface records an implements clause entry, or an extends entry
// of an interface.
func (b *Builder) AddInterface(t *TypeDef) error {
	f := b.current()
	if f == nil || b.method != nil {
		return invalidState("interface outside a class header")
	}
	f.c.interfaces = append(f.c.interfaces, b.types.makeIn(b.classScope(f.scopeClass), t))
	return nil
}

// BeginEnumConstantBody opens the anonymous subclass of the enum
// constant added last. It is closed with EndClass.
func (b *Builder) BeginEnumConstantBody() error {
	f := b.current()
	if f == nil || f.c.kind != ClassKindEnum || len(f.c.fields) == 0 {
		return invalidState("enum constant body outside an enum")
	}
	constant := f.c.fields[len(f.c.fields)-1]
	if !constant.enumConstant || constant.body != nil {
		return invalidState("enum constant body without a constant")
	}
	f.anonymous++
	c := &Class{
		lib:        b.lib,
		sourceID:   b.src.id,
		pkg:        b.src.pkg,
		name:       strconv.Itoa(f.anonymous),
		binary:     f.c.binary + "$" + strconv.Itoa(f.anonymous),
		enclosing:  f.c.binary,
		kind:       ClassKindClass,
		line:       constant.line,
		anonymous:  true,
		superclass: newResolvedType(b.lib, f.c.binary, nil, 0),
	}
	constant.body = c
	b.openClass(c, nil, false)
	return nil
}

func (b *Builder) beginExecutable(def *MethodDef, ctor bool) (*executable, error) {
	f := b.current()
	if f == nil {
		return nil, invalidState("member %s outside a class", def.Name)
	}
	if b.method != nil {
		return nil, invalidState("member %s inside another member", def.Name)
	}
	e := &executable{
		modifiers: modifiers{mods: def.Modifiers},
		owner:     f.c.ref(),
		name:      def.Name,
		line:      def.Line,
	}
	e.annotations, e.documented = b.takePending(b.types.sc)
	e.typeParams = b.types.declare(def.TypeParameters, e.has("static"))
	b.method = e
	b.ctor = ctor
	return e, nil
}

func (b *Builder) BeginMethod(def *MethodDef) error {
	e, err := b.beginExecutable(def, false)
	if err != nil {
		return err
	}
	f := b.current()
	m := &method{executable: *e, defaultValue: def.DefaultValue}
	m.isDefault = m.has("default")
	m.returns = b.types.make(def.Returns)
	if m.returns == nil {
		m.returns = newResolvedType(b.lib, "void", nil, 0)
	}
	m.self = &Method{method: m}
	b.index = len(f.c.methods)
	f.c.methods = append(f.c.methods, m.self)
	b.method = &m.executable
	return nil
}

func (b *Builder) BeginConstructor(def *MethodDef) error {
	e, err := b.beginExecutable(def, true)
	if err != nil {
		return err
	}
	f := b.current()
	ctor := &Constructor{executable: *e}
	b.index = len(f.c.constructors)
	f.c.constructors = append(f.c.constructors, ctor)
	b.method = &ctor.executable
	return nil
}

// AddParameter appends a parameter to the open method or constructor.
// A varargs parameter's type gains one array dimension.
func (b *Builder) AddParameter(def *ParameterDef) error {
	if b.method == nil {
		return invalidState("parameter %s outside a method", def.Name)
	}
	if b.method.IsVarArgs() {
		return invalidState("parameter %s after a varargs parameter", def.Name)
	}
	typ := b.types.make(def.Type)
	if typ == nil {
		return invalidState("parameter %s without a type", def.Name)
	}
	if def.VarArgs {
		typ = typ.withDims(typ.dims + 1)
	}
	b.method.params = append(b.method.params, &Parameter{
		modifiers: modifiers{mods: def.Modifiers},
		annotated: annotated{annotations: b.types.annotations(def.Annotations)},
		name:      def.Name,
		typ:       typ,
		varargs:   def.VarArgs,
		member:    memberRef{owner: b.method.owner, constructor: b.ctor, index: b.index},
	})
	return nil
}

func (b *Builder) AddThrows(t *TypeDef) error {
	if b.method == nil {
		return invalidState("throws clause outside a method")
	}
	b.method.exceptions = append(b.method.exceptions, b.types.make(t))
	return nil
}

func (b *Builder) SetMethodBody(text string) error {
	if b.method == nil {
		return invalidState("body outside a method")
	}
	b.method.body = text
	return nil
}

// EndMethod closes the open method or constructor.
func (b *Builder) EndMethod() error {
	if b.method == nil {
		return invalidState("no open method")
	}
	b.types.pop()
	b.method = nil
	return nil
}

func (b *Builder) AddField(def *FieldDef) error {
	f := b.current()
	if f == nil || b.method != nil {
		return invalidState("field %s outside a class body", def.Name)
	}
	if def.EnumConstant && f.c.kind != ClassKindEnum {
		return invalidState("enum constant %s in %s %s", def.Name, f.c.kind, f.c.FullyQualifiedName())
	}
	field := &Field{
		modifiers:    modifiers{mods: def.Modifiers},
		owner:        f.c.ref(),
		name:         def.Name,
		initializer:  def.Initializer,
		enumConstant: def.EnumConstant,
		arguments:    def.Arguments,
		line:         def.Line,
	}
	field.annotations, field.documented = b.takePending(b.types.sc)
	if def.EnumConstant {
		if len(field.mods) == 0 {
			field.mods = []string{"public", "static", "final"}
		}
		field.typ = newResolvedType(b.lib, f.c.binary, nil, 0)
	} else {
		field.typ = b.types.make(def.Type)
		if field.typ == nil {
			return invalidState("field %s without a type", def.Name)
		}
	}
	f.c.fields = append(f.c.fields, field)
	return nil
}

// AddRecordComponent declares a record component: a private final
// field and its public accessor method.
func (b *Builder) AddRecordComponent(def *ParameterDef) error {
	f := b.current()
	if f == nil || f.c.kind != ClassKindRecord || b.method != nil {
		return invalidState("record component %s outside a record header", def.Name)
	}
	typ := def.Type
	if def.VarArgs && typ != nil {
		copied := *typ
		copied.Dims++
		typ = &copied
	}
	if err := b.AddField(&FieldDef{Name: def.Name, Type: typ, Modifiers: []string{"private", "final"}, Line: f.c.line}); err != nil {
		return err
	}
	if err := b.BeginMethod(&MethodDef{Name: def.Name, Modifiers: []string{"public"}, Returns: typ, Line: f.c.line}); err != nil {
		return err
	}
	return b.EndMethod()
}

func (b *Builder) AddInitializer(static bool, body string) error {
	f := b.current()
	if f == nil || b.method != nil {
		return invalidState("initializer outside a class body")
	}
	f.c.initializers = append(f.c.initializers, Initializer{Static: static, Body: body})
	return nil
}

func (b *Builder) EndClass() error {
	f := b.current()
	if f == nil {
		return invalidState("no open class")
	}
	if b.method != nil {
		return invalidState("class %s closed with an open method", f.c.FullyQualifiedName())
	}
	b.types.pop()
	b.frames = b.frames[:len(b.frames)-1]
	if outer := b.current(); outer != nil {
		b.types.sc = b.classScope(outer.c.binary)
	} else {
		b.types.sc = b.classScope("")
	}
	return nil
}

// EndSource finishes the unit. The Source is not registered; pass it
// to Library.Register, or use Library.AddSource which does both.
func (b *Builder) EndSource() (*Source, error) {
	if err := b.requireSource(); err != nil {
		return nil, err
	}
	if f := b.current(); f != nil {
		return nil, invalidState("source ended with class %s open", f.c.FullyQualifiedName())
	}
	b.src.index()
	b.done = true
	return b.src, nil
}

// Source returns the finished unit, or nil before EndSource.
func (b *Builder) Source() *Source {
	if !b.done {
		return nil
	}
	return b.src
}

// discard releases the arena slot of an unfinished or unwanted unit.
func (b *Builder) discard() {
	if b.src != nil {
		b.lib.ReleaseSource(b.src)
	}
}

func (d *TypeDef) String() string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s%s", d.Name, brackets(d.Dims))
}
