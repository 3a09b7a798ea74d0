package format

import (
	"io"
	"strings"

	"github.com/dhamidi/javamodel/java"
)

// JavaEncoder renders a class as a Java declaration outline: headers of
// the class and its members, with empty bodies.
type JavaEncoder struct {
	w     io.Writer
	opts  Options
	class *java.Class
}

func NewJavaEncoder(w io.Writer, opts Options) *JavaEncoder {
	return &JavaEncoder{w: w, opts: opts}
}

func (e *JavaEncoder) Encode(class *java.Class) error {
	e.class = class
	return encode(e.w, e)
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class
	if pkg := c.PackageName(); pkg != "" {
		sb.WriteString("package ")
		sb.WriteString(pkg)
		sb.WriteString(";\n\n")
	}
	e.writeClass(&sb, c, "")
	return []byte(sb.String()), nil
}

func (e *JavaEncoder) writeClass(sb *strings.Builder, c *java.Class, indent string) {
	writeAnnotations(sb, c.Annotations(), indent)
	sb.WriteString(indent)
	e.writeClassDeclaration(sb, c)
	sb.WriteString(" {\n")

	inner := indent + "    "
	opts := e.opts
	if c != e.class {
		opts = Options{}
	}
	e.writeFields(sb, c, inner, opts)
	for _, k := range c.Constructors() {
		writeAnnotations(sb, k.Annotations(), inner)
		sb.WriteString(inner)
		sb.WriteString(k.DeclarationSignature(true))
		sb.WriteString(" { }\n")
	}
	for _, m := range c.Methods(opts.Inherited) {
		if m.IsInherited() {
			sb.WriteString(inner)
			sb.WriteString("// from ")
			sb.WriteString(m.DeclaringClass().FullyQualifiedName())
			sb.WriteString("\n")
		}
		writeAnnotations(sb, m.Annotations(), inner)
		sb.WriteString(inner)
		sb.WriteString(MethodDeclaration(m, opts.ResolveGenerics))
		if m.IsAbstract() || m.IsNative() || (m.DeclaringClass().IsInterface() && !m.IsDefault() && !m.IsStatic()) {
			sb.WriteString(";\n")
		} else {
			sb.WriteString(" { }\n")
		}
	}
	for _, n := range c.NestedClasses() {
		sb.WriteString("\n")
		e.writeClass(sb, n, inner)
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")
}

func (e *JavaEncoder) writeClassDeclaration(sb *strings.Builder, c *java.Class) {
	if mods := c.Modifiers(); len(mods) > 0 {
		sb.WriteString(strings.Join(mods, " "))
		sb.WriteString(" ")
	}
	switch c.Kind() {
	case java.ClassKindAnnotation:
		sb.WriteString("@interface ")
	case java.ClassKindEnum:
		sb.WriteString("enum ")
	case java.ClassKindRecord:
		sb.WriteString("record ")
	case java.ClassKindInterface:
		sb.WriteString("interface ")
	default:
		sb.WriteString("class ")
	}
	sb.WriteString(c.Name())
	if tp := typeParameters(c.TypeParameters()); len(tp) > 0 {
		sb.WriteString("<")
		sb.WriteString(strings.Join(tp, ", "))
		sb.WriteString(">")
	}
	if c.IsRecord() {
		writeRecordComponents(sb, c)
	}
	if c.Kind() == java.ClassKindClass {
		if s := c.SuperClass(); s != nil && s.FullyQualifiedName() != "java.lang.Object" {
			sb.WriteString(" extends ")
			sb.WriteString(s.GenericFullyQualifiedName())
		}
	}
	if ifaces := c.Interfaces(); len(ifaces) > 0 && !c.IsAnnotation() {
		if c.IsInterface() {
			sb.WriteString(" extends ")
		} else {
			sb.WriteString(" implements ")
		}
		sb.WriteString(strings.Join(typeNames(ifaces), ", "))
	}
}

// Declaration renders the header of c as it would appear in source, as
// in "public class Square extends geo.Shape<java.lang.Integer>".
func Declaration(c *java.Class) string {
	var sb strings.Builder
	(&JavaEncoder{}).writeClassDeclaration(&sb, c)
	return sb.String()
}

func (e *JavaEncoder) writeFields(sb *strings.Builder, c *java.Class, indent string, opts Options) {
	var constants []string
	for _, f := range c.Fields(false) {
		if f.IsEnumConstant() {
			constant := f.Name()
			if args := f.EnumConstantArguments(); len(args) > 0 {
				constant += "(" + strings.Join(args, ", ") + ")"
			}
			constants = append(constants, constant)
		}
	}
	if len(constants) > 0 {
		sb.WriteString(indent)
		sb.WriteString(strings.Join(constants, ", "))
		sb.WriteString(";\n")
	}
	for _, f := range c.Fields(opts.Inherited) {
		if f.IsEnumConstant() || (c.IsRecord() && !f.IsStatic() && f.DeclaringClass().Equal(c)) {
			continue
		}
		writeAnnotations(sb, f.Annotations(), indent)
		sb.WriteString(indent)
		if mods := f.Modifiers(); len(mods) > 0 {
			sb.WriteString(strings.Join(mods, " "))
			sb.WriteString(" ")
		}
		sb.WriteString(f.Type().GenericFullyQualifiedName())
		sb.WriteString(" ")
		sb.WriteString(f.Name())
		if init := f.Initializer(); init != "" {
			sb.WriteString(" = ")
			sb.WriteString(init)
		}
		sb.WriteString(";\n")
	}
}

// MethodDeclaration renders the header of m. With resolveGenerics an
// inherited method reads in terms of the class it is viewed from.
func MethodDeclaration(m *java.Method, resolveGenerics bool) string {
	if !resolveGenerics || !m.IsInherited() {
		return m.DeclarationSignature(true)
	}
	var sb strings.Builder
	if mods := m.Modifiers(); len(mods) > 0 {
		sb.WriteString(strings.Join(mods, " "))
		sb.WriteString(" ")
	}
	if tp := typeParameters(m.TypeParameters()); len(tp) > 0 {
		sb.WriteString("<")
		sb.WriteString(strings.Join(tp, ", "))
		sb.WriteString("> ")
	}
	sb.WriteString(m.ReturnType(true).GenericFullyQualifiedName())
	sb.WriteString(" ")
	sb.WriteString(m.Name())
	sb.WriteString("(")
	types := m.ParameterTypes(true)
	for i, p := range m.Parameters() {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p.IsVarArgs() {
			sb.WriteString(types[i].ComponentType().GenericFullyQualifiedName())
			sb.WriteString("...")
		} else {
			sb.WriteString(types[i].GenericFullyQualifiedName())
		}
		sb.WriteString(" ")
		sb.WriteString(p.Name())
	}
	sb.WriteString(")")
	if ex := m.Exceptions(); len(ex) > 0 {
		sb.WriteString(" throws ")
		sb.WriteString(strings.Join(typeNames(ex), ", "))
	}
	return sb.String()
}

func writeAnnotations(sb *strings.Builder, anns []*java.Annotation, indent string) {
	for _, a := range anns {
		sb.WriteString(indent)
		sb.WriteString(a.String())
		sb.WriteString("\n")
	}
}

func writeRecordComponents(sb *strings.Builder, c *java.Class) {
	var comps []string
	for _, f := range c.Fields(false) {
		if !f.IsStatic() {
			comps = append(comps, f.Type().GenericFullyQualifiedName()+" "+f.Name())
		}
	}
	sb.WriteString("(")
	sb.WriteString(strings.Join(comps, ", "))
	sb.WriteString(")")
}
