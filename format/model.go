package format

import (
	"github.com/dhamidi/javamodel/java"
)

type classData struct {
	Name           string       `json:"name" yaml:"name"`
	BinaryName     string       `json:"binaryName" yaml:"binaryName"`
	SimpleName     string       `json:"simpleName" yaml:"simpleName"`
	Package        string       `json:"package,omitempty" yaml:"package,omitempty"`
	Kind           string       `json:"kind" yaml:"kind"`
	Visibility     string       `json:"visibility" yaml:"visibility"`
	Modifiers      []string     `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Stub           bool         `json:"stub,omitempty" yaml:"stub,omitempty"`
	Source         string       `json:"source,omitempty" yaml:"source,omitempty"`
	Line           int          `json:"line,omitempty" yaml:"line,omitempty"`
	Annotations    []string     `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	TypeParameters []string     `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	SuperClass     string       `json:"superClass,omitempty" yaml:"superClass,omitempty"`
	Interfaces     []string     `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Fields         []fieldData  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Constructors   []methodData `json:"constructors,omitempty" yaml:"constructors,omitempty"`
	Methods        []methodData `json:"methods,omitempty" yaml:"methods,omitempty"`
	NestedClasses  []string     `json:"nestedClasses,omitempty" yaml:"nestedClasses,omitempty"`
}

type typeData struct {
	Name       string `json:"name" yaml:"name"`
	Erasure    string `json:"erasure,omitempty" yaml:"erasure,omitempty"`
	ArrayDepth int    `json:"arrayDepth,omitempty" yaml:"arrayDepth,omitempty"`
}

type fieldData struct {
	Name         string   `json:"name" yaml:"name"`
	Type         typeData `json:"type" yaml:"type"`
	Visibility   string   `json:"visibility" yaml:"visibility"`
	Modifiers    []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Initializer  string   `json:"initializer,omitempty" yaml:"initializer,omitempty"`
	EnumConstant bool     `json:"enumConstant,omitempty" yaml:"enumConstant,omitempty"`
	DeclaredIn   string   `json:"declaredIn,omitempty" yaml:"declaredIn,omitempty"`
}

type methodData struct {
	Name           string          `json:"name" yaml:"name"`
	Signature      string          `json:"signature" yaml:"signature"`
	ReturnType     *typeData       `json:"returnType,omitempty" yaml:"returnType,omitempty"`
	Parameters     []parameterData `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Exceptions     []string        `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
	TypeParameters []string        `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	Visibility     string          `json:"visibility" yaml:"visibility"`
	Modifiers      []string        `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	DeclaredIn     string          `json:"declaredIn,omitempty" yaml:"declaredIn,omitempty"`
}

type parameterData struct {
	Name    string   `json:"name" yaml:"name"`
	Type    typeData `json:"type" yaml:"type"`
	VarArgs bool     `json:"varargs,omitempty" yaml:"varargs,omitempty"`
}

func newType(t *java.Type) typeData {
	d := typeData{Name: t.GenericFullyQualifiedName(), ArrayDepth: t.Dimensions()}
	if erasure := t.FullyQualifiedName(); erasure != d.Name {
		d.Erasure = erasure
	}
	return d
}

func typeNames(types []*java.Type) []string {
	var out []string
	for _, t := range types {
		out = append(out, t.GenericFullyQualifiedName())
	}
	return out
}

func typeParameters(vars []*java.TypeVariable) []string {
	var out []string
	for _, v := range vars {
		out = append(out, v.GenericValue())
	}
	return out
}

func annotations(anns []*java.Annotation) []string {
	var out []string
	for _, a := range anns {
		out = append(out, a.String())
	}
	return out
}

func buildClass(c *java.Class, opts Options) *classData {
	d := &classData{
		Name:           c.FullyQualifiedName(),
		BinaryName:     c.BinaryName(),
		SimpleName:     c.Name(),
		Package:        c.PackageName(),
		Kind:           string(c.Kind()),
		Visibility:     string(c.Visibility()),
		Modifiers:      c.Modifiers(),
		Stub:           c.IsStub(),
		Line:           c.Line(),
		Annotations:    annotations(c.Annotations()),
		TypeParameters: typeParameters(c.TypeParameters()),
		Interfaces:     typeNames(c.Interfaces()),
	}
	if src := c.Source(); src != nil {
		d.Source = src.URL()
	}
	if s := c.SuperClass(); s != nil {
		d.SuperClass = s.GenericFullyQualifiedName()
	}
	for _, f := range c.Fields(opts.Inherited) {
		fd := fieldData{
			Name:         f.Name(),
			Type:         newType(f.Type()),
			Visibility:   string(f.Visibility()),
			Modifiers:    f.Modifiers(),
			Initializer:  f.Initializer(),
			EnumConstant: f.IsEnumConstant(),
		}
		if decl := f.DeclaringClass(); decl != nil && !decl.Equal(c) {
			fd.DeclaredIn = decl.FullyQualifiedName()
		}
		d.Fields = append(d.Fields, fd)
	}
	for _, k := range c.Constructors() {
		d.Constructors = append(d.Constructors, methodData{
			Name:           k.Name(),
			Signature:      k.DeclarationSignature(false),
			Parameters:     parameters(k.Parameters(), k.ParameterTypes(false)),
			Exceptions:     typeNames(k.Exceptions()),
			TypeParameters: typeParameters(k.TypeParameters()),
			Visibility:     string(k.Visibility()),
			Modifiers:      k.Modifiers(),
		})
	}
	for _, m := range c.Methods(opts.Inherited) {
		ret := newType(m.ReturnType(opts.ResolveGenerics))
		md := methodData{
			Name:           m.Name(),
			Signature:      m.DeclarationSignature(false),
			ReturnType:     &ret,
			Parameters:     parameters(m.Parameters(), m.ParameterTypes(opts.ResolveGenerics)),
			Exceptions:     typeNames(m.Exceptions()),
			TypeParameters: typeParameters(m.TypeParameters()),
			Visibility:     string(m.Visibility()),
			Modifiers:      m.Modifiers(),
		}
		if m.IsInherited() {
			md.DeclaredIn = m.DeclaringClass().FullyQualifiedName()
		}
		d.Methods = append(d.Methods, md)
	}
	for _, n := range c.NestedClasses() {
		d.NestedClasses = append(d.NestedClasses, n.FullyQualifiedName())
	}
	return d
}

func parameters(params []*java.Parameter, types []*java.Type) []parameterData {
	var out []parameterData
	for i, p := range params {
		out = append(out, parameterData{
			Name:    p.Name(),
			Type:    newType(types[i]),
			VarArgs: p.IsVarArgs(),
		})
	}
	return out
}
