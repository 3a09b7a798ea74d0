package java

import "strings"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindRecord     ClassKind = "record"
	ClassKindPrimitive  ClassKind = "primitive"
)

// HasModifiers is implemented by every declaration that carries
// modifier keywords.
type HasModifiers interface {
	Modifiers() []string
	Visibility() Visibility
	IsStatic() bool
	IsFinal() bool
	IsAbstract() bool
}

// HasParameters is the shape shared by methods and constructors.
type HasParameters interface {
	HasModifiers
	Name() string
	DeclaringClass() *Class
	TypeParameters() []*TypeVariable
	Parameters() []*Parameter
	ParameterTypes(resolveGenerics bool) []*Type
	Exceptions() []*Type
	IsVarArgs() bool
}

// IsAType is implemented by anything that can stand in a type position:
// a Class or a Type reference.
type IsAType interface {
	FullyQualifiedName() string
	BinaryName() string
}

type modifiers struct {
	mods []string
}

func (m *modifiers) Modifiers() []string { return m.mods }

func (m *modifiers) has(name string) bool {
	for _, mod := range m.mods {
		if mod == name {
			return true
		}
	}
	return false
}

func (m *modifiers) IsPublic() bool    { return m.has("public") }
func (m *modifiers) IsProtected() bool { return m.has("protected") }
func (m *modifiers) IsPrivate() bool   { return m.has("private") }
func (m *modifiers) IsStatic() bool    { return m.has("static") }
func (m *modifiers) IsFinal() bool     { return m.has("final") }
func (m *modifiers) IsAbstract() bool  { return m.has("abstract") }
func (m *modifiers) IsNative() bool    { return m.has("native") }

func (m *modifiers) Visibility() Visibility {
	switch {
	case m.IsPublic():
		return VisibilityPublic
	case m.IsProtected():
		return VisibilityProtected
	case m.IsPrivate():
		return VisibilityPrivate
	}
	return VisibilityPackage
}

type annotated struct {
	annotations []*Annotation
}

func (a *annotated) Annotations() []*Annotation { return a.annotations }

// AnnotationByName finds an annotation by simple or qualified type name.
func (a *annotated) AnnotationByName(name string) *Annotation {
	for _, ann := range a.annotations {
		t := ann.Type()
		if t.Value() == name || t.FullyQualifiedName() == name {
			return ann
		}
	}
	return nil
}

// DocTag is one block tag of a doc comment, e.g. "@param x the x".
type DocTag struct {
	Name  string
	Value string
	Line  int
}

// Parameters splits the tag value on whitespace, so that
// "@param name description" yields ["name", "description", ...].
func (t DocTag) Parameters() []string {
	return strings.Fields(t.Value)
}

type documented struct {
	comment string
	tags    []DocTag
}

// Comment is the doc comment text without its leading tags.
func (d *documented) Comment() string { return d.comment }
func (d *documented) Tags() []DocTag  { return d.tags }

func (d *documented) TagsByName(name string) []DocTag {
	var out []DocTag
	for _, t := range d.tags {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

func (d *documented) TagByName(name string) (DocTag, bool) {
	for _, t := range d.tags {
		if t.Name == name {
			return t, true
		}
	}
	return DocTag{}, false
}

var primitiveNames = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "void": true,
}

// IsPrimitiveName reports whether name is a primitive type or void.
func IsPrimitiveName(name string) bool {
	return primitiveNames[name]
}

// javaLangTypes are the java.lang names that resolve without an import
// even when no loader can see the JDK.
var javaLangTypes = map[string]bool{
	"Object": true, "String": true, "Class": true, "System": true,
	"Throwable": true, "Exception": true, "RuntimeException": true, "Error": true,
	"Integer": true, "Long": true, "Short": true, "Byte": true,
	"Float": true, "Double": true, "Character": true, "Boolean": true, "Void": true,
	"Number": true, "Comparable": true, "CharSequence": true,
	"Iterable": true, "Cloneable": true, "Runnable": true, "AutoCloseable": true,
	"Thread": true, "StringBuilder": true, "StringBuffer": true,
	"Math": true, "Enum": true, "Record": true,
	"Override": true, "Deprecated": true, "SuppressWarnings": true,
	"FunctionalInterface": true, "SafeVarargs": true,
	"IllegalArgumentException": true, "IllegalStateException": true,
	"NullPointerException": true, "UnsupportedOperationException": true,
	"IndexOutOfBoundsException": true, "ClassCastException": true,
	"InterruptedException": true, "CloneNotSupportedException": true,
}

const (
	objectName     = "java.lang.Object"
	enumName       = "java.lang.Enum"
	recordName     = "java.lang.Record"
	annotationName = "java.lang.annotation.Annotation"
)

// canonicalName turns a binary name into the dotted form.
func canonicalName(binary string) string {
	return strings.ReplaceAll(binary, "$", ".")
}
