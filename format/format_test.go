package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/javamodel/java"
	"github.com/dhamidi/javamodel/java/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const shapes = `package geo;

public abstract class Shape<T extends Number> {
    public static final int SIDES = 0;
    protected T size;

    public abstract double area();

    public T size() { return size; }
}

class Square extends Shape<Integer> implements Comparable<Square> {
    public Square(int side) throws IllegalArgumentException {}

    public double area() { return 0; }

    public int compareTo(Square o) { return 0; }
}

enum Color {
    RED, GREEN("g");

    Color() {}
    Color(String s) {}
}
`

func library(t *testing.T) *java.Library {
	t.Helper()
	lib := java.NewLibrary(java.WithSourceParser(parser.New()))
	_, err := lib.AddSource(strings.NewReader(shapes), "geo/Shape.java")
	require.NoError(t, err)
	return lib
}

func methodNamed(methods []methodData, name string) *methodData {
	for i := range methods {
		if methods[i].Name == name {
			return &methods[i]
		}
	}
	return nil
}

func TestJSONEncoder(t *testing.T) {
	lib := library(t)
	var buf bytes.Buffer
	enc := NewJSONEncoder(&buf, Options{Inherited: true, ResolveGenerics: true})
	require.NoError(t, enc.Encode(lib.Resolve("geo.Square")))

	var got classData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "geo.Square", got.Name)
	assert.Equal(t, "Square", got.SimpleName)
	assert.Equal(t, "class", got.Kind)
	assert.Equal(t, "package", got.Visibility)
	assert.Equal(t, "geo/Shape.java", got.Source)
	assert.Equal(t, "geo.Shape<java.lang.Integer>", got.SuperClass)
	assert.Equal(t, []string{"java.lang.Comparable<geo.Square>"}, got.Interfaces)

	require.Len(t, got.Constructors, 1)
	ctor := got.Constructors[0]
	require.Len(t, ctor.Parameters, 1)
	assert.Equal(t, "int", ctor.Parameters[0].Type.Name)
	assert.Equal(t, []string{"java.lang.IllegalArgumentException"}, ctor.Exceptions)

	var names []string
	for _, m := range got.Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"area", "compareTo", "size"}, names, "area is overridden once")

	size := methodNamed(got.Methods, "size")
	require.NotNil(t, size)
	assert.Equal(t, "geo.Shape", size.DeclaredIn)
	require.NotNil(t, size.ReturnType)
	assert.Equal(t, "java.lang.Integer", size.ReturnType.Name)

	area := methodNamed(got.Methods, "area")
	assert.Empty(t, area.DeclaredIn)
	assert.Equal(t, "double", area.ReturnType.Name)

	var fields []string
	for _, f := range got.Fields {
		fields = append(fields, f.Name+"@"+f.DeclaredIn)
	}
	assert.Equal(t, []string{"SIDES@geo.Shape", "size@geo.Shape"}, fields)
}

func TestYAMLEncoder(t *testing.T) {
	lib := library(t)
	var buf bytes.Buffer
	require.NoError(t, NewYAMLEncoder(&buf, Options{}).Encode(lib.Resolve("geo.Shape")))
	assert.Contains(t, buf.String(), "binaryName: geo.Shape\n")

	var got classData
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "geo", got.Package)
	assert.Equal(t, []string{"public", "abstract"}, got.Modifiers)
	assert.Equal(t, []string{"T extends Number"}, got.TypeParameters)
	assert.Equal(t, "java.lang.Object", got.SuperClass)

	require.Len(t, got.Fields, 2)
	assert.Equal(t, "0", got.Fields[0].Initializer)
	assert.Equal(t, []string{"public", "static", "final"}, got.Fields[0].Modifiers)

	area := methodNamed(got.Methods, "area")
	require.NotNil(t, area)
	assert.Equal(t, []string{"public", "abstract"}, area.Modifiers)
	assert.Equal(t, "public", area.Visibility)
}

func TestJavaEncoder(t *testing.T) {
	lib := library(t)
	var buf bytes.Buffer
	require.NoError(t, NewJavaEncoder(&buf, Options{Inherited: true, ResolveGenerics: true}).Encode(lib.Resolve("geo.Square")))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "package geo;\n\n"))
	assert.Contains(t, out, "class Square extends geo.Shape<java.lang.Integer> implements java.lang.Comparable<geo.Square> {\n")
	assert.Contains(t, out, "    public Square(int side) throws IllegalArgumentException { }\n")
	assert.Contains(t, out, "    public double area() { }\n")
	assert.Contains(t, out, "    // from geo.Shape\n    public java.lang.Integer size() { }\n")
	assert.Contains(t, out, "    public static final int SIDES = 0;\n")

	buf.Reset()
	require.NoError(t, NewJavaEncoder(&buf, Options{}).Encode(lib.Resolve("geo.Color")))
	out = buf.String()
	assert.Contains(t, out, "enum Color {\n")
	assert.Contains(t, out, "    RED, GREEN(\"g\");\n")
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		enc, err := New(name, &bytes.Buffer{}, Options{})
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
	_, err := New("xml", &bytes.Buffer{}, Options{})
	assert.Error(t, err)
}

func TestDeclaration(t *testing.T) {
	lib := library(t)
	assert.Equal(t, "public abstract class Shape<T extends Number>", Declaration(lib.Resolve("geo.Shape")))
	assert.Equal(t, "enum Color", Declaration(lib.Resolve("geo.Color")))
}
