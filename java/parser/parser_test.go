package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/javamodel/java"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibrary(opts ...Option) *java.Library {
	return java.NewLibrary(java.WithSourceParser(New(opts...)))
}

func parse(t *testing.T, lib *java.Library, url, src string) *java.Source {
	t.Helper()
	s, err := lib.AddSource(strings.NewReader(src), url)
	require.NoError(t, err)
	return s
}

func TestParseScenarios(t *testing.T) {
	t.Run("single field", func(t *testing.T) {
		lib := newLibrary()
		parse(t, lib, "p/A.java", "package p;\npublic class A { public int x; }\n")

		a := lib.Resolve("p.A")
		require.False(t, a.IsStub())
		fields := a.Fields(false)
		require.Len(t, fields, 1)
		assert.Equal(t, "x", fields[0].Name())
		assert.Equal(t, "int", fields[0].Type().FullyQualifiedName())
		assert.True(t, fields[0].IsPublic())
	})

	t.Run("subclass across sources", func(t *testing.T) {
		lib := newLibrary()
		parse(t, lib, "A.java", "class A {}")
		parse(t, lib, "B.java", "class B extends A {}")

		assert.True(t, lib.Resolve("B").IsAName("A"))
		assert.False(t, lib.Resolve("A").IsAName("B"))
		assert.Equal(t, "A", lib.Resolve("B").SuperClass().FullyQualifiedName())
	})

	t.Run("interface", func(t *testing.T) {
		lib := newLibrary()
		parse(t, lib, "A.java", "interface I {}\nclass A implements I {}\n")

		i := lib.Resolve("I")
		assert.True(t, i.IsInterface())
		assert.Nil(t, i.SuperClass())
		assert.True(t, lib.Resolve("A").IsAName("I"))
	})

	t.Run("shared package", func(t *testing.T) {
		lib := newLibrary()
		parse(t, lib, "p/A.java", "package p;\nclass A {}\n")
		parse(t, lib, "p/B.java", "package p;\nclass B {}\n")

		pkg := lib.Package("p")
		require.NotNil(t, pkg)
		var names []string
		for _, c := range pkg.Classes() {
			names = append(names, c.Name())
		}
		assert.ElementsMatch(t, []string{"A", "B"}, names)
	})
}

func TestParseImportsAndPackage(t *testing.T) {
	lib := newLibrary()
	src := parse(t, lib, "Main.java", `
package com.example.app;

import java.util.List;
import java.util.*;
import static java.util.Map.Entry;
import static org.junit.Assert.*;

class Main {}
`)
	assert.Equal(t, "com.example.app", src.PackageName())
	assert.Equal(t, []java.Import{
		{Path: "java.util.List"},
		{Path: "java.util", IsWildcard: true},
		{Path: "java.util.Map.Entry", IsStatic: true},
		{Path: "org.junit.Assert", IsStatic: true, IsWildcard: true},
	}, src.Imports())
	assert.Equal(t, "com.example.app.Main", src.Classes()[0].FullyQualifiedName())
}

func TestParseGenerics(t *testing.T) {
	lib := newLibrary()
	parse(t, lib, "g/A.java", `
package g;

import java.util.List;

public class A<X> {
    public X get() { return null; }
    public void put(X value) {}
}

class B<Y> extends A<List<Y>> {}

class C extends B<String> {}

class Box<T extends Comparable<T> & java.io.Serializable> {
    java.util.Map<String, ? extends Number> counts;
    List<? super T> sink;
    List<?> any;
}
`)

	get := lib.Resolve("g.C").MethodsByName("get", true)
	require.Len(t, get, 1)
	assert.Equal(t, "java.util.List<java.lang.String>", get[0].ReturnType(true).GenericFullyQualifiedName())
	assert.Equal(t, "java.lang.Object", get[0].ReturnType(false).FullyQualifiedName())

	put := lib.Resolve("g.C").MethodsByName("put", true)[0]
	assert.Equal(t, "java.util.List", put.ParameterTypes(true)[0].FullyQualifiedName())

	box := lib.Resolve("g.Box")
	require.Len(t, box.TypeParameters(), 1)
	assert.Equal(t, "T extends Comparable<T> & java.io.Serializable", box.TypeParameters()[0].GenericValue())
	assert.Equal(t, "java.util.Map<java.lang.String,? extends java.lang.Number>", box.FieldByName("counts").Type().GenericFullyQualifiedName())
	assert.Equal(t, "List<? super T>", box.FieldByName("sink").Type().GenericValue())
	assert.Equal(t, "List<?>", box.FieldByName("any").Type().GenericValue())
}

func TestParseMembers(t *testing.T) {
	lib := newLibrary()
	parse(t, lib, "p/Shapes.java", `
package p;

public abstract class Shapes {
    static final int A = 1, B[] = {2};
    private String name = "shapes";
    int grid[][];

    static { init(); }
    { name = "x"; }

    public Shapes(String name) throws IllegalArgumentException {
        this.name = name;
    }

    protected abstract double area();

    public static <T> T first(T... items) { return items[0]; }

    String[] names(final int count)[] { return null; }

    static class Circle extends Shapes {
        Circle() { super("circle"); }
        protected double area() { return 3.14; }
    }
}
`)
	shapes := lib.Resolve("p.Shapes")
	assert.True(t, shapes.IsAbstract())

	fields := shapes.Fields(false)
	require.Len(t, fields, 4)
	assert.Equal(t, "A", fields[0].Name())
	assert.Equal(t, "1", fields[0].Initializer())
	assert.True(t, fields[0].IsStatic())
	assert.Equal(t, "B", fields[1].Name())
	assert.Equal(t, "int[]", fields[1].Type().FullyQualifiedName())
	assert.Equal(t, `"shapes"`, fields[2].Initializer())
	assert.Equal(t, 2, fields[3].Type().Dimensions())

	inits := shapes.Initializers()
	require.Len(t, inits, 2)
	assert.True(t, inits[0].Static)
	assert.Equal(t, "{ init(); }", inits[0].Body)
	assert.False(t, inits[1].Static)

	ctors := shapes.Constructors()
	require.Len(t, ctors, 1)
	assert.Equal(t, "java.lang.IllegalArgumentException", ctors[0].Exceptions()[0].FullyQualifiedName())
	assert.Contains(t, ctors[0].Body(), "this.name = name;")

	area := shapes.MethodsByName("area", false)[0]
	assert.True(t, area.IsAbstract())
	assert.Empty(t, area.Body())
	assert.Equal(t, "protected abstract double area()", area.DeclarationSignature(true))

	first := shapes.MethodsByName("first", false)[0]
	assert.True(t, first.IsVarArgs())
	assert.Equal(t, "first(T... items)", first.CallSignature())
	assert.Equal(t, "java.lang.Object[]", first.Parameters()[0].Type().FullyQualifiedName())

	names := shapes.MethodsByName("names", false)[0]
	assert.Equal(t, "java.lang.String[][]", names.ReturnType(false).FullyQualifiedName())
	assert.Equal(t, []string{"final"}, names.Parameters()[0].Modifiers())

	circle := lib.Resolve("p.Shapes.Circle")
	require.False(t, circle.IsStub())
	assert.Equal(t, "p.Shapes$Circle", circle.BinaryName())
	assert.True(t, circle.IsA(shapes))
	assert.Same(t, shapes, circle.DeclaringClass())
	assert.Len(t, circle.Methods(false), 1)
	assert.Len(t, circle.MethodsByName("first", true), 1)
}

func TestParseEnum(t *testing.T) {
	lib := newLibrary()
	parse(t, lib, "p/Op.java", `
package p;

public enum Op implements Runnable {
    PLUS("+") {
        int apply(int a, int b) { return a + b; }
    },
    MINUS("-"),
    NOOP;

    private final String symbol;

    Op(String symbol) { this.symbol = symbol; }
    Op() { this(""); }

    public void run() {}
}
`)
	op := lib.Resolve("p.Op")
	assert.True(t, op.IsEnum())
	assert.True(t, op.IsAName("java.lang.Runnable"))

	constants := op.EnumConstants()
	require.Len(t, constants, 3)
	assert.Equal(t, []string{`"+"`}, constants[0].EnumConstantArguments())
	assert.Nil(t, constants[2].EnumConstantArguments())
	assert.True(t, constants[1].IsStatic())

	plus := constants[0].EnumConstantClass()
	require.NotNil(t, plus)
	assert.Equal(t, "p.Op$1", plus.BinaryName())
	assert.True(t, plus.IsA(op))
	assert.Len(t, plus.MethodsByName("apply", false), 1)
	assert.Nil(t, constants[1].EnumConstantClass())

	assert.Len(t, op.Constructors(), 2)
	require.NotNil(t, op.FieldByName("symbol"))
	assert.True(t, op.FieldByName("symbol").IsPrivate())
}

func TestParseRecord(t *testing.T) {
	lib := newLibrary()
	parse(t, lib, "p/Point.java", `
package p;

public record Point(int x, int y) implements Comparable<Point> {
    public Point {
        if (x < 0) throw new IllegalArgumentException();
    }

    public int compareTo(Point o) { return 0; }
}
`)
	point := lib.Resolve("p.Point")
	assert.True(t, point.IsRecord())
	assert.Equal(t, "java.lang.Record", point.SuperClass().FullyQualifiedName())
	assert.True(t, point.FieldByName("x").IsPrivate())

	var names []string
	for _, m := range point.Methods(false) {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"x", "y", "compareTo"}, names)

	ctors := point.Constructors()
	require.Len(t, ctors, 1)
	require.Len(t, ctors[0].Parameters(), 2)
	assert.Equal(t, "y", ctors[0].Parameters()[1].Name())
	assert.Contains(t, ctors[0].Body(), "IllegalArgumentException")
}

func TestParseAnnotations(t *testing.T) {
	lib := newLibrary()
	parse(t, lib, "p/Api.java", `
package p;

import java.lang.annotation.*;

@Retention(RetentionPolicy.RUNTIME)
@Target({ElementType.METHOD, ElementType.TYPE})
public @interface Api {
    String value() default "";
    int version() default 1;
    String[] tags();
}

@Api(value = "svc", version = 2)
@Deprecated
class Service {
    @Api("op") public void call(@Deprecated int id) {}
}
`)
	api := lib.Resolve("p.Api")
	assert.True(t, api.IsAnnotation())
	assert.Equal(t, java.FieldRef("RetentionPolicy.RUNTIME"), api.AnnotationByName("Retention").Evaluate("value"))
	assert.Equal(t, []any{java.FieldRef("ElementType.METHOD"), java.FieldRef("ElementType.TYPE")}, api.AnnotationByName("Target").Evaluate("value"))

	version := api.MethodsByName("version", false)[0]
	assert.Equal(t, "1", version.DefaultValue())
	assert.Empty(t, api.MethodsByName("tags", false)[0].DefaultValue())
	assert.Equal(t, "java.lang.String[]", api.MethodsByName("tags", false)[0].ReturnType(false).FullyQualifiedName())

	svc := lib.Resolve("p.Service")
	require.Len(t, svc.Annotations(), 2)
	ann := svc.AnnotationByName("Api")
	require.NotNil(t, ann)
	assert.Equal(t, "p.Api", ann.Type().FullyQualifiedName())
	assert.Equal(t, "svc", ann.Evaluate("value"))
	assert.Equal(t, int64(2), ann.Evaluate("version"))
	assert.NotNil(t, svc.AnnotationByName("java.lang.Deprecated"))

	call := svc.MethodsByName("call", false)[0]
	assert.Equal(t, "op", call.AnnotationByName("Api").Evaluate("value"))
	assert.Equal(t, []string{"public"}, call.Modifiers())
	assert.NotNil(t, call.Parameters()[0].AnnotationByName("Deprecated"))
}

func TestParseJavadoc(t *testing.T) {
	lib := newLibrary()
	parse(t, lib, "p/Doc.java", `package p;

/** A documented class. */
public class Doc {
    /**
     * Sums.
     * @param a first
     * @return the sum
     */
    public int sum(int a) { return a; }

    // not a doc comment
    int plain;

    /* not one either */
    int other;
}
`)
	doc := lib.Resolve("p.Doc")
	assert.Equal(t, "A documented class.", doc.Comment())
	assert.Equal(t, 4, doc.Line())

	sum := doc.MethodsByName("sum", false)[0]
	assert.Equal(t, "Sums.", sum.Comment())
	assert.Equal(t, []string{"a", "first"}, sum.TagsByName("param")[0].Parameters())
	ret, ok := sum.TagByName("return")
	require.True(t, ok)
	assert.Equal(t, "the sum", ret.Value)
	assert.Equal(t, 8, ret.Line)

	assert.Empty(t, doc.FieldByName("plain").Comment())
	assert.Empty(t, doc.FieldByName("other").Comment())
}

func TestParseError(t *testing.T) {
	lib := newLibrary()
	_, err := lib.AddSource(strings.NewReader("package p;\n\nclass A {\n    int x = ;\n}\n"), "p/A.java")
	require.Error(t, err)

	var perr *java.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "p/A.java", perr.Source)
	assert.Equal(t, 4, perr.Line)
	assert.True(t, lib.Resolve("p.A").IsStub(), "a malformed unit registers nothing")
}

func TestWithoutBodies(t *testing.T) {
	lib := newLibrary(WithoutBodies())
	parse(t, lib, "A.java", "class A { static { x(); } void m() { return; } }")

	a := lib.Resolve("A")
	assert.Empty(t, a.MethodsByName("m", false)[0].Body())
	assert.Empty(t, a.Initializers()[0].Body)
}

func TestSourceRootParsing(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("com/acme/Base.java", "package com.acme;\npublic class Base { public void hello() {} }\n")
	write("com/acme/Outer.java", "package com.acme;\npublic class Outer { public static class Inner extends Base {} }\n")

	lib := java.NewLibrary(java.WithSourceParser(New()), java.WithSourceRoot(dir))
	parse(t, lib, "app/Main.java", `
package app;

import com.acme.Outer;

class Main extends Outer.Inner {}
`)
	main := lib.Resolve("app.Main")
	require.Equal(t, "com.acme.Outer.Inner", main.SuperClass().FullyQualifiedName())

	hello := main.MethodsByName("hello", true)
	require.Len(t, hello, 1)
	assert.Equal(t, "com.acme.Base", hello[0].DeclaringClass().FullyQualifiedName())
	assert.False(t, lib.Resolve("com.acme.Base").IsStub())
}
