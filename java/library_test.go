package java

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioSingleField(t *testing.T) {
	lib := NewLibrary()
	build(t, lib, "p/A.java", func(b *Builder) {
		must(t, b.SetPackage("p"))
		class(t, b, &ClassDef{Name: "A", Modifiers: []string{"public"}}, func() {
			must(t, b.AddField(&FieldDef{Name: "x", Type: typ("int"), Modifiers: []string{"public"}}))
		})
	})

	a := lib.Resolve("p.A")
	require.False(t, a.IsStub())
	fields := a.Fields(false)
	require.Len(t, fields, 1)
	assert.Equal(t, "x", fields[0].Name())
	assert.Equal(t, "int", fields[0].Type().FullyQualifiedName())
	assert.True(t, fields[0].Type().IsPrimitive())
	assert.True(t, fields[0].DeclaringClass().Equal(a))
}

func TestScenarioSubclassAcrossSources(t *testing.T) {
	lib := NewLibrary()
	build(t, lib, "A.java", func(b *Builder) {
		class(t, b, &ClassDef{Name: "A"}, nil)
	})
	build(t, lib, "B.java", func(b *Builder) {
		class(t, b, &ClassDef{Name: "B"}, func() {
			must(t, b.SetSuperclass(typ("A")))
		})
	})

	a, b := lib.Resolve("A"), lib.Resolve("B")
	assert.True(t, b.IsAName("A"))
	assert.False(t, a.IsAName("B"))

	derived := a.DerivedClasses()
	require.Len(t, derived, 1)
	assert.Same(t, b, derived[0])
}

func TestScenarioInterface(t *testing.T) {
	lib := NewLibrary()
	build(t, lib, "A.java", func(b *Builder) {
		class(t, b, &ClassDef{Name: "I", Kind: ClassKindInterface}, nil)
		class(t, b, &ClassDef{Name: "A"}, func() {
			must(t, b.AddInterface(typ("I")))
		})
	})

	a, i := lib.Resolve("A"), lib.Resolve("I")
	assert.True(t, a.IsAName("I"))
	assert.False(t, i.IsAName("A"))
	assert.True(t, i.IsInterface())
	assert.Nil(t, i.SuperClass())
}

func TestScenarioSharedPackage(t *testing.T) {
	lib := NewLibrary()
	first := build(t, lib, "p/A.java", func(b *Builder) {
		must(t, b.SetPackage("p"))
		class(t, b, &ClassDef{Name: "A"}, nil)
	})
	second := build(t, lib, "p/B.java", func(b *Builder) {
		must(t, b.SetPackage("p"))
		class(t, b, &ClassDef{Name: "B"}, nil)
	})

	pkg := lib.Package("p")
	require.NotNil(t, pkg)
	var names []string
	for _, c := range pkg.Classes() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"A", "B"}, names)

	assert.True(t, first.Package().Equal(second.Package()))
	assert.Equal(t, "p", first.Package().Name())
	assert.Len(t, first.Package().Classes(), 2)

	// registering again must not duplicate anything
	must(t, lib.Register(first))
	assert.Len(t, pkg.Classes(), 2)
}

func TestResolveRegisteredClasses(t *testing.T) {
	lib := NewLibrary()
	build(t, lib, "pkg/Outer.java", func(b *Builder) {
		must(t, b.SetPackage("pkg"))
		class(t, b, &ClassDef{Name: "Outer"}, func() {
			class(t, b, &ClassDef{Name: "Inner", Modifiers: []string{"static"}}, func() {
				class(t, b, &ClassDef{Name: "Deeper"}, nil)
			})
		})
	})

	for _, c := range lib.Classes() {
		assert.Same(t, c, lib.Resolve(c.FullyQualifiedName()), c.FullyQualifiedName())
		assert.Same(t, c, lib.Resolve(c.BinaryName()), c.BinaryName())
		assert.Same(t, c, lib.Resolve(c.FullyQualifiedName()), "repeated lookup")
	}

	inner := lib.Resolve("pkg.Outer.Inner")
	assert.Equal(t, "pkg.Outer$Inner", inner.BinaryName())
	assert.Equal(t, "pkg.Outer.Inner", inner.FullyQualifiedName())
	assert.Equal(t, "Inner", inner.Name())
	assert.True(t, inner.IsInner())
	assert.Equal(t, "pkg.Outer", inner.DeclaringClass().FullyQualifiedName())
	assert.Same(t, lib.Resolve("pkg.Outer$Inner$Deeper"), lib.Resolve("pkg.Outer").NestedClassByName("Inner.Deeper"))
}

func TestStub(t *testing.T) {
	lib := NewLibrary()
	build(t, lib, "A.java", func(b *Builder) {
		class(t, b, &ClassDef{Name: "A"}, nil)
	})

	stub := lib.Resolve("x.Missing")
	require.NotNil(t, stub)
	assert.True(t, stub.IsStub())
	assert.Same(t, stub, lib.Resolve("x.Missing"))
	assert.Equal(t, "Missing", stub.Name())
	assert.Equal(t, "x", stub.PackageName())
	assert.False(t, lib.HasClassReference("x.Missing"))
	assert.NotContains(t, lib.Classes(), stub)

	a := lib.Resolve("A")
	assert.True(t, stub.IsA(stub))
	assert.False(t, stub.IsA(a))
	assert.False(t, a.IsA(stub))
	assert.Nil(t, stub.SuperClass())
	assert.Empty(t, stub.Methods(true))
}

func TestPrimitives(t *testing.T) {
	lib := NewLibrary()
	for _, name := range []string{"int", "boolean", "void", "double"} {
		c := lib.Resolve(name)
		assert.True(t, c.IsPrimitive(), name)
		assert.False(t, c.IsStub(), name)
		assert.Same(t, c, lib.Resolve(name))
	}
	assert.Same(t, lib.Resolve("int"), lib.Resolve("int[][]"))
}

func TestIsA(t *testing.T) {
	lib := NewLibrary()
	build(t, lib, "H.java", func(b *Builder) {
		class(t, b, &ClassDef{Name: "A"}, nil)
		class(t, b, &ClassDef{Name: "I", Kind: ClassKindInterface}, nil)
		class(t, b, &ClassDef{Name: "J", Kind: ClassKindInterface}, func() {
			must(t, b.AddInterface(typ("I")))
		})
		class(t, b, &ClassDef{Name: "B"}, func() {
			must(t, b.SetSuperclass(typ("A")))
			must(t, b.AddInterface(typ("J")))
		})
		class(t, b, &ClassDef{Name: "C"}, func() {
			must(t, b.SetSuperclass(typ("B")))
		})
	})

	cases := []struct {
		from, to string
		want     bool
	}{
		{"C", "C", true},
		{"C", "B", true},
		{"C", "A", true},
		{"C", "J", true},
		{"C", "I", true},
		{"B", "I", true},
		{"J", "I", true},
		{"A", "B", false},
		{"I", "J", false},
		{"J", "A", false},
		{"C", "java.lang.Object", true},
		{"J", "java.lang.Object", false},
	}
	for _, tc := range cases {
		t.Run(tc.from+" isA "+tc.to, func(t *testing.T) {
			assert.Equal(t, tc.want, lib.Resolve(tc.from).IsAName(tc.to))
		})
	}
}

func TestImplicitSuperclasses(t *testing.T) {
	lib := NewLibrary()
	build(t, lib, "p/K.java", func(b *Builder) {
		must(t, b.SetPackage("p"))
		class(t, b, &ClassDef{Name: "K"}, nil)
		class(t, b, &ClassDef{Name: "L"}, nil)
		class(t, b, &ClassDef{Name: "E", Kind: ClassKindEnum}, nil)
		class(t, b, &ClassDef{Name: "R", Kind: ClassKindRecord}, nil)
		class(t, b, &ClassDef{Name: "I", Kind: ClassKindInterface}, nil)
		class(t, b, &ClassDef{Name: "Ann", Kind: ClassKindAnnotation}, nil)
	})

	assert.Equal(t, "java.lang.Object", lib.Resolve("p.K").SuperClass().FullyQualifiedName())
	assert.Equal(t, "java.lang.Enum<p.E>", lib.Resolve("p.E").SuperClass().GenericFullyQualifiedName())
	assert.Equal(t, "java.lang.Record", lib.Resolve("p.R").SuperClass().FullyQualifiedName())
	assert.Nil(t, lib.Resolve("p.I").SuperClass())
	assert.Nil(t, lib.Resolve("p.Ann").SuperClass())

	ifaces := lib.Resolve("p.Ann").Interfaces()
	require.Len(t, ifaces, 1)
	assert.Equal(t, "java.lang.annotation.Annotation", ifaces[0].FullyQualifiedName())
	assert.Same(t, lib.Resolve("p.K").SuperClass(), lib.Resolve("p.L").SuperClass(),
		"the implicit Object type is shared")
}

func TestSelfSuperclassIsDropped(t *testing.T) {
	lib := NewLibrary()
	build(t, lib, "A.java", func(b *Builder) {
		class(t, b, &ClassDef{Name: "A"}, func() {
			must(t, b.SetSuperclass(typ("A")))
		})
	})

	a := lib.Resolve("A")
	assert.Equal(t, "java.lang.Object", a.SuperClass().FullyQualifiedName())
	assert.NotSame(t, a, a.SuperJavaClass())
	assert.True(t, a.IsA(a))
}

func TestSuperclassCycleIsCut(t *testing.T) {
	lib := NewLibrary()
	build(t, lib, "AB.java", func(b *Builder) {
		class(t, b, &ClassDef{Name: "A"}, func() {
			must(t, b.SetSuperclass(typ("B")))
		})
		class(t, b, &ClassDef{Name: "B"}, func() {
			must(t, b.SetSuperclass(typ("A")))
		})
	})

	a, b := lib.Resolve("A"), lib.Resolve("B")
	assert.Nil(t, a.SuperJavaClass())
	assert.Nil(t, b.SuperJavaClass())
	assert.False(t, a.IsA(b))
	assert.NotPanics(t, func() { a.Methods(true) })
}

func TestLoaderTier(t *testing.T) {
	loader := jdkLoader()
	lib := NewLibrary(WithClassLoader(loader))

	list := lib.Resolve("java.util.List")
	require.False(t, list.IsStub())
	assert.True(t, list.IsInterface())
	assert.Nil(t, list.Source())
	assert.Equal(t, "java.util.List<E>", list.GenericFullyQualifiedName())
	assert.True(t, list.IsAName("java.util.Collection"))

	entry := lib.Resolve("java.util.Map.Entry")
	assert.Equal(t, "java.util.Map$Entry", entry.BinaryName())
	assert.Equal(t, "Entry", entry.Name())
	assert.Same(t, entry, lib.Resolve("java.util.Map").NestedClassByName("Entry"))
	assert.Equal(t, "java.util.Map", entry.DeclaringClass().FullyQualifiedName())

	get := list.MethodsByName("get", false)
	require.Len(t, get, 1)
	assert.True(t, get[0].ReturnType(false).IsVariable())
	assert.Same(t, get[0].Declared(), get[0].Parameters()[0].DeclaringMember())
}

func TestLoaderIsCalledOnce(t *testing.T) {
	loader := jdkLoader()
	lib := NewLibrary(WithClassLoader(loader))

	var wg sync.WaitGroup
	results := make([]*Class, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = lib.Resolve("java.util.List")
		}(i)
	}
	wg.Wait()

	for _, c := range results {
		assert.Same(t, results[0], c)
	}
	assert.Equal(t, 1, loader.callCount("java.util.List"))
}

type failingLoader struct{}

func (failingLoader) Load(string) (*ClassDescriptor, error) {
	return nil, errors.New("corrupt archive")
}

func TestLoaderFailuresFallThrough(t *testing.T) {
	lib := NewLibrary(WithClassLoader(failingLoader{}), WithClassLoader(jdkLoader()))
	assert.False(t, lib.Resolve("java.lang.String").IsStub())
	assert.True(t, lib.Resolve("java.lang.Nothing").IsStub())
}

func TestSourceTierBeatsLoader(t *testing.T) {
	loader := newMapLoader(&ClassDescriptor{Name: "p.A"})
	lib := NewLibrary(WithClassLoader(loader))
	src := build(t, lib, "p/A.java", func(b *Builder) {
		must(t, b.SetPackage("p"))
		class(t, b, &ClassDef{Name: "A"}, nil)
	})

	a := lib.Resolve("p.A")
	assert.Same(t, src, a.Source())
	assert.Equal(t, 0, loader.callCount("p.A"))
}

func TestSourceRoots(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "p"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "p", "A.java"), []byte("A"), 0o644))

	var parses int
	var mu sync.Mutex
	parser := parserFunc(func(b *Builder, content []byte, url string) error {
		mu.Lock()
		parses++
		mu.Unlock()
		if err := b.BeginSource(url); err != nil {
			return err
		}
		must(t, b.SetPackage("p"))
		class(t, b, &ClassDef{Name: "A"}, func() {
			class(t, b, &ClassDef{Name: "B"}, nil)
		})
		class(t, b, &ClassDef{Name: "Helper"}, nil)
		_, err := b.EndSource()
		return err
	})
	lib := NewLibrary(WithSourceRoot(root), WithSourceParser(parser))

	b := lib.Resolve("p.A.B")
	require.False(t, b.IsStub())
	assert.Equal(t, "p.A$B", b.BinaryName())
	assert.Equal(t, filepath.Join(root, "p", "A.java"), b.Source().URL())

	helper := lib.Resolve("p.Helper")
	assert.False(t, helper.IsStub(), "every class of the parsed file is registered")
	assert.Same(t, b.Source(), helper.Source())
	assert.True(t, lib.Resolve("p.Other").IsStub())
	assert.Equal(t, 1, parses)
	assert.Len(t, lib.Sources(), 1)
}

func TestSourceRootsConcurrently(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "p"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "p", "A.java"), []byte("A"), 0o644))

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var parses atomic.Int32
	parser := parserFunc(func(b *Builder, content []byte, url string) error {
		parses.Add(1)
		once.Do(func() { close(started) })
		<-release
		steps := []func() error{
			func() error { return b.BeginSource(url) },
			func() error { return b.SetPackage("p") },
			func() error { return b.BeginClass(&ClassDef{Name: "A"}) },
			func() error { return b.BeginClass(&ClassDef{Name: "B"}) },
			b.EndClass,
			b.EndClass,
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		_, err := b.EndSource()
		return err
	})
	lib := NewLibrary(WithSourceRoot(root), WithSourceParser(parser))
	user := build(t, lib, "p/User.java", func(b *Builder) {
		must(t, b.SetPackage("p"))
		class(t, b, &ClassDef{Name: "User"}, nil)
	})

	names := []string{"p.A", "p.A$B", "p.A.B"}
	results := make([]*Class, 12)
	resolved := make([]string, 6)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = lib.Resolve("p.A")
	}()
	<-started
	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = lib.Resolve(names[i%len(names)])
		}(i)
	}
	for i := range resolved {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resolved[i] = user.ResolveBinaryName("A.B")
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, c := range results {
		require.NotNil(t, c)
		assert.False(t, c.IsStub(), "%s resolved to a stub", names[i%len(names)])
	}
	assert.Equal(t, int32(1), parses.Load())
	assert.Len(t, lib.Sources(), 2)
	for _, binary := range resolved {
		assert.Equal(t, "p.A$B", binary)
	}
	assert.Equal(t, "p.A$B", user.ResolveBinaryName("A.B"), "the memoised answer stays")
}

func TestAddSourceFolder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Good.java"), []byte("Good"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bad.java"), []byte("Bad"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("notes"), 0o644))

	parser := parserFunc(func(b *Builder, content []byte, url string) error {
		if string(content) == "Bad" {
			return &ParseError{Message: "unexpected token", Line: 1, Column: 1, Source: url}
		}
		if err := b.BeginSource(url); err != nil {
			return err
		}
		class(t, b, &ClassDef{Name: strings.TrimSpace(string(content))}, nil)
		_, err := b.EndSource()
		return err
	})
	lib := NewLibrary(WithSourceParser(parser))

	added, err := lib.AddSourceFolder(dir)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, filepath.Join(dir, "Bad.java"), perr.Source)

	require.Len(t, added, 1)
	assert.False(t, lib.Resolve("Good").IsStub())
	assert.Len(t, lib.Sources(), 1)
}

func TestAddSourceWithoutParser(t *testing.T) {
	lib := NewLibrary()
	_, err := lib.AddSource(strings.NewReader("class A {}"), "A.java")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDuplicateClassKeepsFirst(t *testing.T) {
	lib := NewLibrary()
	first := build(t, lib, "one/A.java", func(b *Builder) {
		class(t, b, &ClassDef{Name: "A"}, nil)
	})
	build(t, lib, "two/A.java", func(b *Builder) {
		class(t, b, &ClassDef{Name: "A"}, nil)
	})

	assert.Same(t, first, lib.Resolve("A").Source())
	assert.Len(t, lib.Classes(), 1)
}

func TestPackages(t *testing.T) {
	lib := NewLibrary()
	for _, pkg := range []string{"a", "a.b", "a.b.c", "a.d"} {
		build(t, lib, pkg+"/X.java", func(b *Builder) {
			must(t, b.SetPackage(pkg))
			class(t, b, &ClassDef{Name: "X"}, nil)
		})
	}

	var names []string
	for _, p := range lib.Package("a").SubPackages() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"a.b", "a.d"}, names)
	assert.Equal(t, "a.b", lib.Package("a.b.c").Parent().Name())
	assert.Nil(t, lib.Package("a").Parent())
	assert.Nil(t, lib.Package("zzz"))
	assert.Len(t, lib.Packages(), 4)
}
