package java

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func typ(name string, args ...*TypeDef) *TypeDef {
	return &TypeDef{Name: name, Args: args}
}

func array(name string, dims int) *TypeDef {
	return &TypeDef{Name: name, Dims: dims}
}

func param(name string, t *TypeDef) *ParameterDef {
	return &ParameterDef{Name: name, Type: t}
}

func must(t *testing.T, err error) {
	t.Helper()
	require.NoError(t, err)
}

// build runs fn against a fresh Builder and registers the finished unit.
func build(t *testing.T, lib *Library, url string, fn func(b *Builder)) *Source {
	t.Helper()
	b := NewBuilder(lib)
	must(t, b.BeginSource(url))
	fn(b)
	src, err := b.EndSource()
	require.NoError(t, err)
	must(t, lib.Register(src))
	return src
}

func class(t *testing.T, b *Builder, def *ClassDef, body func()) {
	t.Helper()
	must(t, b.BeginClass(def))
	if body != nil {
		body()
	}
	must(t, b.EndClass())
}

func addMethod(t *testing.T, b *Builder, def *MethodDef, params ...*ParameterDef) {
	t.Helper()
	must(t, b.BeginMethod(def))
	for _, p := range params {
		must(t, b.AddParameter(p))
	}
	must(t, b.EndMethod())
}

type parserFunc func(b *Builder, content []byte, url string) error

func (f parserFunc) Parse(b *Builder, content []byte, url string) error {
	return f(b, content, url)
}

// mapLoader serves descriptors from a map and counts lookups.
type mapLoader struct {
	mu      sync.Mutex
	classes map[string]*ClassDescriptor
	calls   map[string]int
}

func newMapLoader(descs ...*ClassDescriptor) *mapLoader {
	l := &mapLoader{classes: map[string]*ClassDescriptor{}, calls: map[string]int{}}
	for _, d := range descs {
		l.classes[d.Name] = d
	}
	return l
}

func (l *mapLoader) Load(name string) (*ClassDescriptor, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls[name]++
	if d, ok := l.classes[name]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrClassNotFound)
}

func (l *mapLoader) callCount(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[name]
}

// jdkLoader serves a handful of JDK classes.
func jdkLoader() *mapLoader {
	e := &TypeDef{Name: "E", Variable: true}
	return newMapLoader(
		&ClassDescriptor{Name: "java.lang.Object", Modifiers: []string{"public"},
			Methods: []*MethodDescriptor{
				{MethodDef: MethodDef{Name: "toString", Modifiers: []string{"public"}, Returns: typ("java.lang.String")}},
				{MethodDef: MethodDef{Name: "hashCode", Modifiers: []string{"public", "native"}, Returns: typ("int")}},
			}},
		&ClassDescriptor{Name: "java.lang.String", Modifiers: []string{"public", "final"},
			Superclass: typ("java.lang.Object"),
			Interfaces: []*TypeDef{typ("java.lang.CharSequence"), typ("java.lang.Comparable", typ("java.lang.String"))}},
		&ClassDescriptor{Name: "java.lang.CharSequence", Kind: ClassKindInterface},
		&ClassDescriptor{Name: "java.lang.Comparable", Kind: ClassKindInterface,
			TypeParameters: []*TypeVariableDef{{Name: "T"}}},
		&ClassDescriptor{Name: "java.util.Collection", Kind: ClassKindInterface,
			TypeParameters: []*TypeVariableDef{{Name: "E"}},
			Methods: []*MethodDescriptor{
				{MethodDef: MethodDef{Name: "size", Modifiers: []string{"public", "abstract"}, Returns: typ("int")}},
			}},
		&ClassDescriptor{Name: "java.util.List", Kind: ClassKindInterface,
			TypeParameters: []*TypeVariableDef{{Name: "E"}},
			Interfaces:     []*TypeDef{typ("java.util.Collection", e)},
			Methods: []*MethodDescriptor{
				{MethodDef: MethodDef{Name: "get", Modifiers: []string{"public", "abstract"}, Returns: e},
					Parameters: []*ParameterDef{param("index", typ("int"))}},
				{MethodDef: MethodDef{Name: "add", Modifiers: []string{"public", "abstract"}, Returns: typ("boolean")},
					Parameters: []*ParameterDef{param("e", e)}},
			}},
		&ClassDescriptor{Name: "java.util.Map", Kind: ClassKindInterface,
			TypeParameters: []*TypeVariableDef{{Name: "K"}, {Name: "V"}},
			NestedClasses:  []string{"java.util.Map$Entry"}},
		&ClassDescriptor{Name: "java.util.Map$Entry", Kind: ClassKindInterface, Enclosing: "java.util.Map",
			TypeParameters: []*TypeVariableDef{{Name: "K"}, {Name: "V"}}},
	)
}
