package java

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/singleflight"
)

// Library is the class registry of one modelling session. Names are
// looked up tier by tier: primitives, classes of sources added by the
// caller, classes parsed on demand from source roots, classes reported
// by class loaders and finally stubs for names found nowhere.
//
// A Library is safe for concurrent use. Classes are never removed, so a
// name that resolves to a non-stub class keeps resolving to it.
type Library struct {
	log commonlog.Logger

	mu        sync.RWMutex
	sources   []*Source
	context   map[string]*Class
	parsed    map[string]*Class
	reflected map[string]*Class
	stubs     map[string]*Class
	order     []*Class
	packages  map[string]bool
	files     map[string]bool
	missing   map[string]bool

	roots   []string
	exts    []string
	loaders []ClassLoader
	parser  SourceParser

	flight     singleflight.Group
	fileFlight singleflight.Group
	primitives map[string]*Class
	object     *Type
}

type Option func(*Library)

// WithSourceRoot adds a directory laid out by package, searched for
// "pkg/Outer.java" when a class is not otherwise known.
func WithSourceRoot(dir string) Option {
	return func(l *Library) { l.roots = append(l.roots, dir) }
}

// WithSourceExtensions replaces the extensions tried under source roots.
func WithSourceExtensions(exts ...string) Option {
	return func(l *Library) { l.exts = exts }
}

func WithClassLoader(loader ClassLoader) Option {
	return func(l *Library) { l.loaders = append(l.loaders, loader) }
}

func WithSourceParser(p SourceParser) Option {
	return func(l *Library) { l.parser = p }
}

func WithLogger(log commonlog.Logger) Option {
	return func(l *Library) { l.log = log }
}

func NewLibrary(opts ...Option) *Library {
	l := &Library{
		log:        commonlog.GetLogger("javamodel.library"),
		context:    make(map[string]*Class),
		parsed:     make(map[string]*Class),
		reflected:  make(map[string]*Class),
		stubs:      make(map[string]*Class),
		packages:   make(map[string]bool),
		files:      make(map[string]bool),
		missing:    make(map[string]bool),
		exts:       []string{".java"},
		primitives: make(map[string]*Class),
	}
	for _, opt := range opts {
		opt(l)
	}
	for name := range primitiveNames {
		l.primitives[name] = &Class{lib: l, sourceID: -1, name: name, binary: name, kind: ClassKindPrimitive}
	}
	l.object = newResolvedType(l, objectName, nil, 0)
	return l
}

// objectType is the shared java.lang.Object type used as the implicit
// superclass.
func (l *Library) objectType() *Type { return l.object }

func (l *Library) AddSourceRoot(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.roots = append(l.roots, dir)
	clear(l.missing)
}

func (l *Library) AddClassLoader(loader ClassLoader) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaders = append(l.loaders, loader)
	clear(l.missing)
}

func (l *Library) SetSourceParser(p SourceParser) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.parser = p
}

func (l *Library) newSource(url string) *Source {
	l.mu.Lock()
	defer l.mu.Unlock()
	src := &Source{lib: l, id: len(l.sources), url: url}
	l.sources = append(l.sources, src)
	return src
}

// ReleaseSource frees the slot of a Source that was built but never
// registered. Registered sources stay for the life of the Library.
func (l *Library) ReleaseSource(src *Source) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if src == nil || src.registered || src.id < 0 || src.id >= len(l.sources) {
		return
	}
	l.sources[src.id] = nil
}

func (l *Library) source(id int) *Source {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if id < 0 || id >= len(l.sources) {
		return nil
	}
	return l.sources[id]
}

// Register adds the classes of a Source built with this Library's
// Builder. Registering the same Source twice has no further effect, and
// a binary name that is already known keeps its first class.
func (l *Library) Register(src *Source) error {
	if src == nil || src.lib != l {
		return invalidState("source does not belong to this library")
	}
	if src.byBinary == nil {
		return invalidState("source %q was not finished", src.url)
	}
	l.register(src, l.context)
	return nil
}

func (l *Library) register(src *Source, tier map[string]*Class) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if src.registered {
		return
	}
	src.registered = true
	for _, c := range src.AllClasses() {
		if l.knownLocked(c.binary) {
			l.log.Debugf("class %s already registered, keeping the first one", c.FullyQualifiedName())
			continue
		}
		if c.superclass != nil && refersToItself(c) {
			l.log.Warningf("class %s extends itself, ignoring its superclass", c.FullyQualifiedName())
			c.superclass = nil
		}
		tier[c.binary] = c
		l.order = append(l.order, c)
	}
	if src.pkg != "" {
		l.packages[src.pkg] = true
	}
	clear(l.missing)
}

// refersToItself catches "class A extends A" before anything resolves.
func refersToItself(c *Class) bool {
	name := c.superclass.name
	return name == c.name || name == c.FullyQualifiedName() || name == c.binary
}

func (l *Library) knownLocked(binary string) bool {
	return l.context[binary] != nil || l.parsed[binary] != nil || l.reflected[binary] != nil
}

// AddSource parses one compilation unit and registers its classes.
func (l *Library) AddSource(r io.Reader, url string) (*Source, error) {
	src, err := l.ParseSource(r, url)
	if err != nil {
		return nil, err
	}
	l.register(src, l.context)
	return src, nil
}

// ParseSource parses one compilation unit without registering it. The
// unit resolves names against the Library but no lookup finds its
// classes; release it with ReleaseSource when done.
func (l *Library) ParseSource(r io.Reader, url string) (*Source, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return l.parseSource(content, url)
}

func (l *Library) AddSourceFile(path string) (*Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.AddSource(bytes.NewReader(content), path)
}

// AddSourceFolder adds every source file below dir. Files that fail to
// parse are skipped and reported together in the returned error.
func (l *Library) AddSourceFolder(dir string) ([]*Source, error) {
	var (
		added  []*Source
		result *multierror.Error
	)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result = multierror.Append(result, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !l.hasSourceExtension(path) {
			return nil
		}
		src, err := l.AddSourceFile(path)
		if err != nil {
			result = multierror.Append(result, err)
			return nil
		}
		added = append(added, src)
		return nil
	})
	if err != nil {
		result = multierror.Append(result, err)
	}
	l.log.Infof("added %d sources from %s", len(added), dir)
	return added, result.ErrorOrNil()
}

func (l *Library) hasSourceExtension(path string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, ext := range l.exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func (l *Library) parseSource(content []byte, url string) (*Source, error) {
	l.mu.RLock()
	parser := l.parser
	l.mu.RUnlock()
	if parser == nil {
		return nil, invalidState("no source parser configured for %s", url)
	}
	b := NewBuilder(l)
	if err := parser.Parse(b, content, url); err != nil {
		b.discard()
		return nil, err
	}
	src := b.Source()
	if src == nil {
		b.discard()
		return nil, invalidState("parser did not finish %s", url)
	}
	return src, nil
}

// Resolve returns the class with the given binary or dotted name. It
// never returns nil: names found nowhere yield a stub, and the same
// stub is returned for the same name afterwards.
func (l *Library) Resolve(name string) *Class {
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSuffix(name, "[]")
	}
	if c := l.primitives[name]; c != nil {
		return c
	}
	candidates := binaryCandidates(name)
	for _, candidate := range candidates {
		if c := l.lookupLoaded(candidate, false); c != nil {
			return c
		}
	}
	if c := l.lookupLoaded(name, true); c != nil {
		return c
	}
	for _, candidate := range candidates {
		if c := l.materialize(candidate); c != nil {
			return c
		}
	}
	return l.stub(name)
}

// TypeOf returns an unparameterised type for the named class, as used
// in signature queries.
func (l *Library) TypeOf(name string, dims int) *Type {
	return newResolvedType(l, l.Resolve(name).binary, nil, dims)
}

// HasClassReference reports whether binary names a class in some tier
// other than the stubs, loading it on demand.
func (l *Library) HasClassReference(binary string) bool {
	if l.primitives[binary] != nil {
		return true
	}
	if l.lookupLoaded(binary, false) != nil {
		return true
	}
	return l.materialize(binary) != nil
}

func (l *Library) lookupLoaded(binary string, includeStubs bool) *Class {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if c := l.context[binary]; c != nil {
		return c
	}
	if c := l.parsed[binary]; c != nil {
		return c
	}
	if c := l.reflected[binary]; c != nil {
		return c
	}
	if includeStubs {
		return l.stubs[binary]
	}
	return nil
}

// materialize loads binary from the source roots or the class loaders.
// Concurrent requests for the same name share one load.
func (l *Library) materialize(binary string) *Class {
	l.mu.RLock()
	missing := l.missing[binary]
	l.mu.RUnlock()
	if missing {
		return nil
	}
	v, _, _ := l.flight.Do(binary, func() (any, error) {
		if c := l.lookupLoaded(binary, false); c != nil {
			return c, nil
		}
		if c := l.loadFromSourceRoots(binary); c != nil {
			return c, nil
		}
		if c := l.loadFromLoaders(binary); c != nil {
			return c, nil
		}
		l.mu.Lock()
		l.missing[binary] = true
		l.mu.Unlock()
		return nil, nil
	})
	c, _ := v.(*Class)
	return c
}

func (l *Library) loadFromSourceRoots(binary string) *Class {
	l.mu.RLock()
	roots, exts, parser := l.roots, l.exts, l.parser
	l.mu.RUnlock()
	if parser == nil || len(roots) == 0 {
		return nil
	}
	top := binary[:indexOrLen(binary)]
	pkg, outer := "", top
	if i := strings.LastIndexByte(top, '.'); i >= 0 {
		pkg, outer = top[:i], top[i+1:]
	}
	for _, root := range roots {
		for _, ext := range exts {
			path := filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")), outer+ext)
			l.parseRootFile(path, binary)
			if c := l.lookupLoaded(binary, false); c != nil {
				return c
			}
		}
	}
	return nil
}

// parseRootFile parses and registers a file under a source root at most
// once. Callers asking for any class of the file while it is being
// parsed wait for that parse to finish.
func (l *Library) parseRootFile(path, binary string) {
	if l.fileDone(path) {
		return
	}
	l.fileFlight.Do(path, func() (any, error) {
		if l.fileDone(path) {
			return nil, nil
		}
		defer func() {
			l.mu.Lock()
			l.files[path] = true
			l.mu.Unlock()
		}()
		content, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				l.log.Warningf("read %s: %s", path, err)
			}
			return nil, nil
		}
		src, err := l.parseSource(content, path)
		if err != nil {
			l.log.Warningf("parse %s: %s", path, err)
			return nil, nil
		}
		l.log.Debugf("parsed %s for %s", path, binary)
		l.register(src, l.parsed)
		return nil, nil
	})
}

func (l *Library) fileDone(path string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.files[path]
}

func (l *Library) loadFromLoaders(binary string) *Class {
	l.mu.RLock()
	loaders := l.loaders
	l.mu.RUnlock()
	for _, loader := range loaders {
		desc, err := loader.Load(binary)
		if err != nil {
			if !errors.Is(err, ErrClassNotFound) {
				l.log.Warningf("load %s: %s", binary, err)
			}
			continue
		}
		c := l.classFromDescriptor(desc)
		l.mu.Lock()
		if existing := l.reflected[c.binary]; existing != nil {
			l.mu.Unlock()
			return existing
		}
		l.reflected[c.binary] = c
		l.order = append(l.order, c)
		if c.pkg != "" {
			l.packages[c.pkg] = true
		}
		l.mu.Unlock()
		return c
	}
	return nil
}

func (l *Library) stub(name string) *Class {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c := l.stubs[name]; c != nil {
		return c
	}
	pkg, simple := splitBinaryName(name)
	c := &Class{lib: l, sourceID: -1, pkg: pkg, name: simple, binary: name, kind: ClassKindClass, stub: true}
	l.log.Debugf("no class named %s, using a stub", name)
	l.stubs[name] = c
	return c
}

// Classes returns the registered and loaded classes in the order they
// became known. Stubs are not included.
func (l *Library) Classes() []*Class {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*Class(nil), l.order...)
}

// Sources returns the registered sources.
func (l *Library) Sources() []*Source {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*Source
	for _, src := range l.sources {
		if src != nil && src.registered {
			out = append(out, src)
		}
	}
	return out
}

// Packages returns the known packages sorted by name.
func (l *Library) Packages() []*Package {
	l.mu.RLock()
	names := make([]string, 0, len(l.packages))
	for name := range l.packages {
		names = append(names, name)
	}
	l.mu.RUnlock()
	sort.Strings(names)
	out := make([]*Package, len(names))
	for i, name := range names {
		out[i] = &Package{lib: l, name: name}
	}
	return out
}

// Package returns nil for a package with no known classes.
func (l *Library) Package(name string) *Package {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.packages[name] {
		return nil
	}
	return &Package{lib: l, name: name}
}
