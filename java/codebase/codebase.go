// Package codebase keeps the semantic model of a project together with
// the documents open in an editor, and answers completion and hover
// queries against it.
package codebase

import (
	"bytes"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/javamodel/classpath"
	"github.com/dhamidi/javamodel/java"
	"github.com/dhamidi/javamodel/project"
	"github.com/hashicorp/go-multierror"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

type Codebase struct {
	mu      sync.RWMutex
	project *project.Project
	lib     *java.Library
	paths   []*classpath.Path
	files   map[string]*FileInfo
	log     commonlog.Logger
}

// FileInfo is the latest known state of one source file. Source is the
// last version that parsed; ParseErr is set when Content does not.
type FileInfo struct {
	Path     string
	Content  []byte
	Source   *java.Source
	ParseErr error
}

// New builds the Library for p. Classpath entries that fail to open are
// logged and skipped.
func New(p *project.Project) *Codebase {
	log := commonlog.GetLogger("javamodel.codebase")
	lib, cp, err := p.Library(java.WithLogger(log))
	if err != nil {
		log.Warningf("classpath: %s", err)
	}
	return &Codebase{
		project: p,
		lib:     lib,
		paths:   []*classpath.Path{cp},
		files:   make(map[string]*FileInfo),
		log:     log,
	}
}

// Open loads the project rooted at rootDir.
func Open(rootDir string) (*Codebase, error) {
	p, err := project.LoadFrom(rootDir)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

func (c *Codebase) Project() *project.Project { return c.project }
func (c *Codebase) Library() *java.Library    { return c.lib }

// AddClasspath puts more class directories or jars behind the project's
// own classpath.
func (c *Codebase) AddClasspath(entries ...string) error {
	cp, err := classpath.Open(entries...)
	for _, l := range cp.Loaders() {
		c.lib.AddClassLoader(l)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, cp)
	return err
}

func (c *Codebase) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var result *multierror.Error
	for _, cp := range c.paths {
		if err := cp.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	c.paths = nil
	return result.ErrorOrNil()
}

// ClasspathClasses lists the binary names of every class on the
// classpath, sorted.
func (c *Codebase) ClasspathClasses() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var (
		names  []string
		result *multierror.Error
	)
	seen := make(map[string]bool)
	for _, cp := range c.paths {
		list, err := cp.Classes()
		if err != nil {
			result = multierror.Append(result, err)
		}
		for _, n := range list {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names, result.ErrorOrNil()
}

// ScanAll parses and registers every source file of the project. Files
// are parsed concurrently; the ones that fail are reported together and
// the rest stay registered.
func (c *Codebase) ScanAll() error {
	paths, err := c.project.SourceFiles()
	if err != nil {
		return err
	}

	var (
		g      errgroup.Group
		mu     sync.Mutex
		result *multierror.Error
	)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		g.Go(func() error {
			if err := c.ScanFile(path); err != nil {
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	c.log.Infof("scanned %d files", len(paths))
	return result.ErrorOrNil()
}

// ScanFile reads path from disk and registers its classes. A file that
// is already known is updated instead, since registered classes cannot
// be replaced.
func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.mu.RLock()
	_, known := c.files[path]
	c.mu.RUnlock()
	if known {
		return c.UpdateFile(path, content)
	}

	src, err := c.lib.AddSource(bytes.NewReader(content), path)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = &FileInfo{Path: path, Content: content, Source: src, ParseErr: err}
	return err
}

// UpdateFile replaces the content of an open document. The new version
// is parsed on its own without registering it, so other files keep
// seeing the classes as they were scanned. When it fails to parse the
// previous Source is kept for queries.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	src, err := c.lib.ParseSource(bytes.NewReader(content), path)

	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.files[path]
	if f == nil {
		f = &FileInfo{Path: path}
		c.files[path] = f
	}
	f.Content = content
	f.ParseErr = err
	if err != nil {
		c.log.Debugf("%s", err)
		return err
	}
	c.lib.ReleaseSource(f.Source)
	f.Source = src
	return nil
}

// RemoveFile forgets an open document. Classes registered by ScanAll
// stay in the Library.
func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f := c.files[path]; f != nil {
		c.lib.ReleaseSource(f.Source)
		delete(c.files, path)
	}
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// FindClass returns the class with the given dotted or binary name, or
// nil when it is not known anywhere.
func (c *Codebase) FindClass(name string) *java.Class {
	cls := c.lib.Resolve(name)
	if cls.IsStub() {
		return nil
	}
	return cls
}

// resolve maps a name as written in src inside the class at path (a
// dotted nesting path such as "Outer.Inner") to a class. Classes of the
// document itself win over registered ones, which may be older.
func (c *Codebase) resolve(src *java.Source, path, name string) *java.Class {
	if src == nil {
		return c.FindClass(name)
	}
	var binary string
	if encl := c.enclosing(src, path); encl != nil {
		binary = encl.ResolveBinaryName(name)
	} else {
		binary = src.ResolveBinaryName(name)
	}
	if binary == "" {
		return c.FindClass(name)
	}
	if cls := src.ClassByBinaryName(binary); cls != nil {
		return cls
	}
	return c.FindClass(binary)
}

func (c *Codebase) enclosing(src *java.Source, path string) *java.Class {
	if path == "" {
		return nil
	}
	binary := strings.ReplaceAll(path, ".", "$")
	if pkg := src.PackageName(); pkg != "" {
		binary = pkg + "." + binary
	}
	return src.ClassByBinaryName(binary)
}
