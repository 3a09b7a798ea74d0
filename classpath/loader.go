// Package classpath reads compiled classes from directories and jar
// archives and reports them to a java.Library as class descriptors.
package classpath

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhamidi/javamodel/classfile"
	"github.com/dhamidi/javamodel/java"
	"github.com/hashicorp/go-multierror"
)

// Loader is a java.ClassLoader that can also list what it serves.
type Loader interface {
	java.ClassLoader
	// Classes returns the binary names of all classes, sorted.
	Classes() ([]string, error)
}

var (
	_ Loader = (*DirLoader)(nil)
	_ Loader = (*JarLoader)(nil)
	_ Loader = (*Path)(nil)
	_ Loader = Set(nil)
)

func classPath(binary string) string {
	return classfile.SourceToInternalName(binary) + ".class"
}

func binaryName(path string) string {
	return classfile.InternalToSourceName(strings.TrimSuffix(filepath.ToSlash(path), ".class"))
}

func notFound(binary string) error {
	return fmt.Errorf("%s: %w", binary, java.ErrClassNotFound)
}

func describe(r io.Reader, where string) (*java.ClassDescriptor, error) {
	cf, err := classfile.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", where, err)
	}
	return Describe(cf)
}

// ReadClassFile describes the single class file at path.
func ReadClassFile(path string) (*java.ClassDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return describe(f, path)
}

// Set serves a fixed collection of classes, keyed by binary name.
type Set map[string]*java.ClassDescriptor

func (s Set) Add(d *java.ClassDescriptor) { s[d.Name] = d }

func (s Set) Load(binary string) (*java.ClassDescriptor, error) {
	if d, ok := s[binary]; ok {
		return d, nil
	}
	return nil, notFound(binary)
}

func (s Set) Classes() ([]string, error) {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DirLoader serves classes from a directory of .class files laid out
// by package, such as a compiler output directory.
type DirLoader struct {
	dir string
}

func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{dir: dir}
}

func (l *DirLoader) String() string { return l.dir }

func (l *DirLoader) Load(binary string) (*java.ClassDescriptor, error) {
	path := filepath.Join(l.dir, filepath.FromSlash(classPath(binary)))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(binary)
		}
		return nil, err
	}
	defer f.Close()
	return describe(f, path)
}

func (l *DirLoader) Classes() ([]string, error) {
	var names []string
	err := filepath.WalkDir(l.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".class" || d.Name() == "module-info.class" {
			return nil
		}
		rel, err := filepath.Rel(l.dir, p)
		if err != nil {
			return err
		}
		names = append(names, binaryName(rel))
		return nil
	})
	sort.Strings(names)
	return names, err
}

// JarLoader serves classes from a jar archive. It keeps the archive open
// until Close.
type JarLoader struct {
	path    string
	zr      *zip.ReadCloser
	entries map[string]*zip.File
}

func OpenJar(path string) (*JarLoader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open jar: %w", err)
	}
	l := &JarLoader{path: path, zr: zr, entries: make(map[string]*zip.File)}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		// multi-release jars keep versioned copies under META-INF
		if strings.HasPrefix(f.Name, "META-INF/") || strings.HasSuffix(f.Name, "module-info.class") {
			continue
		}
		l.entries[f.Name] = f
	}
	log.Debugf("opened %s with %d classes", path, len(l.entries))
	return l, nil
}

func (l *JarLoader) String() string { return l.path }

func (l *JarLoader) Load(binary string) (*java.ClassDescriptor, error) {
	f := l.entries[classPath(binary)]
	if f == nil {
		return nil, notFound(binary)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s in %s: %w", f.Name, l.path, err)
	}
	defer rc.Close()
	return describe(rc, f.Name)
}

func (l *JarLoader) Classes() ([]string, error) {
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, binaryName(name))
	}
	sort.Strings(names)
	return names, nil
}

func (l *JarLoader) Close() error {
	return l.zr.Close()
}

// Path is an ordered list of loaders. The first loader that has a class
// wins.
type Path struct {
	loaders []Loader
	closers []io.Closer
}

// Open builds a Path from directories and .jar/.zip files. Entries that
// cannot be opened are skipped and reported together in the error; the
// returned Path is usable either way.
func Open(entries ...string) (*Path, error) {
	p := &Path{}
	var errs error
	for _, e := range entries {
		switch ext := strings.ToLower(filepath.Ext(e)); ext {
		case ".jar", ".zip":
			jar, err := OpenJar(e)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", e, err))
				continue
			}
			p.loaders = append(p.loaders, jar)
			p.closers = append(p.closers, jar)
		default:
			info, err := os.Stat(e)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			if !info.IsDir() {
				errs = multierror.Append(errs, fmt.Errorf("%s: not a directory or jar", e))
				continue
			}
			p.loaders = append(p.loaders, NewDirLoader(e))
		}
	}
	return p, errs
}

func (p *Path) Loaders() []Loader { return p.loaders }

func (p *Path) Load(binary string) (*java.ClassDescriptor, error) {
	for _, l := range p.loaders {
		d, err := l.Load(binary)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, java.ErrClassNotFound) {
			return nil, err
		}
	}
	return nil, notFound(binary)
}

// Classes lists the classes of all loaders, without duplicates.
func (p *Path) Classes() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	var errs error
	for _, l := range p.loaders {
		list, err := l.Classes()
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		for _, n := range list {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names, errs
}

func (p *Path) Close() error {
	var errs error
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}
