package project

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

	"github.com/dhamidi/javamodel/classpath"
	"github.com/dhamidi/javamodel/java"
	"github.com/dhamidi/javamodel/java/parser"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the optional project file in the root
// directory.
const ConfigFile = "javamodel.yaml"

// Project is where a modelling session finds its classes: source roots
// laid out by package and classpath entries with compiled classes.
type Project struct {
	RootDir     string
	SourceRoots []string
	Classpath   []string
	Extensions  []string
	// Modules are the module source trees found under
	// src/<project>/<module>/module-info.java.
	Modules []*Module
	// Configured reports whether the layout came from ConfigFile.
	Configured bool
}

// Module is a single Java module within a project.
type Module struct {
	Name       string
	SrcDir     string
	ModuleInfo string
}

type config struct {
	SourceRoots []string `yaml:"sourceRoots"`
	Classpath   []string `yaml:"classpath"`
	Extensions  []string `yaml:"extensions"`
}

// Load reads the project in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads rootDir/javamodel.yaml, or detects a layout when there
// is none. Relative paths in the file are relative to rootDir; classpath
// entries may be globs such as "lib/*.jar".
func LoadFrom(rootDir string) (*Project, error) {
	p := &Project{RootDir: rootDir, Extensions: []string{".java"}}
	data, err := os.ReadFile(filepath.Join(rootDir, ConfigFile))
	switch {
	case err == nil:
		if err := p.configure(data); err != nil {
			return nil, fmt.Errorf("%s: %w", ConfigFile, err)
		}
		return p, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	if err := p.detect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) configure(data []byte) error {
	var cfg config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	p.Configured = true
	for _, r := range cfg.SourceRoots {
		p.SourceRoots = append(p.SourceRoots, p.abs(r))
	}
	for _, e := range cfg.Classpath {
		matches, err := filepath.Glob(p.abs(e))
		if err != nil {
			return fmt.Errorf("classpath %q: %w", e, err)
		}
		if matches == nil {
			// kept so that opening the classpath reports it
			matches = []string{p.abs(e)}
		}
		p.Classpath = append(p.Classpath, matches...)
	}
	if len(cfg.Extensions) > 0 {
		p.Extensions = nil
		for _, ext := range cfg.Extensions {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			p.Extensions = append(p.Extensions, ext)
		}
	}
	return nil
}

func (p *Project) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.RootDir, path)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// detect probes the usual layouts: Maven and Gradle source sets, module
// trees under src/<project>/<module>, a plain src directory and finally
// the root itself.
func (p *Project) detect() error {
	if !isDir(p.RootDir) {
		return fmt.Errorf("%s: not a directory", p.RootDir)
	}
	for _, dir := range []string{"src/main/java", "src/test/java"} {
		if d := p.abs(dir); isDir(d) {
			p.SourceRoots = append(p.SourceRoots, d)
		}
	}
	if len(p.SourceRoots) == 0 {
		modules, err := scanProjects(p.abs("src"))
		if err != nil {
			return err
		}
		p.Modules = modules
		for _, m := range modules {
			p.SourceRoots = append(p.SourceRoots, m.SrcDir)
		}
	}
	if len(p.SourceRoots) == 0 {
		if d := p.abs("src"); isDir(d) {
			p.SourceRoots = []string{d}
		} else {
			p.SourceRoots = []string{p.RootDir}
		}
	}

	jars, _ := filepath.Glob(p.abs("lib/*.jar"))
	p.Classpath = append(p.Classpath, jars...)
	for _, dir := range []string{"target/classes", "build/classes/java/main"} {
		if d := p.abs(dir); isDir(d) {
			p.Classpath = append(p.Classpath, d)
		}
	}
	return nil
}

func scanProjects(srcDir string) ([]*Module, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read src directory: %w", err)
	}
	var modules []*Module
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		found, err := scanModules(filepath.Join(srcDir, entry.Name()))
		if err != nil {
			continue
		}
		modules = append(modules, found...)
	}
	return modules, nil
}

func scanModules(projectDir string) ([]*Module, error) {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return nil, err
	}
	var modules []*Module
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		moduleDir := filepath.Join(projectDir, entry.Name())
		moduleInfo := filepath.Join(moduleDir, "module-info.java")
		if _, err := os.Stat(moduleInfo); err != nil {
			continue
		}
		modules = append(modules, &Module{
			Name:       entry.Name(),
			SrcDir:     moduleDir,
			ModuleInfo: moduleInfo,
		})
	}
	return modules, nil
}

// SourceFiles returns every file under the source roots with one of the
// project's extensions, sorted. module-info files declare no classes and
// are left out.
func (p *Project) SourceFiles() ([]string, error) {
	var files []string
	for _, root := range p.SourceRoots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !p.hasExtension(path) {
				return nil
			}
			if name := d.Name(); strings.HasPrefix(name, "module-info.") || strings.HasPrefix(name, "package-info.") {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan source files in %s: %w", root, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (p *Project) hasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range p.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Library builds a Library over the project's source roots and
// classpath, with the tree-sitter parser for on-demand parsing. Close
// the returned Path when done with the Library. Classpath entries that
// cannot be opened are reported in the error; the Library is usable
// regardless.
func (p *Project) Library(opts ...java.Option) (*java.Library, *classpath.Path, error) {
	cp, err := classpath.Open(p.Classpath...)
	all := []java.Option{
		java.WithSourceParser(parser.New()),
		java.WithSourceExtensions(p.Extensions...),
		java.WithClassLoader(cp),
	}
	for _, root := range p.SourceRoots {
		all = append(all, java.WithSourceRoot(root))
	}
	lib := java.NewLibrary(append(all, opts...)...)
	return lib, cp, err
}
