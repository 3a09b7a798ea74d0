package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestLoadFromConfig(t *testing.T) {
	root := t.TempDir()
	write(t, root, ConfigFile, `
sourceRoots: [java, gen]
classpath:
  - lib/*.jar
  - classes
extensions: [java, jav]
`)
	write(t, root, "lib/a.jar", "")
	write(t, root, "lib/b.jar", "")

	p, err := LoadFrom(root)
	require.NoError(t, err)
	assert.True(t, p.Configured)
	assert.Equal(t, []string{filepath.Join(root, "java"), filepath.Join(root, "gen")}, p.SourceRoots)
	assert.Equal(t, []string{
		filepath.Join(root, "lib", "a.jar"),
		filepath.Join(root, "lib", "b.jar"),
		filepath.Join(root, "classes"),
	}, p.Classpath)
	assert.Equal(t, []string{".java", ".jav"}, p.Extensions)
}

func TestLoadFromConfigRejectsUnknownKeys(t *testing.T) {
	root := t.TempDir()
	write(t, root, ConfigFile, "sourceRoot: src\n")
	_, err := LoadFrom(root)
	assert.Error(t, err)
}

func TestDetectMavenLayout(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/main/java/com/acme/App.java", "package com.acme; class App {}")
	write(t, root, "src/test/java/com/acme/AppTest.java", "package com.acme; class AppTest {}")
	write(t, root, "lib/dep.jar", "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "target", "classes"), 0o755))

	p, err := LoadFrom(root)
	require.NoError(t, err)
	assert.False(t, p.Configured)
	assert.Equal(t, []string{
		filepath.Join(root, "src", "main", "java"),
		filepath.Join(root, "src", "test", "java"),
	}, p.SourceRoots)
	assert.Equal(t, []string{
		filepath.Join(root, "lib", "dep.jar"),
		filepath.Join(root, "target", "classes"),
	}, p.Classpath)

	files, err := p.SourceFiles()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDetectModuleLayout(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/shop/core/module-info.java", "module shop.core {}")
	write(t, root, "src/shop/core/shop/core/Item.java", "package shop.core; public class Item {}")
	write(t, root, "src/shop/web/module-info.java", "module shop.web { requires shop.core; }")
	write(t, root, "src/shop/notes/README", "")

	p, err := LoadFrom(root)
	require.NoError(t, err)
	require.Len(t, p.Modules, 2)
	assert.Equal(t, "core", p.Modules[0].Name)
	assert.Equal(t, "web", p.Modules[1].Name)
	assert.Equal(t, []string{
		filepath.Join(root, "src", "shop", "core"),
		filepath.Join(root, "src", "shop", "web"),
	}, p.SourceRoots)

	files, err := p.SourceFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "src", "shop", "core", "shop", "core", "Item.java")}, files)
}

func TestDetectFallsBackToRoot(t *testing.T) {
	root := t.TempDir()
	p, err := LoadFrom(root)
	require.NoError(t, err)
	assert.Equal(t, []string{root}, p.SourceRoots)
	assert.Empty(t, p.Classpath)

	_, err = LoadFrom(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestLibrary(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/com/acme/Base.java", "package com.acme;\npublic class Base { public int size() { return 0; } }\n")
	write(t, root, "src/com/acme/Child.java", "package com.acme;\npublic class Child extends Base {}\n")

	p, err := LoadFrom(root)
	require.NoError(t, err)
	lib, cp, err := p.Library()
	require.NoError(t, err)
	defer cp.Close()

	child := lib.Resolve("com.acme.Child")
	require.False(t, child.IsStub())
	base := child.SuperJavaClass()
	require.NotNil(t, base)
	assert.Equal(t, "com.acme.Base", base.FullyQualifiedName())
	assert.Len(t, child.MethodsByName("size", true), 1)
}
