package main

import (
	"fmt"

	"github.com/dhamidi/javamodel/java"
	"github.com/dhamidi/javamodel/java/codebase"
)

// openCodebase loads the project at --root with the --classpath entries
// behind its own.
func openCodebase() (*codebase.Codebase, error) {
	cb, err := codebase.Open(rootDir)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	if len(extraPath) > 0 {
		if err := cb.AddClasspath(extraPath...); err != nil {
			cb.Close()
			return nil, fmt.Errorf("classpath: %w", err)
		}
	}
	return cb, nil
}

// findClass resolves name and fails for names that only have a stub.
func findClass(cb *codebase.Codebase, name string) (*java.Class, error) {
	cls := cb.FindClass(name)
	if cls == nil {
		return nil, fmt.Errorf("class %s not found", name)
	}
	return cls, nil
}

func origin(c *java.Class) string {
	switch {
	case c.IsStub():
		return "stub"
	case c.IsPrimitive():
		return "primitive"
	case c.Source() != nil:
		return c.Source().URL()
	default:
		return "classpath"
	}
}
