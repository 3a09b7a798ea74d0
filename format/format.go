// Package format renders a resolved class and its members for people
// and tools: JSON and YAML documents, or a Java-like outline.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/javamodel/java"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *java.Class) error
}

type Options struct {
	// Inherited adds the fields and methods of all supertypes.
	Inherited bool
	// ResolveGenerics rewrites inherited member types in terms of the
	// encoded class, e.g. List<String>.get returns String.
	ResolveGenerics bool
}

// Names lists the formats New accepts.
var Names = []string{"java", "json", "yaml"}

func New(name string, w io.Writer, opts Options) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w, opts), nil
	case "yaml", "yml":
		return NewYAMLEncoder(w, opts), nil
	case "java":
		return NewJavaEncoder(w, opts), nil
	}
	return nil, fmt.Errorf("unknown format %q, want one of %v", name, Names)
}

// encode marshals e's class and writes it to w.
func encode(w io.Writer, e encoding.TextMarshaler) error {
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
