package format

import (
	"bytes"
	"io"

	"github.com/dhamidi/javamodel/java"
	"gopkg.in/yaml.v3"
)

type YAMLEncoder struct {
	w     io.Writer
	opts  Options
	class *java.Class
}

func NewYAMLEncoder(w io.Writer, opts Options) *YAMLEncoder {
	return &YAMLEncoder{w: w, opts: opts}
}

func (e *YAMLEncoder) Encode(class *java.Class) error {
	e.class = class
	return encode(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(buildClass(e.class, e.opts)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
