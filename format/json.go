package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javamodel/java"
)

type JSONEncoder struct {
	w     io.Writer
	opts  Options
	class *java.Class
}

func NewJSONEncoder(w io.Writer, opts Options) *JSONEncoder {
	return &JSONEncoder{w: w, opts: opts}
}

func (e *JSONEncoder) Encode(class *java.Class) error {
	e.class = class
	return encode(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(buildClass(e.class, e.opts), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
