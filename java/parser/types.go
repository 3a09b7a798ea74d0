package parser

import (
	"strings"

	"github.com/dhamidi/javamodel/java"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

var typeKinds = map[string]bool{
	"type_identifier":        true,
	"scoped_type_identifier": true,
	"generic_type":           true,
	"array_type":             true,
	"annotated_type":         true,
	"integral_type":          true,
	"floating_point_type":    true,
	"boolean_type":           true,
	"void_type":              true,
	"wildcard":               true,
}

func isType(n *sitter.Node) bool {
	return n != nil && typeKinds[n.Kind()]
}

func firstType(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); isType(c) {
			return c
		}
	}
	return nil
}

// dimensions counts the brackets of a dimensions node's text.
func dimensions(text string) int {
	return strings.Count(text, "[")
}

// declaredType is the type of a declaration whose name may carry
// C-style brackets, as in "int x[]".
func (w *walker) declaredType(t, dims *sitter.Node) *java.TypeDef {
	d := w.typeDef(t)
	if d != nil && dims != nil {
		d.Dims += dimensions(w.text(dims))
	}
	return d
}

func (w *walker) typeDef(n *sitter.Node) *java.TypeDef {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "generic_type":
		d := &java.TypeDef{}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			c := n.NamedChild(i)
			switch c.Kind() {
			case "type_identifier", "scoped_type_identifier":
				d.Name = w.typeName(c)
			case "type_arguments":
				for j := uint(0); j < c.NamedChildCount(); j++ {
					if a := c.NamedChild(j); isType(a) {
						d.Args = append(d.Args, w.typeDef(a))
					}
				}
			}
		}
		return d
	case "array_type":
		d := w.typeDef(n.ChildByFieldName("element"))
		if d == nil {
			return nil
		}
		d.Dims += dimensions(w.text(n.ChildByFieldName("dimensions")))
		return d
	case "annotated_type":
		var last *sitter.Node
		for i := uint(0); i < n.NamedChildCount(); i++ {
			if c := n.NamedChild(i); isType(c) {
				last = c
			}
		}
		return w.typeDef(last)
	case "wildcard":
		kind := java.WildcardUnbounded
		var bound *java.TypeDef
		for i := uint(0); i < n.ChildCount(); i++ {
			c := n.Child(i)
			switch {
			case c.Kind() == "extends":
				kind = java.WildcardExtends
			case c.Kind() == "super":
				kind = java.WildcardSuper
			case isType(c):
				bound = w.typeDef(c)
			}
		}
		if bound == nil {
			kind = java.WildcardUnbounded
		}
		return java.Wildcard(kind, bound)
	case "scoped_type_identifier":
		return &java.TypeDef{Name: w.typeName(n)}
	}
	return &java.TypeDef{Name: compact(w.text(n))}
}

// typeName renders a possibly qualified type name without type
// arguments or annotations: "Outer<String>.Inner" becomes "Outer.Inner".
func (w *walker) typeName(n *sitter.Node) string {
	switch n.Kind() {
	case "type_identifier", "identifier":
		return w.text(n)
	case "generic_type":
		for i := uint(0); i < n.NamedChildCount(); i++ {
			if c := n.NamedChild(i); c.Kind() == "type_identifier" || c.Kind() == "scoped_type_identifier" {
				return w.typeName(c)
			}
		}
		return ""
	case "scoped_type_identifier":
		var parts []string
		for i := uint(0); i < n.NamedChildCount(); i++ {
			c := n.NamedChild(i)
			switch c.Kind() {
			case "type_identifier", "scoped_type_identifier", "generic_type":
				parts = append(parts, w.typeName(c))
			}
		}
		return strings.Join(parts, ".")
	}
	return compact(w.text(n))
}

func (w *walker) typeParameters(n *sitter.Node) []*java.TypeVariableDef {
	if n == nil {
		return nil
	}
	var out []*java.TypeVariableDef
	for i := uint(0); i < n.NamedChildCount(); i++ {
		p := n.NamedChild(i)
		if p.Kind() != "type_parameter" {
			continue
		}
		def := &java.TypeVariableDef{}
		for j := uint(0); j < p.NamedChildCount(); j++ {
			c := p.NamedChild(j)
			switch c.Kind() {
			case "type_identifier", "identifier":
				def.Name = w.text(c)
			case "type_bound":
				for k := uint(0); k < c.NamedChildCount(); k++ {
					if b := c.NamedChild(k); isType(b) {
						def.Bounds = append(def.Bounds, w.typeDef(b))
					}
				}
			}
		}
		out = append(out, def)
	}
	return out
}
