package parser

import (
	"github.com/dhamidi/javamodel/java"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Receiver is the expression left of a member access, as in "items."
// or "items[0].".
type Receiver struct {
	// Name is the identifier before the dot.
	Name string

	// Type is the declared type of the variable called Name, nil when
	// no local, parameter or field of that name is visible. Array
	// accesses on the receiver are already stripped from Dims.
	Type *java.TypeDef

	// Class is the dotted path of the innermost class around the
	// position, e.g. "Outer.Inner", "" outside any class.
	Class string
}

// Offset converts a 0-based line and column into a byte offset,
// clamped to the content.
func Offset(content []byte, line, column int) int {
	off := 0
	for l := 0; l < line && off < len(content); off++ {
		if content[off] == '\n' {
			l++
		}
	}
	off += column
	if off > len(content) {
		off = len(content)
	}
	return off
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}

// ReceiverAt finds the receiver of the member access being typed at
// offset: the cursor sits after the dot, possibly after part of the
// member name.
func ReceiverAt(content []byte, offset int) (*Receiver, bool) {
	i := offset
	for i > 0 && isIdentByte(content[i-1]) {
		i--
	}
	for i > 0 && isSpace(content[i-1]) {
		i--
	}
	if i == 0 || content[i-1] != '.' {
		return nil, false
	}
	i--
	for i > 0 && isSpace(content[i-1]) {
		i--
	}

	accesses := 0
	for i > 0 && content[i-1] == ']' {
		depth := 0
		for i > 0 {
			i--
			if content[i] == ']' {
				depth++
			} else if content[i] == '[' {
				depth--
				if depth == 0 {
					break
				}
			}
		}
		accesses++
	}

	end := i
	for i > 0 && isIdentByte(content[i-1]) {
		i--
	}
	if i == end {
		return nil, false
	}
	r := &Receiver{Name: string(content[i:end])}

	tree, err := parseTree(content)
	if err != nil {
		return r, true
	}
	defer tree.Close()
	w := &walker{src: content}
	root := tree.RootNode()
	r.Class = w.enclosingClass(root, uint(i))
	if t := w.variableType(root, r.Name, uint(i)); t != nil {
		t.Dims -= accesses
		if t.Dims < 0 {
			t.Dims = 0
		}
		r.Type = t
	}
	return r, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// NameAt returns the type name under offset, qualified as written
// ("Map.Entry"), and the dotted path of the class around it.
func NameAt(content []byte, offset int) (name, class string, ok bool) {
	tree, err := parseTree(content)
	if err != nil {
		return "", "", false
	}
	defer tree.Close()
	w := &walker{src: content}
	root := tree.RootNode()

	n := root.NamedDescendantForByteRange(uint(offset), uint(offset))
	if n == nil {
		return "", "", false
	}
	switch n.Kind() {
	case "type_identifier":
		for p := n.Parent(); p != nil && p.Kind() == "scoped_type_identifier"; p = p.Parent() {
			n = p
		}
	case "identifier":
	default:
		return "", "", false
	}
	return w.typeName(n), w.enclosingClass(root, uint(offset)), true
}

func spans(n *sitter.Node, offset uint) bool {
	return n.StartByte() <= offset && offset <= n.EndByte()
}

func (w *walker) enclosingClass(root *sitter.Node, offset uint) string {
	path := ""
	n := root
	for {
		var next *sitter.Node
		for i := uint(0); i < n.NamedChildCount(); i++ {
			if c := n.NamedChild(i); spans(c, offset) {
				next = c
				break
			}
		}
		if next == nil {
			return path
		}
		if _, ok := classKinds[next.Kind()]; ok {
			name := w.text(next.ChildByFieldName("name"))
			if path == "" {
				path = name
			} else {
				path += "." + name
			}
		}
		n = next
	}
}

// variableType finds the declaration of name visible at offset. Locals
// shadow parameters, which shadow fields.
func (w *walker) variableType(root *sitter.Node, name string, offset uint) *java.TypeDef {
	var local, param, field *java.TypeDef
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		switch n.Kind() {
		case "local_variable_declaration":
			if n.EndByte() <= offset && n.Parent() != nil && spans(n.Parent(), offset) {
				if d := w.declarator(n, name); d != nil {
					local = w.localType(n, d)
				}
			}
		case "enhanced_for_statement":
			if spans(n, offset) && w.text(n.ChildByFieldName("name")) == name {
				local = w.declaredType(n.ChildByFieldName("type"), n.ChildByFieldName("dimensions"))
			}
		case "catch_clause":
			if spans(n, offset) {
				if p := childOfKind(n, "catch_formal_parameter"); p != nil && w.text(p.ChildByFieldName("name")) == name {
					if ct := childOfKind(p, "catch_type"); ct != nil {
						local = w.typeDef(firstType(ct))
					}
				}
			}
		case "formal_parameter", "spread_parameter":
			if owner := n.Parent(); owner != nil && owner.Parent() != nil && spans(owner.Parent(), offset) {
				for _, p := range w.parameters(owner) {
					if p.Name == name {
						param = p.Type
						if p.VarArgs && param != nil {
							param.Dims++
						}
					}
				}
			}
			return
		case "field_declaration", "constant_declaration":
			if d := w.declarator(n, name); d != nil {
				field = w.declaredType(n.ChildByFieldName("type"), d.ChildByFieldName("dimensions"))
			}
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(root)

	switch {
	case local != nil:
		return local
	case param != nil:
		return param
	}
	return field
}

func (w *walker) declarator(n *sitter.Node, name string) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if d := n.NamedChild(i); d.Kind() == "variable_declarator" && w.text(d.ChildByFieldName("name")) == name {
			return d
		}
	}
	return nil
}

// localType infers "var x = new T(...)" from the instance creation.
func (w *walker) localType(decl, d *sitter.Node) *java.TypeDef {
	t := decl.ChildByFieldName("type")
	if w.text(t) != "var" {
		return w.declaredType(t, d.ChildByFieldName("dimensions"))
	}
	if v := d.ChildByFieldName("value"); v != nil && v.Kind() == "object_creation_expression" {
		return w.typeDef(v.ChildByFieldName("type"))
	}
	return nil
}
