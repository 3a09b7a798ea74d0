package parser

import (
	"strings"

	"github.com/dhamidi/javamodel/java"
	"github.com/tliron/commonlog"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// walker replays one syntax tree onto a Builder.
type walker struct {
	b          *java.Builder
	src        []byte
	skipBodies bool
	log        commonlog.Logger

	// record components of the innermost record being walked, for
	// compact constructors
	components []*java.ParameterDef
}

var classKinds = map[string]java.ClassKind{
	"class_declaration":           java.ClassKindClass,
	"interface_declaration":       java.ClassKindInterface,
	"enum_declaration":            java.ClassKindEnum,
	"record_declaration":          java.ClassKindRecord,
	"annotation_type_declaration": java.ClassKindAnnotation,
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(w.src)
}

func line(n *sitter.Node) int {
	return int(n.StartPosition().Row) + 1
}

// compact removes all whitespace, for dotted names split over lines.
func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func isComment(n *sitter.Node) bool {
	return n.Kind() == "line_comment" || n.Kind() == "block_comment"
}

func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		if c := n.Child(i); c.Kind() == kind {
			return c
		}
	}
	return nil
}

func (w *walker) program(root *sitter.Node) error {
	for i := uint(0); i < root.ChildCount(); i++ {
		n := root.Child(i)
		switch n.Kind() {
		case "package_declaration":
			for j := uint(0); j < n.NamedChildCount(); j++ {
				c := n.NamedChild(j)
				if c.Kind() == "identifier" || c.Kind() == "scoped_identifier" {
					if err := w.b.SetPackage(compact(w.text(c))); err != nil {
						return err
					}
					break
				}
			}
		case "import_declaration":
			if err := w.b.AddImport(w.importText(n)); err != nil {
				return err
			}
		default:
			if err := w.member(n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) importText(n *sitter.Node) string {
	var sb strings.Builder
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Kind() {
		case "static":
			sb.WriteString("static ")
		case "identifier", "scoped_identifier":
			sb.WriteString(compact(w.text(c)))
		case "asterisk":
			sb.WriteString(".*")
		}
	}
	return sb.String()
}

// member dispatches one declaration found in a compilation unit or a
// class body. Comments and stray semicolons are skipped.
func (w *walker) member(n *sitter.Node) error {
	kind := n.Kind()
	if ck, ok := classKinds[kind]; ok {
		return w.class(n, ck)
	}
	switch kind {
	case "field_declaration", "constant_declaration":
		return w.field(n)
	case "method_declaration", "annotation_type_element_declaration":
		return w.method(n)
	case "constructor_declaration", "compact_constructor_declaration":
		return w.constructor(n)
	case "static_initializer":
		return w.b.AddInitializer(true, w.body(childOfKind(n, "block")))
	case "block":
		return w.b.AddInitializer(false, w.body(n))
	}
	return nil
}

func (w *walker) body(n *sitter.Node) string {
	if n == nil || w.skipBodies {
		return ""
	}
	return w.text(n)
}

// doc attaches the doc comment directly above n, if any. Line comments
// in between are skipped.
func (w *walker) doc(n *sitter.Node) error {
	prev := n.PrevSibling()
	for prev != nil && prev.Kind() == "line_comment" {
		prev = prev.PrevSibling()
	}
	if prev == nil || prev.Kind() != "block_comment" {
		return nil
	}
	raw := w.text(prev)
	if !strings.HasPrefix(raw, "/**") || raw == "/**/" {
		return nil
	}
	return w.b.AddJavadoc(raw, line(prev))
}

// header attaches the doc comment and annotations of a declaration and
// returns its keyword modifiers.
func (w *walker) header(n *sitter.Node) ([]string, error) {
	if err := w.doc(n); err != nil {
		return nil, err
	}
	mods, anns := w.modifiers(n)
	for _, a := range anns {
		if err := w.b.AddAnnotation(a); err != nil {
			return nil, err
		}
	}
	return mods, nil
}

func (w *walker) modifiers(n *sitter.Node) ([]string, []*java.AnnotationDef) {
	m := childOfKind(n, "modifiers")
	if m == nil {
		return nil, nil
	}
	var mods []string
	var anns []*java.AnnotationDef
	for i := uint(0); i < m.ChildCount(); i++ {
		c := m.Child(i)
		switch {
		case c.Kind() == "marker_annotation" || c.Kind() == "annotation":
			anns = append(anns, w.annotation(c))
		case isComment(c):
		default:
			mods = append(mods, w.text(c))
		}
	}
	return mods, anns
}

func (w *walker) annotation(n *sitter.Node) *java.AnnotationDef {
	def := &java.AnnotationDef{Type: &java.TypeDef{Name: compact(w.text(n.ChildByFieldName("name")))}}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return def
	}
	for i := uint(0); i < args.NamedChildCount(); i++ {
		c := args.NamedChild(i)
		switch {
		case isComment(c):
		case c.Kind() == "element_value_pair":
			def.Values = append(def.Values, java.AnnotationValue{
				Name: w.text(c.ChildByFieldName("key")),
				Expr: w.text(c.ChildByFieldName("value")),
			})
		default:
			def.Values = append(def.Values, java.AnnotationValue{Name: "value", Expr: w.text(c)})
		}
	}
	return def
}

func (w *walker) class(n *sitter.Node, kind java.ClassKind) error {
	mods, err := w.header(n)
	if err != nil {
		return err
	}
	def := &java.ClassDef{
		Name:           w.text(n.ChildByFieldName("name")),
		Kind:           kind,
		Modifiers:      mods,
		TypeParameters: w.typeParameters(n.ChildByFieldName("type_parameters")),
		Line:           line(n),
	}
	if err := w.b.BeginClass(def); err != nil {
		return err
	}
	w.log.Debugf("%s %s at line %d", kind, def.Name, def.Line)

	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Kind() {
		case "superclass":
			if t := firstType(c); t != nil {
				if err := w.b.SetSuperclass(w.typeDef(t)); err != nil {
					return err
				}
			}
		case "super_interfaces", "extends_interfaces":
			list := childOfKind(c, "type_list")
			if list == nil {
				continue
			}
			for j := uint(0); j < list.NamedChildCount(); j++ {
				if t := list.NamedChild(j); isType(t) {
					if err := w.b.AddInterface(w.typeDef(t)); err != nil {
						return err
					}
				}
			}
		}
	}

	saved := w.components
	w.components = nil
	defer func() { w.components = saved }()
	if kind == java.ClassKindRecord {
		w.components = w.parameters(n.ChildByFieldName("parameters"))
		for _, p := range w.components {
			if err := w.b.AddRecordComponent(p); err != nil {
				return err
			}
		}
	}

	if err := w.classBody(n.ChildByFieldName("body")); err != nil {
		return err
	}
	return w.b.EndClass()
}

func (w *walker) classBody(body *sitter.Node) error {
	if body == nil {
		return nil
	}
	for i := uint(0); i < body.ChildCount(); i++ {
		c := body.Child(i)
		var err error
		switch c.Kind() {
		case "enum_constant":
			err = w.enumConstant(c)
		case "enum_body_declarations":
			err = w.classBody(c)
		default:
			err = w.member(c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) enumConstant(n *sitter.Node) error {
	if _, err := w.header(n); err != nil {
		return err
	}
	def := &java.FieldDef{
		Name:         w.text(n.ChildByFieldName("name")),
		EnumConstant: true,
		Line:         line(n),
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		def.Arguments = []string{}
		for i := uint(0); i < args.NamedChildCount(); i++ {
			if a := args.NamedChild(i); !isComment(a) {
				def.Arguments = append(def.Arguments, w.text(a))
			}
		}
	}
	if err := w.b.AddField(def); err != nil {
		return err
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	if err := w.b.BeginEnumConstantBody(); err != nil {
		return err
	}
	if err := w.classBody(body); err != nil {
		return err
	}
	return w.b.EndClass()
}

// field declares every variable of one field declaration; each gets the
// declaration's doc comment and annotations.
func (w *walker) field(n *sitter.Node) error {
	t := n.ChildByFieldName("type")
	for i := uint(0); i < n.ChildCount(); i++ {
		d := n.Child(i)
		if d.Kind() != "variable_declarator" {
			continue
		}
		mods, err := w.header(n)
		if err != nil {
			return err
		}
		def := &java.FieldDef{
			Name:        w.text(d.ChildByFieldName("name")),
			Type:        w.declaredType(t, d.ChildByFieldName("dimensions")),
			Modifiers:   mods,
			Initializer: w.text(d.ChildByFieldName("value")),
			Line:        line(d),
		}
		if err := w.b.AddField(def); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) method(n *sitter.Node) error {
	mods, err := w.header(n)
	if err != nil {
		return err
	}
	def := &java.MethodDef{
		Name:           w.text(n.ChildByFieldName("name")),
		Modifiers:      mods,
		TypeParameters: w.typeParameters(n.ChildByFieldName("type_parameters")),
		Returns:        w.declaredType(n.ChildByFieldName("type"), n.ChildByFieldName("dimensions")),
		Line:           line(n),
	}
	if n.Kind() == "annotation_type_element_declaration" {
		def.DefaultValue = w.text(n.ChildByFieldName("value"))
	}
	if err := w.b.BeginMethod(def); err != nil {
		return err
	}
	return w.executable(n, w.parameters(n.ChildByFieldName("parameters")))
}

func (w *walker) constructor(n *sitter.Node) error {
	mods, err := w.header(n)
	if err != nil {
		return err
	}
	def := &java.MethodDef{
		Name:           w.text(n.ChildByFieldName("name")),
		Modifiers:      mods,
		TypeParameters: w.typeParameters(n.ChildByFieldName("type_parameters")),
		Line:           line(n),
	}
	if err := w.b.BeginConstructor(def); err != nil {
		return err
	}
	params := w.components
	if n.Kind() == "constructor_declaration" {
		params = w.parameters(n.ChildByFieldName("parameters"))
	}
	return w.executable(n, params)
}

// executable finishes the method or constructor the Builder has open.
func (w *walker) executable(n *sitter.Node, params []*java.ParameterDef) error {
	for _, p := range params {
		if err := w.b.AddParameter(p); err != nil {
			return err
		}
	}
	if throws := childOfKind(n, "throws"); throws != nil {
		for i := uint(0); i < throws.NamedChildCount(); i++ {
			if t := throws.NamedChild(i); isType(t) {
				if err := w.b.AddThrows(w.typeDef(t)); err != nil {
					return err
				}
			}
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		if err := w.b.SetMethodBody(w.body(body)); err != nil {
			return err
		}
	}
	return w.b.EndMethod()
}

func (w *walker) parameters(n *sitter.Node) []*java.ParameterDef {
	if n == nil {
		return nil
	}
	var out []*java.ParameterDef
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		switch c.Kind() {
		case "formal_parameter":
			mods, anns := w.modifiers(c)
			out = append(out, &java.ParameterDef{
				Name:        w.text(c.ChildByFieldName("name")),
				Type:        w.declaredType(c.ChildByFieldName("type"), c.ChildByFieldName("dimensions")),
				Modifiers:   mods,
				Annotations: anns,
			})
		case "spread_parameter":
			mods, anns := w.modifiers(c)
			p := &java.ParameterDef{
				Type:        w.typeDef(firstType(c)),
				VarArgs:     true,
				Modifiers:   mods,
				Annotations: anns,
			}
			if d := childOfKind(c, "variable_declarator"); d != nil {
				p.Name = w.text(d.ChildByFieldName("name"))
				p.Type = w.declaredType(firstType(c), d.ChildByFieldName("dimensions"))
			}
			out = append(out, p)
		}
	}
	return out
}
