package java

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotations(t *testing.T) {
	lib := NewLibrary()
	build(t, lib, "p/A.java", func(b *Builder) {
		must(t, b.SetPackage("p"))
		must(t, b.AddAnnotation(&AnnotationDef{Type: typ("SuppressWarnings"), Values: []AnnotationValue{{Name: "value", Expr: `"unchecked"`}}}))
		must(t, b.AddAnnotation(&AnnotationDef{Type: typ("Target"), Values: []AnnotationValue{{Name: "value", Expr: "{ElementType.TYPE, ElementType.METHOD}"}}}))
		class(t, b, &ClassDef{Name: "A"}, func() {
			must(t, b.AddAnnotation(&AnnotationDef{Type: typ("Size"), Values: []AnnotationValue{
				{Name: "max", Expr: "10"},
				{Name: "min", Expr: "0x1F"},
				{Name: "type", Expr: "String.class"},
				{Name: "ratio", Expr: "1.5f"},
				{Name: "flag", Expr: "true"},
				{Name: "sep", Expr: "','"},
				{Name: "neg", Expr: "-3L"},
			}}))
			must(t, b.AddField(&FieldDef{Name: "n", Type: typ("int")}))
			must(t, b.AddAnnotation(&AnnotationDef{Type: typ("Override")}))
			addMethod(t, b, &MethodDef{Name: "toString", Returns: typ("String")},
				&ParameterDef{Name: "unused", Type: typ("int"), Annotations: []*AnnotationDef{{Type: typ("Deprecated")}}})
		})
	})
	a := lib.Resolve("p.A")

	require.Len(t, a.Annotations(), 2)
	sw := a.AnnotationByName("SuppressWarnings")
	require.NotNil(t, sw)
	assert.Equal(t, "java.lang.SuppressWarnings", sw.Type().FullyQualifiedName())
	assert.Equal(t, "unchecked", sw.Evaluate("value"))
	assert.Same(t, sw, a.AnnotationByName("java.lang.SuppressWarnings"))
	assert.Nil(t, sw.Evaluate("missing"))

	target := a.AnnotationByName("Target")
	assert.Equal(t, []any{FieldRef("ElementType.TYPE"), FieldRef("ElementType.METHOD")}, target.Evaluate("value"))

	size := a.FieldByName("n").AnnotationByName("Size")
	require.NotNil(t, size)
	assert.Equal(t, int64(10), size.Evaluate("max"))
	assert.Equal(t, int64(31), size.Evaluate("min"))
	assert.Equal(t, 1.5, size.Evaluate("ratio"))
	assert.Equal(t, true, size.Evaluate("flag"))
	assert.Equal(t, ',', size.Evaluate("sep"))
	assert.Equal(t, int64(-3), size.Evaluate("neg"))
	lit, ok := size.Evaluate("type").(*Type)
	require.True(t, ok)
	assert.Equal(t, "java.lang.String", lit.FullyQualifiedName())
	raw, ok := size.Value("min")
	assert.True(t, ok)
	assert.Equal(t, "0x1F", raw)

	m := a.MethodsByName("toString", false)[0]
	assert.NotNil(t, m.AnnotationByName("Override"))
	assert.Nil(t, a.FieldByName("n").AnnotationByName("Override"))
	assert.NotNil(t, m.Parameters()[0].AnnotationByName("Deprecated"))
	assert.Equal(t, "@java.lang.Override", m.Annotations()[0].String())
}

func TestEvaluateLiteral(t *testing.T) {
	cases := []struct {
		expr string
		want any
	}{
		{"0", int64(0)},
		{"017", int64(15)},
		{"0b101", int64(5)},
		{"1_000", int64(1000)},
		{"1e3", 1000.0},
		{"2.5d", 2.5},
		{"false", false},
		{`"a\"b"`, `a"b`},
		{`'\n'`, '\n'},
		{"NaN", FieldRef("NaN")},
		{"Color.RED", FieldRef("Color.RED")},
		{"{}", []any(nil)},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			assert.Equal(t, tc.want, evaluateLiteral(tc.expr, scope{source: -1}))
		})
	}
}
