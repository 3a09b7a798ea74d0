package java

import (
	"strconv"
	"strings"
)

// AnnotationValue is one element-value pair as written, e.g. "value"
// and "\"unchecked\"". A single-element annotation uses the name "value".
type AnnotationValue struct {
	Name string
	Expr string
}

type Annotation struct {
	typ    *Type
	values []AnnotationValue
	sc     scope
}

func (a *Annotation) Type() *Type { return a.typ }

func (a *Annotation) Values() []AnnotationValue { return a.values }

// Value returns the raw expression of the named element.
func (a *Annotation) Value(name string) (string, bool) {
	for _, v := range a.values {
		if v.Name == name {
			return v.Expr, true
		}
	}
	return "", false
}

// FieldRef is an element value naming a constant, e.g. "ElementType.TYPE".
type FieldRef string

// Evaluate interprets the named element's literal. Integers come back as
// int64, floating point numbers as float64, characters as rune, class
// literals as *Type, array initializers as []any and any other name as
// a FieldRef. It returns nil for a missing element.
func (a *Annotation) Evaluate(name string) any {
	expr, ok := a.Value(name)
	if !ok {
		return nil
	}
	return evaluateLiteral(expr, a.sc)
}

func evaluateLiteral(expr string, sc scope) any {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "true" || expr == "false":
		return expr == "true"
	case strings.HasPrefix(expr, "\"") && strings.HasSuffix(expr, "\"") && len(expr) >= 2:
		if s, err := strconv.Unquote(expr); err == nil {
			return s
		}
		return expr[1 : len(expr)-1]
	case strings.HasPrefix(expr, "'") && strings.HasSuffix(expr, "'") && len(expr) >= 3:
		if r, _, _, err := strconv.UnquoteChar(expr[1:len(expr)-1], '\''); err == nil {
			return r
		}
	case strings.HasPrefix(expr, "{") && strings.HasSuffix(expr, "}"):
		var out []any
		for _, part := range splitTopLevel(expr[1 : len(expr)-1]) {
			if strings.TrimSpace(part) != "" {
				out = append(out, evaluateLiteral(part, sc))
			}
		}
		return out
	case strings.HasSuffix(expr, ".class"):
		name := strings.TrimSpace(strings.TrimSuffix(expr, ".class"))
		dims := 0
		for strings.HasSuffix(name, "[]") {
			name = strings.TrimSpace(strings.TrimSuffix(name, "[]"))
			dims++
		}
		return newClassType(sc, name, nil, dims)
	}
	if expr == "" || !(expr[0] == '-' || expr[0] == '.' || (expr[0] >= '0' && expr[0] <= '9')) {
		return FieldRef(expr)
	}
	if n, ok := parseIntLiteral(expr); ok {
		return n
	}
	if f, err := strconv.ParseFloat(strings.TrimRight(strings.ReplaceAll(expr, "_", ""), "fFdD"), 64); err == nil {
		return f
	}
	return FieldRef(expr)
}

func parseIntLiteral(expr string) (int64, bool) {
	s := strings.TrimRight(strings.ReplaceAll(expr, "_", ""), "lL")
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	base := 10
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		base, s = 2, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, s = 8, s[1:]
	}
	u, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		return -int64(u), true
	}
	return int64(u), true
}

// splitTopLevel splits on commas outside braces, parentheses and quotes.
func splitTopLevel(s string) []string {
	var out []string
	depth, start := 0, 0
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '{' || ch == '(':
			depth++
		case ch == '}' || ch == ')':
			depth--
		case ch == ',' && depth == 0:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func (a *Annotation) String() string {
	var sb strings.Builder
	sb.WriteString("@")
	sb.WriteString(a.typ.FullyQualifiedName())
	if len(a.values) == 0 {
		return sb.String()
	}
	sb.WriteString("(")
	for i, v := range a.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.Name)
		sb.WriteString("=")
		sb.WriteString(v.Expr)
	}
	sb.WriteString(")")
	return sb.String()
}
