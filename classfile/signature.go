package classfile

import (
	"fmt"
	"strings"
)

// TypeSignature is one JavaTypeSignature from a Signature attribute.
// Exactly one of BaseType, ClassName or Variable is set. For nested
// generic types such as "Lp/Outer<TT;>.Inner<TU;>;" the ClassName is
// the binary internal name "p/Outer$Inner" and Args holds the arguments
// of the innermost class only.
type TypeSignature struct {
	BaseType   string
	ClassName  string
	Variable   string
	Args       []TypeArgument
	ArrayDepth int
}

// WildcardIndicator is the marker in front of a type argument: 0 for an
// exact argument, '+' for "? extends", '-' for "? super" and '*' for
// an unbounded "?".
type WildcardIndicator byte

const (
	WildcardNone    WildcardIndicator = 0
	WildcardExtends WildcardIndicator = '+'
	WildcardSuper   WildcardIndicator = '-'
	WildcardAny     WildcardIndicator = '*'
)

type TypeArgument struct {
	Wildcard WildcardIndicator
	Type     *TypeSignature
}

type TypeParameterSignature struct {
	Name   string
	Bounds []*TypeSignature
}

type ClassSignature struct {
	TypeParameters []TypeParameterSignature
	Superclass     *TypeSignature
	Interfaces     []*TypeSignature
}

type MethodSignature struct {
	TypeParameters []TypeParameterSignature
	Parameters     []*TypeSignature
	// Return is nil for void.
	Return *TypeSignature
	Throws []*TypeSignature
}

// TypeSignature converts an erased descriptor into the signature
// form, for members compiled without a Signature attribute.
func (ft *FieldType) TypeSignature() *TypeSignature {
	return &TypeSignature{BaseType: ft.BaseType, ClassName: ft.ClassName, ArrayDepth: ft.ArrayDepth}
}

func (ts *TypeSignature) String() string {
	var sb strings.Builder
	switch {
	case ts.BaseType != "":
		sb.WriteString(ts.BaseType)
	case ts.Variable != "":
		sb.WriteString(ts.Variable)
	default:
		sb.WriteString(InternalToSourceName(ts.ClassName))
	}
	if len(ts.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range ts.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			switch a.Wildcard {
			case WildcardAny:
				sb.WriteByte('?')
				continue
			case WildcardExtends:
				sb.WriteString("? extends ")
			case WildcardSuper:
				sb.WriteString("? super ")
			}
			sb.WriteString(a.Type.String())
		}
		sb.WriteByte('>')
	}
	for i := 0; i < ts.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

type signatureParser struct {
	s   string
	pos int
	err error
}

func (p *signatureParser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf("signature %q at %d: %s", p.s, p.pos, fmt.Sprintf(format, args...))
	}
}

func (p *signatureParser) peek() byte {
	if p.err != nil || p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *signatureParser) expect(c byte) {
	if p.peek() != c {
		p.fail("expected %q", c)
		return
	}
	p.pos++
}

func (p *signatureParser) identifier(stops string) string {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune(stops, rune(p.s[p.pos])) {
		p.pos++
	}
	if start == p.pos {
		p.fail("expected identifier")
	}
	return p.s[start:p.pos]
}

// ParseClassSignature parses the Signature attribute of a class.
func ParseClassSignature(sig string) (*ClassSignature, error) {
	p := &signatureParser{s: sig}
	cs := &ClassSignature{TypeParameters: p.typeParameters()}
	cs.Superclass = p.classType()
	for p.err == nil && p.pos < len(p.s) {
		cs.Interfaces = append(cs.Interfaces, p.classType())
	}
	if p.err != nil {
		return nil, p.err
	}
	return cs, nil
}

// ParseMethodSignature parses the Signature attribute of a method.
func ParseMethodSignature(sig string) (*MethodSignature, error) {
	p := &signatureParser{s: sig}
	ms := &MethodSignature{TypeParameters: p.typeParameters()}
	p.expect('(')
	for p.err == nil && p.peek() != ')' {
		ms.Parameters = append(ms.Parameters, p.javaType())
	}
	p.expect(')')
	if p.peek() == 'V' {
		p.pos++
	} else {
		ms.Return = p.javaType()
	}
	for p.err == nil && p.peek() == '^' {
		p.pos++
		ms.Throws = append(ms.Throws, p.referenceType())
	}
	if p.err == nil && p.pos != len(p.s) {
		p.fail("trailing input")
	}
	if p.err != nil {
		return nil, p.err
	}
	return ms, nil
}

// ParseFieldSignature parses the Signature attribute of a field.
func ParseFieldSignature(sig string) (*TypeSignature, error) {
	p := &signatureParser{s: sig}
	ts := p.referenceType()
	if p.err == nil && p.pos != len(p.s) {
		p.fail("trailing input")
	}
	if p.err != nil {
		return nil, p.err
	}
	return ts, nil
}

func (p *signatureParser) typeParameters() []TypeParameterSignature {
	if p.peek() != '<' {
		return nil
	}
	p.pos++
	var params []TypeParameterSignature
	for p.err == nil && p.peek() != '>' {
		tp := TypeParameterSignature{Name: p.identifier(":")}
		// class bound, possibly empty when only interface bounds follow
		p.expect(':')
		if c := p.peek(); c == 'L' || c == 'T' || c == '[' {
			tp.Bounds = append(tp.Bounds, p.referenceType())
		}
		for p.err == nil && p.peek() == ':' {
			p.pos++
			tp.Bounds = append(tp.Bounds, p.referenceType())
		}
		params = append(params, tp)
	}
	p.expect('>')
	return params
}

func (p *signatureParser) javaType() *TypeSignature {
	if base, ok := baseTypes[p.peek()]; ok && p.peek() != 'V' {
		p.pos++
		return &TypeSignature{BaseType: base}
	}
	return p.referenceType()
}

func (p *signatureParser) referenceType() *TypeSignature {
	switch p.peek() {
	case 'L':
		return p.classType()
	case 'T':
		p.pos++
		name := p.identifier(";")
		p.expect(';')
		return &TypeSignature{Variable: name}
	case '[':
		p.pos++
		elem := p.javaType()
		if elem == nil {
			return nil
		}
		elem.ArrayDepth++
		return elem
	}
	p.fail("expected reference type")
	return nil
}

func (p *signatureParser) classType() *TypeSignature {
	p.expect('L')
	ts := &TypeSignature{}
	var name strings.Builder
	name.WriteString(p.identifier("<.;"))
	ts.Args = p.typeArguments()
	for p.err == nil && p.peek() == '.' {
		p.pos++
		name.WriteByte('$')
		name.WriteString(p.identifier("<.;"))
		ts.Args = p.typeArguments()
	}
	p.expect(';')
	ts.ClassName = name.String()
	return ts
}

func (p *signatureParser) typeArguments() []TypeArgument {
	if p.peek() != '<' {
		return nil
	}
	p.pos++
	var args []TypeArgument
	for p.err == nil && p.peek() != '>' {
		switch c := p.peek(); c {
		case '*':
			p.pos++
			args = append(args, TypeArgument{Wildcard: WildcardAny})
		case '+', '-':
			p.pos++
			args = append(args, TypeArgument{Wildcard: WildcardIndicator(c), Type: p.referenceType()})
		default:
			args = append(args, TypeArgument{Type: p.referenceType()})
		}
	}
	p.expect('>')
	return args
}
