package java

type Parameter struct {
	modifiers
	annotated

	name    string
	typ     *Type
	varargs bool
	member  memberRef
}

// memberRef locates a method or constructor by its owner and position.
type memberRef struct {
	owner       classRef
	constructor bool
	index       int
}

func (p *Parameter) Name() string { return p.name }

// Type is the declared type. For a varargs parameter it carries one
// more array dimension than written before the "...".
func (p *Parameter) Type() *Type { return p.typ }

// IsVarArgs is true only for a trailing parameter declared with "...".
func (p *Parameter) IsVarArgs() bool { return p.varargs }

// DeclaringMember returns the method or constructor the parameter
// belongs to.
func (p *Parameter) DeclaringMember() HasParameters {
	c := p.member.owner.class()
	if c == nil {
		return nil
	}
	if p.member.constructor {
		if p.member.index < len(c.constructors) {
			return c.constructors[p.member.index]
		}
		return nil
	}
	if p.member.index < len(c.methods) {
		return c.methods[p.member.index]
	}
	return nil
}

func (p *Parameter) String() string {
	if p.varargs {
		return p.typ.ComponentType().GenericValue() + "... " + p.name
	}
	return p.typ.GenericValue() + " " + p.name
}
