package java

type Field struct {
	modifiers
	annotated
	documented

	owner        classRef
	name         string
	typ          *Type
	initializer  string
	enumConstant bool
	arguments    []string
	body         *Class
	line         int
}

func (f *Field) Name() string { return f.name }
func (f *Field) Type() *Type  { return f.typ }
func (f *Field) Line() int    { return f.line }

// Initializer is the raw initializer expression, "" if none.
func (f *Field) Initializer() string { return f.initializer }

func (f *Field) IsEnumConstant() bool { return f.enumConstant }

// EnumConstantArguments are the raw constructor argument expressions of
// an enum constant.
func (f *Field) EnumConstantArguments() []string { return f.arguments }

// EnumConstantClass is the anonymous subclass of an enum constant that
// has a body, nil otherwise.
func (f *Field) EnumConstantClass() *Class { return f.body }

func (f *Field) DeclaringClass() *Class { return f.owner.class() }

func (f *Field) String() string {
	return canonicalName(f.owner.binary) + "#" + f.name
}
