package classfile

// ClassFile is the decoded form of a single .class file. Only the
// attributes needed to describe a class's declared surface are decoded;
// everything else is kept as raw bytes.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo
}

// ClassName returns the internal name of the class, e.g. "java/util/Map$Entry".
func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.GetClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.GetClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.ConstantPool.GetClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool { return cf.AccessFlags.IsAnnotation() }
func (cf *ClassFile) IsEnum() bool       { return cf.AccessFlags.IsEnum() }

// IsRecord reports whether the class carries a Record attribute or
// directly extends java.lang.Record.
func (cf *ClassFile) IsRecord() bool {
	return attributeNamed(cf.ConstantPool, cf.Attributes, "Record") != nil ||
		cf.SuperClassName() == "java/lang/Record"
}

// Signature returns the generic class signature, or "" when the class
// was compiled without one.
func (cf *ClassFile) Signature() string {
	return signatureOf(cf.ConstantPool, cf.Attributes)
}

func (cf *ClassFile) SourceFile() string {
	if a := attributeNamed(cf.ConstantPool, cf.Attributes, "SourceFile"); a != nil {
		if sf, ok := a.Parsed.(*SourceFileAttribute); ok {
			return cf.ConstantPool.GetUtf8(sf.SourceFileIndex)
		}
	}
	return ""
}

// InnerClasses returns the entries of the InnerClasses attribute with
// their constant pool references resolved.
func (cf *ClassFile) InnerClasses() []InnerClass {
	a := attributeNamed(cf.ConstantPool, cf.Attributes, "InnerClasses")
	if a == nil {
		return nil
	}
	ic, ok := a.Parsed.(*InnerClassesAttribute)
	if !ok {
		return nil
	}
	out := make([]InnerClass, 0, len(ic.Classes))
	for _, e := range ic.Classes {
		out = append(out, InnerClass{
			Inner:       cf.ConstantPool.GetClassName(e.InnerClassInfoIndex),
			Outer:       cf.ConstantPool.GetClassName(e.OuterClassInfoIndex),
			SimpleName:  cf.ConstantPool.GetUtf8(e.InnerNameIndex),
			AccessFlags: e.InnerClassAccessFlags,
		})
	}
	return out
}

// InnerClass is a resolved InnerClasses entry. Outer and SimpleName are
// empty for local and anonymous classes.
type InnerClass struct {
	Inner       string
	Outer       string
	SimpleName  string
	AccessFlags AccessFlags
}

func (cf *ClassFile) IsDeprecated() bool {
	return attributeNamed(cf.ConstantPool, cf.Attributes, "Deprecated") != nil
}
