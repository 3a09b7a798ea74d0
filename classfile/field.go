package classfile

type FieldInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (f *FieldInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(f.NameIndex)
}

func (f *FieldInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(f.DescriptorIndex)
}

// Signature returns the generic field signature, or "".
func (f *FieldInfo) Signature(cp ConstantPool) string {
	return signatureOf(cp, f.Attributes)
}

// ConstantValue returns the compile-time constant initializer rendered
// as Java source, and false if the field has none.
func (f *FieldInfo) ConstantValue(cp ConstantPool) (string, bool) {
	a := attributeNamed(cp, f.Attributes, "ConstantValue")
	if a == nil {
		return "", false
	}
	cv, ok := a.Parsed.(*ConstantValueAttribute)
	if !ok {
		return "", false
	}
	return cp.Literal(cv.ConstantValueIndex)
}

func (f *FieldInfo) IsSynthetic() bool { return f.AccessFlags.IsSynthetic() }
func (f *FieldInfo) IsEnum() bool      { return f.AccessFlags.IsEnum() }
