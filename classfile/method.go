package classfile

type MethodInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (m *MethodInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *MethodInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

// Signature returns the generic method signature, or "".
func (m *MethodInfo) Signature(cp ConstantPool) string {
	return signatureOf(cp, m.Attributes)
}

// Exceptions lists the internal names from the Exceptions attribute.
func (m *MethodInfo) Exceptions(cp ConstantPool) []string {
	a := attributeNamed(cp, m.Attributes, "Exceptions")
	if a == nil {
		return nil
	}
	ex, ok := a.Parsed.(*ExceptionsAttribute)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(ex.ExceptionIndexTable))
	for _, idx := range ex.ExceptionIndexTable {
		names = append(names, cp.GetClassName(idx))
	}
	return names
}

// ParameterNames returns the names recorded by javac -parameters. The
// result is nil when the attribute is absent; unnamed entries are "".
func (m *MethodInfo) ParameterNames(cp ConstantPool) []string {
	a := attributeNamed(cp, m.Attributes, "MethodParameters")
	if a == nil {
		return nil
	}
	mp, ok := a.Parsed.(*MethodParametersAttribute)
	if !ok {
		return nil
	}
	names := make([]string, len(mp.Parameters))
	for i, p := range mp.Parameters {
		names[i] = cp.GetUtf8(p.NameIndex)
	}
	return names
}

func (m *MethodInfo) IsBridge() bool    { return m.AccessFlags.IsBridge() }
func (m *MethodInfo) IsVarargs() bool   { return m.AccessFlags.IsVarargs() }
func (m *MethodInfo) IsSynthetic() bool { return m.AccessFlags.IsSynthetic() }

func (m *MethodInfo) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == "<init>"
}

func (m *MethodInfo) IsStaticInitializer(cp ConstantPool) bool {
	return m.Name(cp) == "<clinit>"
}

func (m *MethodInfo) ParsedDescriptor(cp ConstantPool) *MethodDescriptor {
	return ParseMethodDescriptor(m.Descriptor(cp))
}
