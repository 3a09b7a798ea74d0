package classfile

import (
	"encoding/binary"
)

// AttributeInfo is a raw attribute. Parsed holds the decoded form for
// the attributes listed in decodeAttribute and is nil for all others.
type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
	Parsed    any
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

type MethodParameter struct {
	NameIndex   uint16
	AccessFlags AccessFlags
}

type DeprecatedAttribute struct{}

type RecordAttribute struct {
	ComponentCount uint16
}

func decodeAttribute(name string, info []byte) any {
	switch name {
	case "SourceFile":
		if len(info) < 2 {
			return nil
		}
		return &SourceFileAttribute{SourceFileIndex: u2(info, 0)}
	case "ConstantValue":
		if len(info) < 2 {
			return nil
		}
		return &ConstantValueAttribute{ConstantValueIndex: u2(info, 0)}
	case "Signature":
		if len(info) < 2 {
			return nil
		}
		return &SignatureAttribute{SignatureIndex: u2(info, 0)}
	case "Exceptions":
		return decodeExceptions(info)
	case "InnerClasses":
		return decodeInnerClasses(info)
	case "MethodParameters":
		return decodeMethodParameters(info)
	case "Deprecated":
		return &DeprecatedAttribute{}
	case "Record":
		if len(info) < 2 {
			return nil
		}
		return &RecordAttribute{ComponentCount: u2(info, 0)}
	}
	return nil
}

func u2(b []byte, off int) uint16 {
	return binary.BigEndian.Uint16(b[off : off+2])
}

func decodeExceptions(info []byte) *ExceptionsAttribute {
	if len(info) < 2 {
		return nil
	}
	count := int(u2(info, 0))
	if len(info) < 2+count*2 {
		return nil
	}
	ex := &ExceptionsAttribute{ExceptionIndexTable: make([]uint16, count)}
	for i := 0; i < count; i++ {
		ex.ExceptionIndexTable[i] = u2(info, 2+i*2)
	}
	return ex
}

func decodeInnerClasses(info []byte) *InnerClassesAttribute {
	if len(info) < 2 {
		return nil
	}
	count := int(u2(info, 0))
	if len(info) < 2+count*8 {
		return nil
	}
	ic := &InnerClassesAttribute{Classes: make([]InnerClassEntry, count)}
	for i := 0; i < count; i++ {
		off := 2 + i*8
		ic.Classes[i] = InnerClassEntry{
			InnerClassInfoIndex:   u2(info, off),
			OuterClassInfoIndex:   u2(info, off+2),
			InnerNameIndex:        u2(info, off+4),
			InnerClassAccessFlags: AccessFlags(u2(info, off+6)),
		}
	}
	return ic
}

func decodeMethodParameters(info []byte) *MethodParametersAttribute {
	if len(info) < 1 {
		return nil
	}
	count := int(info[0])
	if len(info) < 1+count*4 {
		return nil
	}
	mp := &MethodParametersAttribute{Parameters: make([]MethodParameter, count)}
	for i := 0; i < count; i++ {
		off := 1 + i*4
		mp.Parameters[i] = MethodParameter{
			NameIndex:   u2(info, off),
			AccessFlags: AccessFlags(u2(info, off+2)),
		}
	}
	return mp
}

func attributeNamed(cp ConstantPool, attrs []AttributeInfo, name string) *AttributeInfo {
	for i := range attrs {
		if cp.GetUtf8(attrs[i].NameIndex) == name {
			return &attrs[i]
		}
	}
	return nil
}

func signatureOf(cp ConstantPool, attrs []AttributeInfo) string {
	a := attributeNamed(cp, attrs, "Signature")
	if a == nil {
		return ""
	}
	if sig, ok := a.Parsed.(*SignatureAttribute); ok {
		return cp.GetUtf8(sig.SignatureIndex)
	}
	return ""
}
