// Package classfiletest assembles small class files in memory so that
// class-file readers can be tested without compiled fixtures.
package classfiletest

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/dhamidi/javamodel/classfile"
)

type Class struct {
	// Name is the internal name, e.g. "com/example/Box$Item".
	Name       string
	Super      string
	Interfaces []string
	Access     classfile.AccessFlags
	Signature  string
	SourceFile string
	Record     bool
	Fields     []Field
	Methods    []Method
	Inner      []InnerClass
}

type Field struct {
	Name       string
	Descriptor string
	Signature  string
	Access     classfile.AccessFlags
	// Constant is an int32 or string written as a ConstantValue attribute.
	Constant any
}

type Method struct {
	Name           string
	Descriptor     string
	Signature      string
	Access         classfile.AccessFlags
	Exceptions     []string
	ParameterNames []string
}

type InnerClass struct {
	Inner  string
	Outer  string
	Name   string
	Access classfile.AccessFlags
}

type pool struct {
	entries bytes.Buffer
	count   uint16
	index   map[string]uint16
}

func (p *pool) add(key string, write func(*bytes.Buffer)) uint16 {
	if i, ok := p.index[key]; ok {
		return i
	}
	write(&p.entries)
	p.count++
	p.index[key] = p.count
	return p.count
}

func (p *pool) utf8(s string) uint16 {
	return p.add("u:"+s, func(b *bytes.Buffer) {
		b.WriteByte(byte(classfile.ConstantUtf8))
		writeU2(b, uint16(len(s)))
		b.WriteString(s)
	})
}

func (p *pool) class(name string) uint16 {
	if name == "" {
		return 0
	}
	idx := p.utf8(name)
	return p.add("c:"+name, func(b *bytes.Buffer) {
		b.WriteByte(byte(classfile.ConstantClass))
		writeU2(b, idx)
	})
}

func (p *pool) constant(v any) uint16 {
	switch v := v.(type) {
	case int32:
		return p.add("i:"+strconv.Itoa(int(v)), func(b *bytes.Buffer) {
			b.WriteByte(byte(classfile.ConstantInteger))
			writeU4(b, uint32(v))
		})
	case string:
		idx := p.utf8(v)
		return p.add("s:"+v, func(b *bytes.Buffer) {
			b.WriteByte(byte(classfile.ConstantString))
			writeU2(b, idx)
		})
	}
	return 0
}

type attribute struct {
	name uint16
	data []byte
}

// Bytes encodes the class as a version 61 (Java 17) class file.
func (c *Class) Bytes() []byte {
	p := &pool{index: map[string]uint16{}}
	var body bytes.Buffer

	writeU2(&body, uint16(c.Access))
	writeU2(&body, p.class(c.Name))
	writeU2(&body, p.class(c.Super))
	writeU2(&body, uint16(len(c.Interfaces)))
	for _, i := range c.Interfaces {
		writeU2(&body, p.class(i))
	}

	writeU2(&body, uint16(len(c.Fields)))
	for _, f := range c.Fields {
		writeU2(&body, uint16(f.Access))
		writeU2(&body, p.utf8(f.Name))
		writeU2(&body, p.utf8(f.Descriptor))
		var attrs []attribute
		if f.Signature != "" {
			attrs = append(attrs, attribute{p.utf8("Signature"), u2bytes(p.utf8(f.Signature))})
		}
		if f.Constant != nil {
			attrs = append(attrs, attribute{p.utf8("ConstantValue"), u2bytes(p.constant(f.Constant))})
		}
		writeAttributes(&body, attrs)
	}

	writeU2(&body, uint16(len(c.Methods)))
	for _, m := range c.Methods {
		writeU2(&body, uint16(m.Access))
		writeU2(&body, p.utf8(m.Name))
		writeU2(&body, p.utf8(m.Descriptor))
		var attrs []attribute
		if m.Signature != "" {
			attrs = append(attrs, attribute{p.utf8("Signature"), u2bytes(p.utf8(m.Signature))})
		}
		if len(m.Exceptions) > 0 {
			var b bytes.Buffer
			writeU2(&b, uint16(len(m.Exceptions)))
			for _, e := range m.Exceptions {
				writeU2(&b, p.class(e))
			}
			attrs = append(attrs, attribute{p.utf8("Exceptions"), b.Bytes()})
		}
		if len(m.ParameterNames) > 0 {
			var b bytes.Buffer
			b.WriteByte(byte(len(m.ParameterNames)))
			for _, n := range m.ParameterNames {
				writeU2(&b, p.utf8(n))
				writeU2(&b, 0)
			}
			attrs = append(attrs, attribute{p.utf8("MethodParameters"), b.Bytes()})
		}
		writeAttributes(&body, attrs)
	}

	var attrs []attribute
	if c.Signature != "" {
		attrs = append(attrs, attribute{p.utf8("Signature"), u2bytes(p.utf8(c.Signature))})
	}
	if c.SourceFile != "" {
		attrs = append(attrs, attribute{p.utf8("SourceFile"), u2bytes(p.utf8(c.SourceFile))})
	}
	if c.Record {
		attrs = append(attrs, attribute{p.utf8("Record"), u2bytes(0)})
	}
	if len(c.Inner) > 0 {
		var b bytes.Buffer
		writeU2(&b, uint16(len(c.Inner)))
		for _, ic := range c.Inner {
			writeU2(&b, p.class(ic.Inner))
			writeU2(&b, p.class(ic.Outer))
			if ic.Name == "" {
				writeU2(&b, 0)
			} else {
				writeU2(&b, p.utf8(ic.Name))
			}
			writeU2(&b, uint16(ic.Access))
		}
		attrs = append(attrs, attribute{p.utf8("InnerClasses"), b.Bytes()})
	}
	writeAttributes(&body, attrs)

	var out bytes.Buffer
	writeU4(&out, classfile.Magic)
	writeU2(&out, 0)
	writeU2(&out, 61)
	writeU2(&out, p.count+1)
	out.Write(p.entries.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

func writeAttributes(b *bytes.Buffer, attrs []attribute) {
	writeU2(b, uint16(len(attrs)))
	for _, a := range attrs {
		writeU2(b, a.name)
		writeU4(b, uint32(len(a.data)))
		b.Write(a.data)
	}
}

func u2bytes(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}

func writeU2(b *bytes.Buffer, v uint16) {
	b.Write(binary.BigEndian.AppendUint16(nil, v))
}

func writeU4(b *bytes.Buffer, v uint32) {
	b.Write(binary.BigEndian.AppendUint32(nil, v))
}
