package classpath

import (
	"fmt"
	"strings"

	"github.com/dhamidi/javamodel/classfile"
	"github.com/dhamidi/javamodel/java"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("javamodel.classpath")

// Describe converts a decoded class file into the descriptor a
// java.Library builds reflected classes from. Generic signatures are
// used when present; members compiled without one get their erased
// descriptor types. Synthetic members, bridge methods and static
// initializers are left out.
func Describe(cf *classfile.ClassFile) (*java.ClassDescriptor, error) {
	internal := cf.ClassName()
	if internal == "" {
		return nil, fmt.Errorf("class file has no class name")
	}
	d := &java.ClassDescriptor{
		Name: classfile.InternalToSourceName(internal),
		Kind: classKind(cf),
	}

	access := cf.AccessFlags
	d.NestedClasses = []string{}
	for _, ic := range cf.InnerClasses() {
		switch {
		case ic.Inner == internal && ic.Outer != "":
			d.Enclosing = classfile.InternalToSourceName(ic.Outer)
			access = ic.AccessFlags
		case ic.Outer == internal && ic.SimpleName != "":
			d.NestedClasses = append(d.NestedClasses, classfile.InternalToSourceName(ic.Inner))
		}
	}
	d.Modifiers = classModifiers(access, d.Kind)
	if cf.IsDeprecated() {
		d.Annotations = append(d.Annotations, deprecated())
	}

	sig, err := classSignature(cf)
	if err != nil {
		log.Warningf("%s: %s, using erased types", d.Name, err)
	}
	if sig != nil {
		d.TypeParameters = typeParameters(sig.TypeParameters)
		d.Superclass = typeDef(sig.Superclass)
		for _, i := range sig.Interfaces {
			d.Interfaces = append(d.Interfaces, typeDef(i))
		}
	} else {
		if super := cf.SuperClassName(); super != "" {
			d.Superclass = &java.TypeDef{Name: classfile.InternalToSourceName(super)}
		}
		for _, i := range cf.InterfaceNames() {
			d.Interfaces = append(d.Interfaces, &java.TypeDef{Name: classfile.InternalToSourceName(i)})
		}
	}

	cp := cf.ConstantPool
	for i := range cf.Fields {
		f := &cf.Fields[i]
		if f.IsSynthetic() {
			continue
		}
		d.Fields = append(d.Fields, field(d.Name, f, cp))
	}

	inner := d.Enclosing != "" && !access.IsStatic() && d.Kind == java.ClassKindClass
	for i := range cf.Methods {
		m := &cf.Methods[i]
		if m.IsSynthetic() || m.IsBridge() || m.IsStaticInitializer(cp) {
			continue
		}
		md, err := method(m, cp)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", d.Name, m.Name(cp), err)
		}
		if !m.IsConstructor(cp) {
			if d.Kind == java.ClassKindInterface || d.Kind == java.ClassKindAnnotation {
				md.Modifiers = interfaceMethodModifiers(m.AccessFlags, md.Modifiers)
			}
			d.Methods = append(d.Methods, md)
			continue
		}
		if m.Signature(cp) == "" {
			// javac adds name and ordinal to enum constructors and the
			// outer instance to inner class constructors.
			switch {
			case d.Kind == java.ClassKindEnum:
				md.Parameters = dropLeading(md.Parameters, 2)
			case inner:
				md.Parameters = dropLeading(md.Parameters, 1)
			}
		}
		md.Name = simpleName(d.Name)
		d.Constructors = append(d.Constructors, md)
	}
	return d, nil
}

func classKind(cf *classfile.ClassFile) java.ClassKind {
	switch {
	case cf.IsAnnotation():
		return java.ClassKindAnnotation
	case cf.IsInterface():
		return java.ClassKindInterface
	case cf.IsEnum():
		return java.ClassKindEnum
	case cf.IsRecord():
		return java.ClassKindRecord
	}
	return java.ClassKindClass
}

func classSignature(cf *classfile.ClassFile) (*classfile.ClassSignature, error) {
	s := cf.Signature()
	if s == "" {
		return nil, nil
	}
	return classfile.ParseClassSignature(s)
}

func field(owner string, f *classfile.FieldInfo, cp classfile.ConstantPool) *java.FieldDef {
	fd := &java.FieldDef{
		Name:         f.Name(cp),
		Modifiers:    fieldModifiers(f.AccessFlags),
		EnumConstant: f.IsEnum(),
	}
	var t *classfile.TypeSignature
	if s := f.Signature(cp); s != "" {
		var err error
		if t, err = classfile.ParseFieldSignature(s); err != nil {
			log.Warningf("%s.%s: %s, using erased type", owner, fd.Name, err)
		}
	}
	if t == nil {
		if ft := classfile.ParseFieldDescriptor(f.Descriptor(cp)); ft != nil {
			t = ft.TypeSignature()
		}
	}
	fd.Type = typeDef(t)
	if v, ok := f.ConstantValue(cp); ok {
		fd.Initializer = v
	}
	if fd.EnumConstant {
		fd.Arguments = []string{}
	}
	return fd
}

func method(m *classfile.MethodInfo, cp classfile.ConstantPool) (*java.MethodDescriptor, error) {
	desc := m.ParsedDescriptor(cp)
	if desc == nil {
		return nil, fmt.Errorf("bad descriptor %q", m.Descriptor(cp))
	}
	md := &java.MethodDescriptor{}
	md.Name = m.Name(cp)
	md.Modifiers = methodModifiers(m.AccessFlags)

	var params []*classfile.TypeSignature
	ret := desc.ReturnType
	var returns *classfile.TypeSignature
	if ret != nil {
		returns = ret.TypeSignature()
	}
	var throws []*classfile.TypeSignature
	if s := m.Signature(cp); s != "" {
		sig, err := classfile.ParseMethodSignature(s)
		if err != nil {
			log.Warningf("%s: %s, using erased types", md.Name, err)
		} else {
			md.TypeParameters = typeParameters(sig.TypeParameters)
			params = sig.Parameters
			returns = sig.Return
			throws = sig.Throws
		}
	}
	if params == nil {
		for i := range desc.Parameters {
			params = append(params, desc.Parameters[i].TypeSignature())
		}
	}
	if md.Name != "<init>" {
		md.Returns = typeDef(returns)
		if md.Returns == nil {
			md.Returns = &java.TypeDef{Name: "void"}
		}
	}

	names := m.ParameterNames(cp)
	if len(names) != len(params) {
		names = nil
	}
	for i, p := range params {
		pd := &java.ParameterDef{Type: typeDef(p)}
		if names != nil && names[i] != "" {
			pd.Name = names[i]
		} else {
			pd.Name = fmt.Sprintf("arg%d", i)
		}
		if i == len(params)-1 && m.IsVarargs() && pd.Type.Dims > 0 {
			pd.VarArgs = true
			pd.Type.Dims--
		}
		md.Parameters = append(md.Parameters, pd)
	}

	if len(throws) > 0 {
		for _, t := range throws {
			md.Exceptions = append(md.Exceptions, typeDef(t))
		}
	} else {
		for _, e := range m.Exceptions(cp) {
			md.Exceptions = append(md.Exceptions, &java.TypeDef{Name: classfile.InternalToSourceName(e)})
		}
	}
	return md, nil
}

// dropLeading removes compiler-added leading parameters and renumbers
// the generated names of the rest.
func dropLeading(params []*java.ParameterDef, n int) []*java.ParameterDef {
	if len(params) < n {
		return params
	}
	params = params[n:]
	for i, p := range params {
		if strings.HasPrefix(p.Name, "arg") {
			p.Name = fmt.Sprintf("arg%d", i)
		}
	}
	return params
}

func typeParameters(sigs []classfile.TypeParameterSignature) []*java.TypeVariableDef {
	var out []*java.TypeVariableDef
	for _, s := range sigs {
		def := &java.TypeVariableDef{Name: s.Name}
		for _, b := range s.Bounds {
			// A plain <T> is compiled as "T:Ljava/lang/Object;".
			if len(s.Bounds) == 1 && b.ClassName == "java/lang/Object" && b.ArrayDepth == 0 {
				continue
			}
			def.Bounds = append(def.Bounds, typeDef(b))
		}
		out = append(out, def)
	}
	return out
}

func typeDef(t *classfile.TypeSignature) *java.TypeDef {
	if t == nil {
		return nil
	}
	d := &java.TypeDef{Dims: t.ArrayDepth}
	switch {
	case t.BaseType != "":
		d.Name = t.BaseType
	case t.Variable != "":
		d.Name = t.Variable
		d.Variable = true
	default:
		d.Name = classfile.InternalToSourceName(t.ClassName)
	}
	for _, a := range t.Args {
		switch a.Wildcard {
		case classfile.WildcardAny:
			d.Args = append(d.Args, java.Wildcard(java.WildcardUnbounded, nil))
		case classfile.WildcardExtends:
			d.Args = append(d.Args, java.Wildcard(java.WildcardExtends, typeDef(a.Type)))
		case classfile.WildcardSuper:
			d.Args = append(d.Args, java.Wildcard(java.WildcardSuper, typeDef(a.Type)))
		default:
			d.Args = append(d.Args, typeDef(a.Type))
		}
	}
	return d
}

func deprecated() *java.AnnotationDef {
	return &java.AnnotationDef{Type: &java.TypeDef{Name: "java.lang.Deprecated"}}
}

func simpleName(binary string) string {
	if i := strings.LastIndexAny(binary, ".$"); i >= 0 {
		return binary[i+1:]
	}
	return binary
}

func visibility(flags classfile.AccessFlags) []string {
	switch {
	case flags.IsPublic():
		return []string{"public"}
	case flags.IsProtected():
		return []string{"protected"}
	case flags.IsPrivate():
		return []string{"private"}
	}
	return nil
}

func classModifiers(flags classfile.AccessFlags, kind java.ClassKind) []string {
	mods := visibility(flags)
	if flags.IsAbstract() && kind == java.ClassKindClass {
		mods = append(mods, "abstract")
	}
	if flags.IsStatic() {
		mods = append(mods, "static")
	}
	if flags.IsFinal() && kind == java.ClassKindClass {
		mods = append(mods, "final")
	}
	return mods
}

func fieldModifiers(flags classfile.AccessFlags) []string {
	mods := visibility(flags)
	if flags.IsStatic() {
		mods = append(mods, "static")
	}
	if flags.IsFinal() {
		mods = append(mods, "final")
	}
	if flags.IsTransient() {
		mods = append(mods, "transient")
	}
	if flags.IsVolatile() {
		mods = append(mods, "volatile")
	}
	return mods
}

func methodModifiers(flags classfile.AccessFlags) []string {
	mods := visibility(flags)
	if flags.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if flags.IsStatic() {
		mods = append(mods, "static")
	}
	if flags.IsFinal() {
		mods = append(mods, "final")
	}
	if flags.IsSynchronized() {
		mods = append(mods, "synchronized")
	}
	if flags.IsNative() {
		mods = append(mods, "native")
	}
	return mods
}

// interfaceMethodModifiers marks instance methods with a body as
// default methods.
func interfaceMethodModifiers(flags classfile.AccessFlags, mods []string) []string {
	if flags.IsAbstract() || flags.IsStatic() || flags.IsPrivate() {
		return mods
	}
	out := make([]string, 0, len(mods)+1)
	for _, m := range mods {
		out = append(out, m)
		if m == "public" {
			out = append(out, "default")
		}
	}
	if len(out) == len(mods) {
		out = append([]string{"default"}, out...)
	}
	return out
}
