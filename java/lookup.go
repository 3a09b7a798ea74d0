package java

// Methods returns the declared methods, or with includeInherited also
// the non-private methods of all supertypes that c does not override.
// Inherited methods are views observed through c.
func (c *Class) Methods(includeInherited bool) []*Method {
	if !includeInherited {
		return c.methods
	}
	from := c.ref()
	var out []*Method
	seen := map[string]bool{}
	c.walkHierarchy(func(k *Class) {
		for _, m := range k.methods {
			if k != c && m.IsPrivate() {
				continue
			}
			view := m.viewFrom(from)
			key := m.name + erasedParameterList(view.ParameterTypes(true))
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, view)
		}
	})
	return out
}

// MethodsByName filters Methods by name.
func (c *Class) MethodsByName(name string, includeInherited bool) []*Method {
	var out []*Method
	for _, m := range c.Methods(includeInherited) {
		if m.name == name {
			out = append(out, m)
		}
	}
	return out
}

// walkHierarchy visits c, then its superclass chain and interfaces
// depth first, each class once.
func (c *Class) walkHierarchy(visit func(*Class)) {
	visited := map[string]bool{}
	var walk func(k *Class)
	walk = func(k *Class) {
		if k == nil || visited[k.binary] {
			return
		}
		visited[k.binary] = true
		visit(k)
		if !k.IsInterface() {
			if sup := k.SuperJavaClass(); sup != nil && sup != k {
				walk(sup)
			}
		}
		for _, iface := range k.InterfaceClasses() {
			walk(iface)
		}
	}
	walk(c)
}

// MethodsBySignature finds methods by name and erased parameter types.
// The method declared by c comes first; with includeInherited the first
// match of the superclass and then of each interface follow, as views
// observed through c. varargs must equal the declaration's varargs flag.
func (c *Class) MethodsBySignature(name string, paramTypes []*Type, includeInherited, varargs bool) []*Method {
	return c.methodsBySignature(name, paramTypes, includeInherited, varargs, c.ref(), true, map[string]bool{})
}

// MethodBySignature returns the first of MethodsBySignature, or nil.
func (c *Class) MethodBySignature(name string, paramTypes []*Type, includeInherited, varargs bool) *Method {
	if ms := c.MethodsBySignature(name, paramTypes, includeInherited, varargs); len(ms) > 0 {
		return ms[0]
	}
	return nil
}

// path holds the classes being searched above c, so that a cycle in
// the hierarchy ends the search. A type reached twice through a diamond
// is searched on both branches.
func (c *Class) methodsBySignature(name string, paramTypes []*Type, inherited, varargs bool, from classRef, own bool, path map[string]bool) []*Method {
	if path[c.binary] {
		return nil
	}
	path[c.binary] = true
	defer delete(path, c.binary)

	var out []*Method
	for _, m := range c.methods {
		if !own && m.IsPrivate() {
			continue
		}
		view := m.viewFrom(from)
		if m.signatureMatches(name, view.ParameterTypes(true), paramTypes, varargs) ||
			m.signatureMatches(name, m.declaredParameterTypes(), paramTypes, varargs) {
			out = append(out, view)
			break
		}
	}
	if !inherited {
		return out
	}

	first := func(k *Class) {
		if ms := k.methodsBySignature(name, paramTypes, true, varargs, from, false, path); len(ms) > 0 {
			out = append(out, ms[0])
		}
	}
	if !c.IsInterface() {
		if sup := c.SuperJavaClass(); sup != nil && sup != c {
			first(sup)
		}
	}
	for _, iface := range c.InterfaceClasses() {
		first(iface)
	}
	return out
}

// ConstructorBySignature finds a declared constructor by erased
// parameter types.
func (c *Class) ConstructorBySignature(paramTypes []*Type, varargs bool) *Constructor {
	for _, ctor := range c.constructors {
		if ctor.signatureMatches(ctor.name, ctor.declaredParameterTypes(), paramTypes, varargs) {
			return ctor
		}
	}
	return nil
}

// Fields returns the declared fields, or with includeInherited also the
// non-private fields of supertypes that are not hidden by a field of
// the same name closer to c.
func (c *Class) Fields(includeInherited bool) []*Field {
	if !includeInherited {
		return c.fields
	}
	var out []*Field
	seen := map[string]bool{}
	c.walkHierarchy(func(k *Class) {
		for _, f := range k.fields {
			if (k != c && f.IsPrivate()) || seen[f.name] {
				continue
			}
			seen[f.name] = true
			out = append(out, f)
		}
	})
	return out
}
