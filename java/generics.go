package java

// substitute rewrites t, written in a member of decl, as it reads from
// the subclass from. Type variables of decl are replaced by the actual
// arguments found along the extends/implements edges between from and
// decl. A variable with no binding anywhere on the path is left as is,
// so its fully-qualified name stays the erasure.
func substitute(t *Type, decl, from *Class) *Type {
	if t == nil {
		return nil
	}
	switch t.kind {
	case TypeKindVariable:
		idx := typeParameterIndex(decl.typeParams, t.variable)
		if idx < 0 {
			return t
		}
		actual := rebind(decl, idx, from, map[string]bool{})
		if actual == nil {
			return t
		}
		if t.dims > 0 {
			return actual.withDims(actual.dims + t.dims)
		}
		return actual
	case TypeKindWildcard:
		if t.bound == nil {
			return t
		}
		return newWildcardType(t.scope.lib, t.boundKind, substitute(t.bound, decl, from))
	}
	if len(t.args) == 0 {
		return t
	}
	args := make([]*Type, len(t.args))
	for i, a := range t.args {
		args[i] = substitute(a, decl, from)
	}
	return t.copyWith(args, t.dims)
}

// rebind finds the actual argument bound to decl's idx-th type
// parameter when seen from the class from. The result is expressed in
// from's own terms: it may still be one of from's type variables. It
// is nil when from does not reach decl or reaches it through a raw type.
func rebind(decl *Class, idx int, from *Class, visited map[string]bool) *Type {
	if visited[from.binary] {
		return nil
	}
	visited[from.binary] = true

	for _, edge := range supertypeEdges(from) {
		ec := edge.Class()
		if ec == nil || ec.stub {
			continue
		}
		if ec.Equal(decl) {
			if idx < len(edge.args) {
				return edge.args[idx]
			}
			return nil
		}
		inner := rebind(decl, idx, ec, visited)
		if inner == nil {
			continue
		}
		return bindVariables(inner, ec, edge)
	}
	return nil
}

// supertypeEdges lists the declared superclass followed by the
// interfaces, in declaration order.
func supertypeEdges(c *Class) []*Type {
	var edges []*Type
	if sup := c.SuperClass(); sup != nil {
		edges = append(edges, sup)
	}
	return append(edges, c.Interfaces()...)
}

// bindVariables replaces the type variables of class owner appearing in
// t with the arguments given to owner by edge.
func bindVariables(t *Type, owner *Class, edge *Type) *Type {
	switch t.kind {
	case TypeKindVariable:
		i := typeParameterIndex(owner.typeParams, t.variable)
		if i < 0 || i >= len(edge.args) {
			return t
		}
		bound := edge.args[i]
		if t.dims > 0 {
			return bound.withDims(bound.dims + t.dims)
		}
		return bound
	case TypeKindWildcard:
		if t.bound == nil {
			return t
		}
		return newWildcardType(t.scope.lib, t.boundKind, bindVariables(t.bound, owner, edge))
	}
	if len(t.args) == 0 {
		return t
	}
	args := make([]*Type, len(t.args))
	for i, a := range t.args {
		args[i] = bindVariables(a, owner, edge)
	}
	return t.copyWith(args, t.dims)
}
