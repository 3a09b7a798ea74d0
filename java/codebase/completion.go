package codebase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/javamodel/java"
	"github.com/dhamidi/javamodel/java/parser"
)

type CompletionKind int

const (
	CompletionKindMethod CompletionKind = iota
	CompletionKindField
	CompletionKindClass
)

type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
}

// CompletionsAtPoint lists the members that can follow the dot before
// the 0-based line and column in the document at path. For a variable
// the members of its declared type are offered; for a class name its
// static members and nested classes.
func (c *Codebase) CompletionsAtPoint(path string, line, col int) []CompletionItem {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	recv, ok := parser.ReceiverAt(f.Content, parser.Offset(f.Content, line, col))
	if !ok {
		return nil
	}

	if recv.Type != nil && recv.Type.Dims > 0 {
		return arrayCompletions()
	}
	static := recv.Type == nil
	name := recv.Name
	if !static {
		name = recv.Type.Name
	}
	cls := c.resolve(f.Source, recv.Class, name)
	if cls == nil {
		c.log.Debugf("no class for receiver %q", recv.Name)
		return nil
	}

	var from *java.Class
	if f.Source != nil {
		from = c.enclosing(f.Source, recv.Class)
	}
	return memberCompletions(cls, from, static)
}

func arrayCompletions() []CompletionItem {
	return []CompletionItem{
		{Label: "length", Kind: CompletionKindField, Detail: "int", InsertText: "length"},
		{Label: "clone", Kind: CompletionKindMethod, Detail: "Object clone()", InsertText: "clone()"},
	}
}

func memberCompletions(cls, from *java.Class, static bool) []CompletionItem {
	var items []CompletionItem
	for _, f := range cls.Fields(true) {
		if static && !f.IsStatic() || !accessible(f.DeclaringClass(), f.IsPrivate(), from) {
			continue
		}
		items = append(items, CompletionItem{
			Label:      f.Name(),
			Kind:       CompletionKindField,
			Detail:     f.Type().GenericValue(),
			InsertText: f.Name(),
		})
	}

	for _, m := range cls.Methods(true) {
		if static && !m.IsStatic() || !accessible(m.DeclaringClass(), m.IsPrivate(), from) {
			continue
		}
		items = append(items, CompletionItem{
			Label:      m.Name(),
			Kind:       CompletionKindMethod,
			Detail:     m.DeclarationSignature(false),
			InsertText: formatMethodInsert(m),
		})
	}

	if static {
		for _, n := range cls.NestedClasses() {
			if n.IsAnonymous() || !accessible(cls, n.IsPrivate(), from) {
				continue
			}
			items = append(items, CompletionItem{
				Label:      n.Name(),
				Kind:       CompletionKindClass,
				Detail:     n.FullyQualifiedName(),
				InsertText: n.Name(),
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Kind != items[j].Kind {
			return items[i].Kind > items[j].Kind
		}
		return items[i].Label < items[j].Label
	})
	return items
}

// accessible hides private members unless the completion happens inside
// the same top-level class as their declaration.
func accessible(owner *java.Class, private bool, from *java.Class) bool {
	if !private {
		return true
	}
	if from == nil || owner == nil {
		return false
	}
	return outermost(owner.BinaryName()) == outermost(from.BinaryName())
}

func outermost(binary string) string {
	name, _, _ := strings.Cut(binary, "$")
	return name
}

func formatMethodInsert(m *java.Method) string {
	params := m.Parameters()
	if len(params) == 0 {
		return m.Name() + "()"
	}
	var args []string
	for i, p := range params {
		args = append(args, fmt.Sprintf("${%d:%s}", i+1, p.Name()))
	}
	return m.Name() + "(" + strings.Join(args, ", ") + ")"
}
