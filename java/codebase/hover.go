package codebase

import (
	"strings"

	"github.com/dhamidi/javamodel/format"
	"github.com/dhamidi/javamodel/java"
	"github.com/dhamidi/javamodel/java/parser"
)

// ClassAt returns the class named by the type under the 0-based line and
// column, resolved in the scope of the class around it.
func (c *Codebase) ClassAt(path string, line, col int) *java.Class {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	name, encl, ok := parser.NameAt(f.Content, parser.Offset(f.Content, line, col))
	if !ok {
		return nil
	}
	return c.resolve(f.Source, encl, name)
}

// Hover describes the class under the position as markdown: its
// declaration, where it comes from and its doc comment.
func (c *Codebase) Hover(path string, line, col int) string {
	cls := c.ClassAt(path, line, col)
	if cls == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("```java\n")
	if pkg := cls.PackageName(); pkg != "" {
		sb.WriteString("package ")
		sb.WriteString(pkg)
		sb.WriteString(";\n")
	}
	sb.WriteString(format.Declaration(cls))
	sb.WriteString("\n```\n")
	if src := cls.Source(); src != nil {
		sb.WriteString("\nDefined in `")
		sb.WriteString(src.URL())
		sb.WriteString("`\n")
	}
	if doc := strings.TrimSpace(cls.Comment()); doc != "" {
		sb.WriteString("\n")
		sb.WriteString(doc)
		sb.WriteString("\n")
	}
	return sb.String()
}
