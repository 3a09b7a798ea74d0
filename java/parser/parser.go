// Package parser reads Java source with tree-sitter and replays the
// declarations it finds onto a java.Builder.
//
// Only declarations are modeled. Method, constructor and initializer
// bodies are kept as raw text; local and anonymous classes inside them
// are not visited.
package parser

import (
	"fmt"

	"github.com/dhamidi/javamodel/java"
	"github.com/tliron/commonlog"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

var language = sitter.NewLanguage(tree_sitter_java.Language())

type Option func(*Parser)

// WithoutBodies drops the raw text of method, constructor and
// initializer bodies.
func WithoutBodies() Option {
	return func(p *Parser) {
		p.skipBodies = true
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser implements java.SourceParser. Each Parse call uses its own
// tree-sitter parser, so one Parser may serve concurrent calls.
type Parser struct {
	log        commonlog.Logger
	skipBodies bool
}

var _ java.SourceParser = (*Parser)(nil)

func New(opts ...Option) *Parser {
	p := &Parser{log: commonlog.GetLogger("javamodel.parser")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds one compilation unit. Sources with syntax errors yield a
// *java.ParseError and leave the Builder without a finished Source.
func (p *Parser) Parse(b *java.Builder, content []byte, url string) error {
	tree, err := parseTree(content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", url, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		perr := syntaxError(root, content, url)
		p.log.Debugf("%s", perr)
		return perr
	}

	if err := b.BeginSource(url); err != nil {
		return err
	}
	w := &walker{b: b, src: content, skipBodies: p.skipBodies, log: p.log}
	if err := w.program(root); err != nil {
		return fmt.Errorf("build %s: %w", url, err)
	}
	_, err = b.EndSource()
	return err
}

func parseTree(content []byte) (*sitter.Tree, error) {
	ts := sitter.NewParser()
	defer ts.Close()
	if err := ts.SetLanguage(language); err != nil {
		return nil, err
	}
	tree := ts.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("no syntax tree")
	}
	return tree, nil
}

// syntaxError reports the first error or missing node in document order.
func syntaxError(root *sitter.Node, src []byte, url string) *java.ParseError {
	bad := firstError(root)
	if bad == nil {
		bad = root
	}
	pos := bad.StartPosition()
	perr := &java.ParseError{
		Line:   int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
		Source: url,
	}
	switch {
	case bad.IsMissing():
		perr.Message = fmt.Sprintf("missing %q", bad.Kind())
	case bad.IsError():
		text := bad.Utf8Text(src)
		if len(text) > 20 {
			text = text[:20] + "..."
		}
		perr.Message = fmt.Sprintf("unexpected %q", text)
	default:
		perr.Message = "syntax error"
	}
	return perr
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if found := firstError(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}
