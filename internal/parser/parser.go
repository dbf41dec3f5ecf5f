// Package parser wraps tree-sitter for Python source analysis.
package parser

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax indicates the source did not parse cleanly.
var ErrSyntax = errors.New("syntax error")

// Parser parses Python source files.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed AST and its source.
type ParseResult struct {
	Tree   *sitter.Tree
	Source []byte
	Path   string
}

// New creates a new Python parser.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses source text. Returns ErrSyntax when the resulting tree
// contains error nodes.
func (p *Parser) Parse(source []byte, path string) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if tree.RootNode().HasError() {
		return nil, fmt.Errorf("%s: %w", path, ErrSyntax)
	}

	return &ParseResult{
		Tree:   tree,
		Source: source,
		Path:   path,
	}, nil
}

// ParseFile reads and parses a source file.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.Parse(source, path)
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// TypedNodeVisitor visits AST nodes with pre-cached node type to avoid
// repeated CGO calls.
type TypedNodeVisitor func(node *sitter.Node, nodeType string, source []byte) bool

// WalkTyped traverses the AST with cached node types. Returning false from
// the visitor stops descent into that subtree.
func WalkTyped(node *sitter.Node, source []byte, visitor TypedNodeVisitor) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	if !visitor(node, nodeType, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		WalkTyped(node.Child(i), source, visitor)
	}
}

// GetNodeText extracts the source text for a node.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}

// BlockKind classifies an extracted block.
type BlockKind int

const (
	KindFunction BlockKind = iota
	KindMethod
	KindClass
)

// BlockNode represents a function, method, or class definition.
type BlockNode struct {
	Name      string
	Kind      BlockKind
	ClassName string // enclosing class for methods
	StartLine int
	EndLine   int
	Body      *sitter.Node
}

// Blocks extracts all function, method, and class definitions in source
// order. Methods are named Class.method after their nearest enclosing class;
// functions nested inside other functions are reported as plain functions.
func Blocks(result *ParseResult) []BlockNode {
	var blocks []BlockNode
	collectBlocks(result.Tree.RootNode(), result.Source, "", &blocks)
	return blocks
}

func collectBlocks(node *sitter.Node, source []byte, className string, out *[]BlockNode) {
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		switch child.Type() {
		case "function_definition":
			name := GetNodeText(child.ChildByFieldName("name"), source)
			b := BlockNode{
				Name:      name,
				Kind:      KindFunction,
				StartLine: int(child.StartPoint().Row) + 1,
				EndLine:   int(child.EndPoint().Row) + 1,
				Body:      child.ChildByFieldName("body"),
			}
			if className != "" {
				b.Kind = KindMethod
				b.ClassName = className
				b.Name = className + "." + name
			}
			*out = append(*out, b)
			// Definitions nested in a function body are closures, not methods.
			collectBlocks(child, source, "", out)
		case "class_definition":
			name := GetNodeText(child.ChildByFieldName("name"), source)
			*out = append(*out, BlockNode{
				Name:      name,
				Kind:      KindClass,
				StartLine: int(child.StartPoint().Row) + 1,
				EndLine:   int(child.EndPoint().Row) + 1,
				Body:      child.ChildByFieldName("body"),
			})
			collectBlocks(child, source, name, out)
		default:
			collectBlocks(child, source, className, out)
		}
	}
}
