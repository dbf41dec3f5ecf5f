package parser

import sitter "github.com/smacker/go-tree-sitter"

// importNodeTypes are the statement types removed by StripImports.
var importNodeTypes = map[string]bool{
	"import_statement":        true,
	"import_from_statement":   true,
	"future_import_statement": true,
}

// StripImports removes every top-level import statement from source and
// returns the re-rendered text. Imports nested inside functions, classes,
// or branches are left untouched. Source with no top-level imports is
// returned unchanged. Returns ErrSyntax when the source does not parse.
func (p *Parser) StripImports(source []byte) ([]byte, error) {
	result, err := p.Parse(source, "")
	if err != nil {
		return nil, err
	}

	type span struct{ start, end int }
	var spans []span

	root := result.Tree.RootNode()
	for i := range int(root.ChildCount()) {
		child := root.Child(i)
		if importNodeTypes[child.Type()] {
			start, end := cutSpan(source, child)
			spans = append(spans, span{start, end})
		}
	}

	if len(spans) == 0 {
		return source, nil
	}

	stripped := make([]byte, 0, len(source))
	prev := 0
	for _, s := range spans {
		stripped = append(stripped, source[prev:s.start]...)
		prev = s.end
	}
	stripped = append(stripped, source[prev:]...)
	return stripped, nil
}

// cutSpan widens a statement's byte range for deletion. A statement alone on
// its line takes the whole line with it; one followed by a semicolon
// separator consumes the separator instead.
func cutSpan(source []byte, node *sitter.Node) (int, int) {
	start := int(node.StartByte())
	end := int(node.EndByte())

	lineStart := start
	for lineStart > 0 && source[lineStart-1] != '\n' {
		lineStart--
	}
	aloneOnLine := true
	for i := lineStart; i < start; i++ {
		if source[i] != ' ' && source[i] != '\t' {
			aloneOnLine = false
			break
		}
	}

	e := end
	for e < len(source) && (source[e] == ' ' || source[e] == '\t') {
		e++
	}
	if e < len(source) && source[e] == ';' {
		e++
		for e < len(source) && (source[e] == ' ' || source[e] == '\t') {
			e++
		}
		return start, e
	}

	if aloneOnLine {
		if e < len(source) && source[e] == '\n' {
			return lineStart, e + 1
		}
		return lineStart, e
	}
	return start, end
}
