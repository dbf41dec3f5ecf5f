package analyzer

import (
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arvidan/pycx/internal/models"
	"github.com/arvidan/pycx/internal/parser"
)

// llocNodeTypes are node types counted as one logical line each: simple
// statements plus compound statement headers and clauses.
var llocNodeTypes = makeSet([]string{
	"expression_statement",
	"return_statement",
	"pass_statement",
	"break_statement",
	"continue_statement",
	"import_statement",
	"import_from_statement",
	"future_import_statement",
	"raise_statement",
	"assert_statement",
	"global_statement",
	"nonlocal_statement",
	"delete_statement",
	"if_statement",
	"elif_clause",
	"else_clause",
	"for_statement",
	"while_statement",
	"with_statement",
	"try_statement",
	"except_clause",
	"finally_clause",
	"function_definition",
	"class_definition",
	"match_statement",
	"case_clause",
})

// RawMetrics computes line-count metrics for source. Lines covered by
// docstrings (string expression statements) count toward Multi; remaining
// lines are classified as blank, comment-only, or source. Comments counts
// every line carrying a comment token, trailing comments included.
func (a *Analyzer) RawMetrics(source []byte, path string) (models.RawMetrics, error) {
	result, err := a.parser.Parse(source, path)
	if err != nil {
		return models.RawMetrics{}, err
	}

	lines := splitLines(source)
	m := models.RawMetrics{LOC: len(lines)}

	commentRows := make(map[int]bool)
	multiRows := make(map[int]bool)

	parser.WalkTyped(result.Tree.RootNode(), source, func(n *sitter.Node, nodeType string, src []byte) bool {
		switch nodeType {
		case "comment":
			commentRows[int(n.StartPoint().Row)] = true
		case "expression_statement":
			if n.NamedChildCount() == 1 && n.NamedChild(0).Type() == "string" {
				str := n.NamedChild(0)
				for row := int(str.StartPoint().Row); row <= int(str.EndPoint().Row); row++ {
					multiRows[row] = true
				}
			}
		}
		if llocNodeTypes[nodeType] {
			m.LLOC++
		}
		return true
	})

	m.Comments = len(commentRows)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case multiRows[i]:
			m.Multi++
		case trimmed == "":
			m.Blank++
		case strings.HasPrefix(trimmed, "#"):
			m.SingleComments++
		}
	}
	m.SLOC = m.LOC - m.Blank - m.Multi - m.SingleComments

	return m, nil
}

// RawMetricsFile computes raw metrics for a file. The original source is
// analyzed, never the import-stripped form. Failures are logged and reported
// via the second return value instead of terminating the run.
func (a *Analyzer) RawMetricsFile(path string) (models.RawMetrics, bool) {
	source, err := os.ReadFile(path)
	if err != nil {
		logReadError(path, err)
		return models.RawMetrics{}, false
	}

	m, err := a.RawMetrics(source, path)
	if err != nil {
		logAnalysisError(path, err)
		return models.RawMetrics{}, false
	}
	return m, true
}

// splitLines splits source into lines, ignoring the empty segment after a
// trailing newline.
func splitLines(source []byte) []string {
	lines := strings.Split(string(source), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
