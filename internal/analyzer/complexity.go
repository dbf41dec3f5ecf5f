// Package analyzer computes cyclomatic complexity and raw line metrics for
// Python source files.
package analyzer

import (
	"errors"
	"math"
	"os"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arvidan/pycx/internal/logging"
	"github.com/arvidan/pycx/internal/models"
	"github.com/arvidan/pycx/internal/parser"
)

// Analyzer computes complexity and raw metrics.
type Analyzer struct {
	parser *parser.Parser
}

// New creates a new analyzer.
func New() *Analyzer {
	return &Analyzer{parser: parser.New()}
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// decisionNodeTypes are AST node types that count as decision points.
// boolean_operator covers and/or; for_in_clause and if_clause cover
// comprehension branches.
var decisionNodeTypes = makeSet([]string{
	"if_statement",
	"elif_clause",
	"while_statement",
	"for_statement",
	"except_clause",
	"conditional_expression",
	"boolean_operator",
	"assert_statement",
	"case_clause",
	"for_in_clause",
	"if_clause",
})

// makeSet converts a slice to a map for O(1) lookups.
func makeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// countDecisionPoints counts branching constructs below node.
func countDecisionPoints(node *sitter.Node, source []byte) int {
	var count int
	parser.WalkTyped(node, source, func(n *sitter.Node, nodeType string, src []byte) bool {
		if decisionNodeTypes[nodeType] {
			count++
		}
		return true
	})
	return count
}

// AnalyzeSource scores every function, method, and class in source.
// Function and method complexity is 1 plus the decision points in the body;
// class complexity is the rounded-up mean of its methods' scores, minimum 1.
func (a *Analyzer) AnalyzeSource(source []byte, path string) ([]models.Block, error) {
	result, err := a.parser.Parse(source, path)
	if err != nil {
		return nil, err
	}

	nodes := parser.Blocks(result)
	blocks := make([]models.Block, 0, len(nodes))

	methodScores := make(map[string][]int)
	for _, n := range nodes {
		if n.Kind == parser.KindClass {
			continue
		}
		score := 1 + countDecisionPoints(n.Body, source)
		b := models.Block{
			Name:       n.Name,
			Type:       models.BlockFunction,
			Complexity: score,
			StartLine:  n.StartLine,
			EndLine:    n.EndLine,
		}
		if n.Kind == parser.KindMethod {
			b.Type = models.BlockMethod
			methodScores[n.ClassName] = append(methodScores[n.ClassName], score)
		}
		blocks = append(blocks, b)
	}

	for _, n := range nodes {
		if n.Kind != parser.KindClass {
			continue
		}
		blocks = append(blocks, models.Block{
			Name:       n.Name,
			Type:       models.BlockClass,
			Complexity: classComplexity(methodScores[n.Name]),
			StartLine:  n.StartLine,
			EndLine:    n.EndLine,
		})
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].StartLine < blocks[j].StartLine
	})

	return blocks, nil
}

// classComplexity is the rounded-up mean of the method scores, minimum 1.
func classComplexity(scores []int) int {
	if len(scores) == 0 {
		return 1
	}
	var total int
	for _, s := range scores {
		total += s
	}
	return int(math.Ceil(float64(total) / float64(len(scores))))
}

// AnalyzeFile reads and scores a file. With includeImports false, top-level
// import statements are stripped before analysis and line numbers refer to
// the stripped text. Read and parse failures are logged and yield an empty
// result rather than an error.
func (a *Analyzer) AnalyzeFile(path string, includeImports bool) []models.Block {
	source, err := os.ReadFile(path)
	if err != nil {
		logReadError(path, err)
		return nil
	}

	if !includeImports {
		source, err = a.parser.StripImports(source)
		if err != nil {
			logAnalysisError(path, err)
			return nil
		}
	}

	blocks, err := a.AnalyzeSource(source, path)
	if err != nil {
		logAnalysisError(path, err)
		return nil
	}
	return blocks
}

func logReadError(path string, err error) {
	if os.IsNotExist(err) {
		logging.Errorf("File not found: %s", path)
		return
	}
	logging.Errorf("An unexpected error occurred: %v", err)
}

func logAnalysisError(path string, err error) {
	if errors.Is(err, parser.ErrSyntax) {
		logging.Errorf("Syntax error in %s", path)
		return
	}
	logging.Errorf("An unexpected error occurred: %v", err)
}
