// Package report assembles the complexity and raw-metric report.
package report

import (
	"fmt"

	"github.com/fatih/color"
	"gonum.org/v1/gonum/stat"

	"github.com/arvidan/pycx/internal/models"
	"github.com/arvidan/pycx/internal/output"
)

// Params describes one report.
type Params struct {
	Path      string
	Threshold int
	Blocks    []models.Block
	Raw       *models.RawMetrics
	Colored   bool
}

// Build assembles the renderable report plus one warning line per block
// whose complexity strictly exceeds the threshold. Returns nil when there
// is nothing to show.
func Build(p Params) (*output.Report, []string) {
	analysis := models.Analysis{
		Path:      p.Path,
		Threshold: p.Threshold,
		Blocks:    p.Blocks,
		Raw:       p.Raw,
		Summary:   summarize(p.Blocks, p.Threshold),
	}

	rep := &output.Report{Data: analysis}
	var warnings []string

	if len(p.Blocks) > 0 {
		rows := make([][]string, 0, len(p.Blocks))
		for _, b := range p.Blocks {
			cx := fmt.Sprintf("%d", b.Complexity)
			if b.Exceeds(p.Threshold) {
				if p.Colored {
					cx = color.RedString("%d", b.Complexity)
				}
				warnings = append(warnings, fmt.Sprintf("%s (lines %d-%d): complexity %d exceeds threshold %d",
					b.Name, b.StartLine, b.EndLine, b.Complexity, p.Threshold))
			}
			rows = append(rows, []string{
				b.Name,
				string(b.Type),
				fmt.Sprintf("%d-%d", b.StartLine, b.EndLine),
				cx,
			})
		}

		rep.Sections = append(rep.Sections, &output.Table{
			Title:   fmt.Sprintf("Complexity Analysis for %s", p.Path),
			Headers: []string{"Block", "Type", "Lines", "Complexity"},
			Rows:    rows,
			Footer: []string{
				fmt.Sprintf("Blocks: %d", analysis.Summary.TotalBlocks),
				"",
				fmt.Sprintf("Mean: %.1f", analysis.Summary.MeanComplexity),
				fmt.Sprintf("Max: %d", analysis.Summary.MaxComplexity),
			},
		})
	}

	if p.Raw != nil {
		rows := make([][]string, 0, 7)
		for _, item := range p.Raw.Items() {
			rows = append(rows, []string{item.Name, fmt.Sprintf("%d", item.Value)})
		}
		rep.Sections = append(rep.Sections, &output.Table{
			Title:   "Raw Metrics",
			Headers: []string{"Metric", "Value"},
			Rows:    rows,
		})
	}

	if len(rep.Sections) == 0 {
		return nil, nil
	}
	return rep, warnings
}

// summarize computes aggregate statistics over the blocks.
func summarize(blocks []models.Block, threshold int) models.Summary {
	s := models.Summary{TotalBlocks: len(blocks)}
	if len(blocks) == 0 {
		return s
	}

	scores := make([]float64, len(blocks))
	for i, b := range blocks {
		scores[i] = float64(b.Complexity)
		if b.Complexity > s.MaxComplexity {
			s.MaxComplexity = b.Complexity
		}
		if b.Exceeds(threshold) {
			s.OverThreshold++
		}
	}
	s.MeanComplexity = stat.Mean(scores, nil)
	return s
}
