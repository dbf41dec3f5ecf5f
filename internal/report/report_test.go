package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvidan/pycx/internal/models"
)

func block(name string, complexity, start, end int) models.Block {
	return models.Block{
		Name:       name,
		Type:       models.BlockFunction,
		Complexity: complexity,
		StartLine:  start,
		EndLine:    end,
	}
}

func TestBuild_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		name         string
		complexity   int
		wantWarnings int
	}{
		{"below threshold", 9, 0},
		{"at threshold", 10, 0},
		{"above threshold", 11, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, warnings := Build(Params{
				Path:      "app.py",
				Threshold: 10,
				Blocks:    []models.Block{block("f", tt.complexity, 1, 5)},
			})
			require.NotNil(t, rep)
			assert.Len(t, warnings, tt.wantWarnings)
		})
	}
}

func TestBuild_WarningContent(t *testing.T) {
	rep, warnings := Build(Params{
		Path:      "app.py",
		Threshold: 10,
		Blocks:    []models.Block{block("heavy", 12, 3, 40)},
	})
	require.NotNil(t, rep)
	require.Len(t, warnings, 1)
	assert.Equal(t, "heavy (lines 3-40): complexity 12 exceeds threshold 10", warnings[0])
}

func TestBuild_TextRender(t *testing.T) {
	raw := models.RawMetrics{LOC: 10, SLOC: 7, LLOC: 6, Blank: 3}
	rep, _ := Build(Params{
		Path:      "app.py",
		Threshold: 10,
		Blocks: []models.Block{
			block("f", 2, 1, 4),
			block("g", 12, 6, 30),
		},
		Raw: &raw,
	})
	require.NotNil(t, rep)

	var buf bytes.Buffer
	require.NoError(t, rep.RenderText(&buf, false))
	out := buf.String()

	assert.Contains(t, out, "Complexity Analysis for app.py")
	assert.Contains(t, out, "f")
	assert.Contains(t, out, "1-4")
	assert.Contains(t, out, "6-30")
	assert.Contains(t, out, "Raw Metrics")
	assert.Contains(t, out, "sloc")
}

func TestBuild_RawOnly(t *testing.T) {
	raw := models.RawMetrics{LOC: 3, SLOC: 3, LLOC: 2}
	rep, warnings := Build(Params{Path: "app.py", Threshold: 10, Raw: &raw})
	require.NotNil(t, rep)
	assert.Empty(t, warnings)
	require.Len(t, rep.Sections, 1)

	var buf bytes.Buffer
	require.NoError(t, rep.RenderText(&buf, false))
	assert.Contains(t, buf.String(), "Raw Metrics")
	assert.NotContains(t, buf.String(), "Complexity Analysis")
}

func TestBuild_NothingToShow(t *testing.T) {
	rep, warnings := Build(Params{Path: "app.py", Threshold: 10})
	assert.Nil(t, rep)
	assert.Empty(t, warnings)
}

func TestSummarize(t *testing.T) {
	blocks := []models.Block{
		block("a", 2, 1, 2),
		block("b", 4, 3, 4),
		block("c", 12, 5, 9),
	}
	s := summarize(blocks, 10)

	assert.Equal(t, 3, s.TotalBlocks)
	assert.Equal(t, 12, s.MaxComplexity)
	assert.Equal(t, 1, s.OverThreshold)
	assert.InDelta(t, 6.0, s.MeanComplexity, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	s := summarize(nil, 10)
	assert.Zero(t, s.TotalBlocks)
	assert.Zero(t, s.MaxComplexity)
	assert.Zero(t, s.MeanComplexity)
}

func TestBuild_MarkdownRender(t *testing.T) {
	rep, _ := Build(Params{
		Path:      "app.py",
		Threshold: 10,
		Blocks:    []models.Block{block("f", 2, 1, 4)},
	})
	require.NotNil(t, rep)

	var buf bytes.Buffer
	require.NoError(t, rep.RenderMarkdown(&buf))
	lines := strings.Split(buf.String(), "\n")
	assert.Contains(t, lines[0], "## Complexity Analysis for app.py")
}
