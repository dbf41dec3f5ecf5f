package models

// BlockType classifies an analyzed code block.
type BlockType string

const (
	BlockFunction BlockType = "function"
	BlockMethod   BlockType = "method"
	BlockClass    BlockType = "class"
)

// Block represents complexity metrics for a single code block.
// Blocks are ordered by appearance in source.
type Block struct {
	Name       string    `json:"name"`
	Type       BlockType `json:"type"`
	Complexity int       `json:"complexity"`
	StartLine  int       `json:"start_line"`
	EndLine    int       `json:"end_line"`
}

// Exceeds reports whether the block's complexity is strictly above threshold.
func (b Block) Exceeds(threshold int) bool {
	return b.Complexity > threshold
}

// RawMetrics holds line-count statistics for a source file.
//
// SLOC excludes blank lines, comment-only lines, and lines covered by
// multi-line string statements; Comments counts every line that carries a
// comment, including trailing comments on code lines.
type RawMetrics struct {
	LOC            int `json:"loc" toml:"loc"`
	SLOC           int `json:"sloc" toml:"sloc"`
	LLOC           int `json:"lloc" toml:"lloc"`
	Comments       int `json:"comments" toml:"comments"`
	Multi          int `json:"multi" toml:"multi"`
	Blank          int `json:"blank" toml:"blank"`
	SingleComments int `json:"single_comments" toml:"single_comments"`
}

// IsZero reports whether no metric was recorded.
func (m RawMetrics) IsZero() bool {
	return m == RawMetrics{}
}

// Items returns the metrics as ordered name/value pairs for rendering.
func (m RawMetrics) Items() []RawItem {
	return []RawItem{
		{"loc", m.LOC},
		{"sloc", m.SLOC},
		{"lloc", m.LLOC},
		{"comments", m.Comments},
		{"multi", m.Multi},
		{"blank", m.Blank},
		{"single_comments", m.SingleComments},
	}
}

// RawItem is a single named raw metric.
type RawItem struct {
	Name  string
	Value int
}

// Analysis is the full result for one file, serialized for structured output.
type Analysis struct {
	Path      string      `json:"path"`
	Threshold int         `json:"threshold"`
	Blocks    []Block     `json:"blocks"`
	Raw       *RawMetrics `json:"raw,omitempty"`
	Summary   Summary     `json:"summary"`
}

// Summary provides aggregate statistics over the analyzed blocks.
type Summary struct {
	TotalBlocks    int     `json:"total_blocks"`
	MeanComplexity float64 `json:"mean_complexity"`
	MaxComplexity  int     `json:"max_complexity"`
	OverThreshold  int     `json:"over_threshold"`
}
