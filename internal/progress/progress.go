// Package progress shows a stderr spinner while analysis runs.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Spinner wraps a progress spinner for operations with unknown duration.
type Spinner struct {
	bar *progressbar.ProgressBar
}

// NewSpinner creates a spinner with the given label.
func NewSpinner(label string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	return &Spinner{bar: bar}
}

// Tick advances the spinner.
func (s *Spinner) Tick() {
	s.bar.Add(1)
}

// Finish clears the spinner completely.
func (s *Spinner) Finish() {
	s.bar.Finish()
	s.bar.Clear()
}
