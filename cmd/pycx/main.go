package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/arvidan/pycx/internal/analyzer"
	"github.com/arvidan/pycx/internal/config"
	"github.com/arvidan/pycx/internal/logging"
	"github.com/arvidan/pycx/internal/models"
	"github.com/arvidan/pycx/internal/output"
	"github.com/arvidan/pycx/internal/progress"
	"github.com/arvidan/pycx/internal/report"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "pycx",
		Usage:     "Cyclomatic complexity and raw metrics for a Python file",
		Version:   version,
		ArgsUsage: "<filepath>",
		Description: `Pycx parses a Python source file and reports cyclomatic complexity per
function, method, and class, flagging blocks above a threshold. Raw line
metrics (sloc, lloc, comments, blank lines) are reported on request.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "threshold",
				Value: 10,
				Usage: "Complexity threshold for warnings; must be positive",
			},
			&cli.BoolFlag{
				Name:  "report-raw",
				Usage: "Also report raw code metrics (lines of code, comments, etc.)",
			},
			&cli.BoolFlag{
				Name:  "include-imports",
				Usage: "Include top-level import statements in the complexity input",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"PYCX_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write report to file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Commands: []*cli.Command{
			initCmd(),
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	logging.SetVerbose(c.Bool("verbose"))

	if c.Args().Len() == 0 {
		return cli.Exit("missing required argument: <filepath>", 2)
	}
	path := c.Args().First()

	cfg := loadConfig(c)

	threshold := cfg.Threshold
	if c.IsSet("threshold") {
		threshold = c.Int("threshold")
	}
	if threshold <= 0 {
		logging.Errorf("Complexity threshold must be a positive integer.")
		return cli.Exit("", 1)
	}

	reportRaw := cfg.Report.Raw || c.Bool("report-raw")
	includeImports := cfg.Report.IncludeImports || c.Bool("include-imports")

	format := output.ParseFormat(cfg.Output.Format)
	if c.IsSet("format") {
		format = output.ParseFormat(c.String("format"))
	}
	outFile := c.String("output")
	colored := cfg.Output.Color && !c.Bool("no-color") &&
		format == output.FormatText && outFile == ""

	a := analyzer.New()
	defer a.Close()

	spin := progress.NewSpinner("Analyzing " + path + "...")
	blocks := a.AnalyzeFile(path, includeImports)
	spin.Tick()

	var raw *models.RawMetrics
	if reportRaw {
		if m, ok := a.RawMetricsFile(path); ok {
			raw = &m
		}
	}
	spin.Finish()

	if len(blocks) == 0 && !reportRaw {
		logging.Infof("No results to display.")
		return nil
	}

	rep, warnings := report.Build(report.Params{
		Path:      path,
		Threshold: threshold,
		Blocks:    blocks,
		Raw:       raw,
		Colored:   colored,
	})
	if rep == nil {
		return nil
	}

	formatter, err := output.NewFormatter(format, outFile, colored)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := formatter.Output(rep); err != nil {
		return err
	}

	if len(warnings) > 0 && formatter.Format() == output.FormatText {
		if colored {
			color.Yellow("Warnings (%d):", len(warnings))
		} else {
			fmt.Fprintf(formatter.Writer(), "Warnings (%d):\n", len(warnings))
		}
		for _, w := range warnings {
			fmt.Fprintf(formatter.Writer(), "  - %s\n", w)
		}
	}

	return nil
}

// loadConfig loads the explicit --config file or searches standard
// locations, falling back to defaults.
func loadConfig(c *cli.Context) *config.Config {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			logging.Errorf("Failed to load config %s: %v", path, err)
			return config.DefaultConfig()
		}
		return cfg
	}
	return config.LoadOrDefault()
}
