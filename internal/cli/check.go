package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkravets/factlens/internal/pipeline"
	"github.com/mkravets/factlens/internal/store"
)

var (
	outJSON      string
	outMD        string
	checkTimeout time.Duration
	maxSources   int
	maxQueries   int
	noCache      bool
	noFooter     bool
	noSave       bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Fact-check a single article",
	Long: `Check runs the full analysis for one article:
- Fetch the article and extract its fact hierarchy
- Build prioritized search queries from the most important facts
- Discover, fetch and compare corroborating sources
- Aggregate per-source agreement into a weighted accuracy score

Example:
  factlens check https://example.com/news/article
  factlens check https://example.com/news/article --json report.json --md report.md
  factlens check https://example.com/news/article --max-sources 5`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout summary only)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "overall analysis timeout")
	checkCmd.Flags().IntVar(&maxSources, "max-sources", 0, "cap on sources to analyze (0 = config default)")
	checkCmd.Flags().IntVar(&maxQueries, "max-queries", 0, "cap on search queries (0 = config default)")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable fetch cache (force fresh fetches)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the report to history")
}

func runCheck(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if maxSources > 0 {
		cfg.Analysis.MaxSources = maxSources
	}
	if maxQueries > 0 {
		cfg.Analysis.MaxQueries = maxQueries
	}
	cfg.Output.IncludeFooter = !noFooter

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n\n", url)
	}

	report, err := p.AnalyzeURL(ctx, url)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", url, err)
	}

	if !noSave {
		if s, err := store.Open(cfg.Store.Path); err == nil {
			if err := s.SaveReport(ctx, report); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save report: %v\n", err)
			}
			_ = s.Close()
		} else {
			fmt.Fprintf(os.Stderr, "Warning: failed to open history store: %v\n", err)
		}
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report)
	return nil
}
