package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkravets/factlens/internal/pipeline"
	"github.com/mkravets/factlens/internal/store"
	"github.com/mkravets/factlens/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Fact-check multiple articles from a file in parallel",
	Long: `Batch reads article URLs from a file (one per line, #-comments allowed)
and runs a full analysis for each, in parallel. Every article gets its
own JSON and Markdown report in the output directory.

Example:
  factlens batch urls.txt
  factlens batch urls.txt --concurrency 4 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent analyses")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./factlens-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for the batch")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable fetch cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist reports to history")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.IncludeFooter = !noFooter

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	var history *store.Store
	if !noSave {
		if history, err = store.Open(cfg.Store.Path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history store unavailable: %v\n", err)
			history = nil
		} else {
			defer func() { _ = history.Close() }()
		}
	}

	runner := worker.NewBatchRunner(p, concurrency)
	results, err := runner.RunFile(ctx, file)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	succeeded, failed := 0, 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", res.URL, res.Error)
			continue
		}
		succeeded++

		if history != nil {
			if err := history.SaveReport(ctx, res.Report); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save %s: %v\n", res.URL, err)
			}
		}

		slug := sanitizeFilename(res.URL)
		if err := renderer.RenderJSON(res.Report, filepath.Join(outputDir, slug+".json")); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write JSON: %v\n", res.URL, err)
			continue
		}
		if err := renderer.RenderMarkdown(res.Report, filepath.Join(outputDir, slug+".md")); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write Markdown: %v\n", res.URL, err)
			continue
		}

		if s, ok := res.Report.DisplayScore(); ok {
			fmt.Fprintf(os.Stderr, "OK   %s (%.1f/100, %s)\n", res.URL, s, res.Report.ConfidenceLevel)
		} else {
			fmt.Fprintf(os.Stderr, "OK   %s (unverifiable)\n", res.URL)
		}
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d total, %d succeeded, %d failed. Reports in %s\n",
		len(results), succeeded, failed, outputDir)
	return nil
}

// sanitizeFilename reduces a URL to a filesystem-safe slug
func sanitizeFilename(rawURL string) string {
	s := rawURL
	for _, prefix := range []string{"https://", "http://"} {
		s = strings.TrimPrefix(s, prefix)
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", "&", "_", "=", "_")
	s = replacer.Replace(s)
	s = strings.Trim(s, "._")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}
	return s
}
