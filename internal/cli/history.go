package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mkravets/factlens/internal/store"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent fact-check runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		s, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		entries, err := s.ListRecent(context.Background(), historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RUN ID\tWHEN\tSCORE\tCONFIDENCE\tARTICLE")
		for _, e := range entries {
			score := "unverifiable"
			if e.OverallScore != nil {
				score = fmt.Sprintf("%.1f", *e.OverallScore)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.RunID, e.GeneratedAt.Format("2006-01-02 15:04"), score, e.ConfidenceLevel, e.ArticleURL)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum runs to list")
}
