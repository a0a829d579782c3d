package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/victorswan/gompsched/internal/bench"
)

var listDBPath string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list persisted benchmark runs",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listDBPath, "db", defaultDBPath(), "sqlite database path for run history")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	bench.Configure(listDBPath)

	runs, err := bench.ListRuns()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("no runs recorded yet")
		return nil
	}

	for _, r := range runs {
		created := time.Unix(r.CreatedAt, 0).Format(time.RFC3339)
		fmt.Printf("%s  %-10s team=%-3d range=[%d,%d)/%d  imbalance=%.2fx  took=%s  %s\n",
			r.ID, r.Policy, r.TeamSize, r.LB, r.UB, r.Incr, r.ImbalanceRatio,
			time.Duration(r.DurationNS), created,
		)
	}
	return nil
}
