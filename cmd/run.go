package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/victorswan/gompsched/internal/team"
	"github.com/victorswan/gompsched/internal/topology"
	"github.com/victorswan/gompsched/internal/utils"
	"github.com/victorswan/gompsched/internal/workshare"
)

var (
	runLB, runUB, runIncr, runChunk int64
	runTeamSize                     int
	runPolicy                       string
	runNoAtomics                    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a single loop once and print each chunk as it is handed out",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Int64Var(&runLB, "lb", 0, "lower bound (inclusive)")
	runCmd.Flags().Int64Var(&runUB, "ub", 1000, "upper bound (exclusive)")
	runCmd.Flags().Int64Var(&runIncr, "incr", 1, "stride")
	runCmd.Flags().Int64Var(&runChunk, "chunk", 0, "chunk size (0 = static one-shot)")
	runCmd.Flags().IntVar(&runTeamSize, "team", 4, "team size")
	runCmd.Flags().StringVar(&runPolicy, "policy", "static", "static|dynamic|guided|adaptive")
	runCmd.Flags().BoolVar(&runNoAtomics, "no-atomics", false, "force the mutex slow path")
	rootCmd.AddCommand(runCmd)
}

func parsePolicy(s string) (workshare.Policy, error) {
	switch s {
	case "static":
		return workshare.Static, nil
	case "dynamic":
		return workshare.Dynamic, nil
	case "guided":
		return workshare.Guided, nil
	case "adaptive":
		return workshare.Adaptive, nil
	default:
		return 0, fmt.Errorf("unknown policy %q", s)
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	policy, err := parsePolicy(runPolicy)
	if err != nil {
		return err
	}

	cfg := workshare.DefaultConfig()
	cfg.HaveAtomics = !runNoAtomics

	var topo topology.Provider = topology.NewSingle(runTeamSize)

	return team.Run(context.Background(), runLB, runUB, runIncr, runChunk, policy, runTeamSize, topo, cfg,
		func(teamID int, start, end int64) {
			fmt.Fprintf(os.Stdout, "worker %d: [%d, %d)\n", teamID, start, end)
			utils.Debug("worker %d consumed %d iterations", teamID, end-start)
		},
	)
}
