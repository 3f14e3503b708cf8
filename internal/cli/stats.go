package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show store statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, cfg, _ := openStore()
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), cfg.ResolveDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	printJSON(cmd.OutOrStdout(), stats)
}
