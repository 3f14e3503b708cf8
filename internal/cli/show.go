package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show [draft]",
		Short: "Display a draft on its own screen",
		Run: func(cmd *cobra.Command, args []string) {
			renderDraft(cmd.OutOrStdout(), draftText(args))
		},
	}

	RootCmd.AddCommand(cmd)
}

// draftText joins args, or returns the placeholder when none were given.
func draftText(args []string) string {
	if len(args) == 0 {
		return noDraft
	}
	return strings.Join(args, " ")
}
