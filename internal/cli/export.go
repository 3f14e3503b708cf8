package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export messages as JSON",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, _, _ := openStore()
	defer s.Close()

	messages, err := s.Export(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	printMessages(cmd.OutOrStdout(), messages)
}
