package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/message-board/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import messages from JSON",
		Long:  "Import messages from JSON on stdin. Expects the format produced by export.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var messages []model.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		exitErr("parse json", err)
	}

	s, _, _ := openStore()
	defer s.Close()

	imported, err := s.Import(cmd.Context(), messages)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
}
