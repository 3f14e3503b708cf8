package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/message-board/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a message",
		Long:  "Delete the first stored message with the given text and timestamp. Deleting a missing message is not an error.",
		Run:   runRm,
	}

	cmd.Flags().StringP("text", "t", "", "Message text (required)")
	cmd.Flags().String("timestamp", "", "Message timestamp, YYYY-MM-DD HH:MM:SS (required)")

	cmd.MarkFlagRequired("text")
	cmd.MarkFlagRequired("timestamp")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	text, _ := cmd.Flags().GetString("text")
	timestamp, _ := cmd.Flags().GetString("timestamp")

	s, _, _ := openStore()
	defer s.Close()

	task := s.Delete(cmd.Context(), model.Message{Text: text, Timestamp: timestamp})
	if err := task.Wait(cmd.Context()); err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"deleted":%t,"key":%q}`+"\n", task.Key() != "", task.Key())
}
