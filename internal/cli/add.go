package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/message-board/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a message",
		Long:  "Add a message stamped with the current local time. Text can be a positional arg or piped via stdin.",
		Run:   runAdd,
	}

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	// Get text: positional arg first, then check stdin
	var text string
	var given bool
	if len(args) > 0 {
		text = strings.Join(args, " ")
		given = true
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			text = strings.TrimRight(string(b), "\r\n")
			given = true
		}
	}

	if !given {
		exitErr("add", fmt.Errorf("text is required (positional arg or stdin)"))
	}

	s, _, log := openStore()
	defer s.Close()

	m := model.NewMessage(text, time.Now())
	if strings.Contains(text, "|") {
		log.Warn("Message text contains '|' and will be dropped when reloaded", "timestamp", m.Timestamp)
	}

	task := s.Save(cmd.Context(), m)
	if err := task.Wait(cmd.Context()); err != nil {
		exitErr("add", err)
	}

	printJSON(cmd.OutOrStdout(), struct {
		Key string `json:"key"`
		model.Message
	}{Key: task.Key(), Message: m})
}
