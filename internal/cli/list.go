package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/message-board/internal/model"
	"github.com/rcliao/message-board/internal/ordering"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages, pinned first",
		Run:   runList,
	}

	cmd.Flags().StringP("sort", "s", "", "Sort: NONE, DATE_ASC, DATE_DESC, NAME_ASC, NAME_DESC (default: $MESSAGE_BOARD_SORT or NONE)")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	sortStr, _ := cmd.Flags().GetString("sort")

	s, cfg, _ := openStore()
	defer s.Close()

	if sortStr == "" {
		sortStr = cfg.Sort
	}
	mode, err := model.ParseSortMode(sortStr)
	if err != nil {
		exitErr("list", err)
	}

	messages, err := s.Load(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}

	printMessages(cmd.OutOrStdout(), ordering.Order(messages, mode))
}
