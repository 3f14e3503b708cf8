package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/message-board/internal/board"
	"github.com/rcliao/message-board/internal/model"
)

const sessionHelp = `commands:
  add <text>     add a message
  pin <n>        pin or unpin row n
  rm <n>         delete row n
  sort <mode>    NONE, DATE_ASC, DATE_DESC, NAME_ASC, NAME_DESC
  open [text]    show text on its own screen
  list           redraw the board
  quit           leave`

func init() {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Interactive board",
		Long:  "Interactive board read from stdin, one command per line. Pins last only for the session.",
		Run:   runSession,
	}

	cmd.Flags().StringP("sort", "s", "", "Initial sort mode (default: $MESSAGE_BOARD_SORT or NONE)")

	RootCmd.AddCommand(cmd)
}

// sessionAction is one parsed input line.
type sessionAction struct {
	event board.Event
	open  *string
	list  bool
	help  bool
	quit  bool
}

var errNoSuchRow = errors.New("no such row")

// parseSessionLine turns line into an action. Row numbers are resolved against the
// board when the event is applied, after every earlier command.
func parseSessionLine(line string, now time.Time) (sessionAction, error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch strings.ToLower(verb) {
	case "":
		return sessionAction{}, nil
	case "add":
		return sessionAction{event: board.Added{Message: model.NewMessage(rest, now)}}, nil
	case "pin", "unpin":
		n, err := parseRow(rest)
		if err != nil {
			return sessionAction{}, err
		}
		return sessionAction{event: board.PinRow{Row: n}}, nil
	case "rm", "delete":
		n, err := parseRow(rest)
		if err != nil {
			return sessionAction{}, err
		}
		return sessionAction{event: board.DeleteRow{Row: n}}, nil
	case "sort":
		mode, err := model.ParseSortMode(rest)
		if err != nil {
			return sessionAction{}, err
		}
		return sessionAction{event: board.SortChanged{Mode: mode}}, nil
	case "open":
		return sessionAction{open: &rest}, nil
	case "list", "ls":
		return sessionAction{list: true}, nil
	case "help", "?":
		return sessionAction{help: true}, nil
	case "quit", "exit", "q":
		return sessionAction{quit: true}, nil
	}
	return sessionAction{}, fmt.Errorf("unknown command %q (try help)", verb)
}

func parseRow(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("row number required: %w", err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %d", errNoSuchRow, n)
	}
	return n, nil
}

func runSession(cmd *cobra.Command, args []string) {
	sortStr, _ := cmd.Flags().GetString("sort")

	s, cfg, log := openStore()
	defer s.Close()

	if sortStr == "" {
		sortStr = cfg.Sort
	}
	mode, err := model.ParseSortMode(sortStr)
	if err != nil {
		exitErr("session", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sess := board.NewSession(s, log, mode)
	stopped := make(chan struct{})
	go func() {
		sess.Run(ctx)
		close(stopped)
	}()

	scr := newScreen(cmd.OutOrStdout())
	redrawn := make(chan struct{})
	go func() {
		redraw(ctx, scr, sess)
		close(redrawn)
	}()

	if err := readSession(ctx, os.Stdin, scr, sess); err != nil {
		log.Warn("Session input ended", "error", err)
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := sess.Flush(flushCtx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	cancel()
	<-stopped
	<-redrawn

	// The loop has stopped, so this is the final board.
	scr.board(sess.View())
}

// redraw prints the board each time it changes.
func redraw(ctx context.Context, scr *screen, sess *board.Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case st := <-sess.Updates():
			scr.board(st)
		}
	}
}

func readSession(ctx context.Context, in io.Reader, scr *screen, sess *board.Session) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		action, err := parseSessionLine(scanner.Text(), time.Now())
		if err != nil {
			scr.printf("error: %v\n", err)
			continue
		}
		switch {
		case action.quit:
			return nil
		case action.help:
			scr.printf("%s\n", sessionHelp)
		case action.list:
			scr.messages(sess.View().Messages)
		case action.open != nil:
			scr.draft(*action.open)
		case action.event != nil:
			if err := sess.Dispatch(ctx, action.event); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}
