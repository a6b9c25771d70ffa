package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyleff/rileyviewer-go/content"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream the server's plot feed",
	Long: `Connects to the running server's websocket feed and prints one line
per plot: the server history first, then new plots as they arrive.
Interrupt with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	addConnectionFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	v, err := newViewer()
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	err = v.Watch(ctx, func(msg content.Message) {
		ts := time.UnixMilli(int64(msg.Timestamp)).Format(time.RFC3339)
		fmt.Fprintf(out, "%s  %-6s  %s\n", ts, msg.Content.Kind, msg.ID)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
