package cli

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/rileyleff/rileyviewer-go/internal/probe"
	"github.com/rileyleff/rileyviewer-go/internal/state"
)

// openBrowser can be overridden in tests.
var openBrowser = browser.OpenURL

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the running server's page in a browser",
	Args:  cobra.NoArgs,
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	states := statusStates
	if states == nil {
		states = &state.FileReader{}
	}
	prober := statusProber
	if prober == nil {
		prober = probe.New()
	}

	st, ok := states.Read()
	if !ok {
		return fmt.Errorf("no server running")
	}
	if !prober.Healthy(st.Addr) {
		return fmt.Errorf("server not running (stale state file)")
	}

	url := viewerURL(st)
	fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\n", url)
	if err := openBrowser(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
