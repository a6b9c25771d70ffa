package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyleff/rileyviewer-go/internal/probe"
	"github.com/rileyleff/rileyviewer-go/internal/state"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running server",
	Long: `Sends a termination signal to the server process recorded in the
state file and verifies it went away.`,
	Args: cobra.NoArgs,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintln(cmd.OutOrStdout(), "No server state found")
		return nil
	}
	if !prober.Healthy(st.Addr) {
		fmt.Fprintln(cmd.OutOrStdout(), "Server not running")
		return nil
	}

	if err := terminate(st.PID); err != nil {
		return fmt.Errorf("failed to signal server (PID %d): %w", st.PID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent stop signal to server (PID %d)\n", st.PID)

	// Give the server a moment to shut down before verifying.
	time.Sleep(500 * time.Millisecond)
	if prober.Healthy(st.Addr) {
		fmt.Fprintln(cmd.OutOrStdout(), "Server still running, may need manual kill")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Server stopped")
	return nil
}
