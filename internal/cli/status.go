package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rileyleff/rileyviewer-go/internal/probe"
	"github.com/rileyleff/rileyviewer-go/internal/state"
)

// statusStates and statusProber can be overridden in tests.
var (
	statusStates state.Reader
	statusProber probe.Prober
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether a rileyviewer server is running",
	Long: `Reads the server state file and probes the recorded address.

Reports the server's address and token when one is running, and flags a
stale state file when the recorded server no longer answers.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintln(cmd.OutOrStdout(), "Server not running")
		return nil
	}

	if !prober.Healthy(st.Addr) {
		fmt.Fprintln(cmd.OutOrStdout(), "Server not running (stale state file)")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Server running")
	fmt.Fprintf(out, "  PID: %d\n", st.PID)
	fmt.Fprintf(out, "  Address: http://%s\n", st.Addr)
	if st.Token != "" {
		fmt.Fprintf(out, "  Token: %s\n", st.Token)
		fmt.Fprintf(out, "  URL: %s\n", viewerURL(st))
	}
	return nil
}

// viewerURL builds the browser URL for a running server, with the token as
// a query parameter when one is configured.
func viewerURL(st *state.ServerState) string {
	if st.Token != "" {
		return fmt.Sprintf("http://%s/?token=%s", st.Addr, st.Token)
	}
	return fmt.Sprintf("http://%s/", st.Addr)
}
