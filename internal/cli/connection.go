package cli

import (
	"github.com/spf13/cobra"

	rileyviewer "github.com/rileyleff/rileyviewer-go"
)

// Connection flags shared by the commands that talk to the server through
// the library.
var (
	connHost  string
	connPort  int
	connToken string
)

// addConnectionFlags registers the shared connection flags on cmd.
func addConnectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&connHost, "host", "", "server host (default from config)")
	cmd.Flags().IntVar(&connPort, "port", 0, "server port (default from config)")
	cmd.Flags().StringVar(&connToken, "token", "", "authentication token")
}

// newViewer builds a library Viewer from the connection flags.
func newViewer() (*rileyviewer.Viewer, error) {
	var opts []rileyviewer.Option
	if connHost != "" {
		opts = append(opts, rileyviewer.WithHost(connHost))
	}
	if connPort != 0 {
		opts = append(opts, rileyviewer.WithPort(connPort))
	}
	if connToken != "" {
		opts = append(opts, rileyviewer.WithToken(connToken))
	}
	return rileyviewer.New(opts...)
}
