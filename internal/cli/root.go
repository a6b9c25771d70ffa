// Package cli implements the rileyview command, a companion tool for the
// rileyviewer server: inspect or stop a running server, open its page in a
// browser, and publish artifacts from files.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/rileyleff/rileyviewer-go/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rileyview",
	Short: "Client tools for the rileyviewer plot server",
	Long: `Rileyview talks to a local rileyviewer server: check whether one is
running, open its page in a browser, publish plot files to it, watch the
plot feed, or stop it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.LevelDebug)
		}
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("rileyview version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
