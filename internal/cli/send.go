package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var sendKind string

var sendCmd = &cobra.Command{
	Use:   "send <file>",
	Short: "Publish a plot file to the server",
	Long: `Publishes the contents of a file as a plot. The payload kind is
inferred from the file extension (.png, .svg, .html); JSON files are
ambiguous and need --kind plotly or --kind vega.

If no server is running, one is launched first.

Example:
  rileyview send chart.svg
  rileyview send figure.json --kind plotly`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	addConnectionFlags(sendCmd)
	sendCmd.Flags().StringVar(&sendKind, "kind", "", "payload kind: png, svg, plotly, vega or html")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	path := args[0]

	kind := sendKind
	if kind == "" {
		var err error
		if kind, err = kindFromExtension(path); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	v, err := newViewer()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var id string
	switch kind {
	case "png":
		id, err = v.SendPNG(ctx, data)
	case "svg":
		id, err = v.SendSVG(ctx, string(data))
	case "plotly":
		id, err = v.SendPlotlyJSON(ctx, string(data))
	case "vega":
		id, err = v.SendVegaJSON(ctx, string(data))
	case "html":
		id, err = v.SendHTML(ctx, string(data))
	default:
		return fmt.Errorf("unknown payload kind %q", kind)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Published %s: %s\n", kind, id)
	return nil
}

// kindFromExtension maps a file extension to a payload kind.
func kindFromExtension(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".svg":
		return "svg", nil
	case ".html", ".htm":
		return "html", nil
	case ".json":
		return "", fmt.Errorf("JSON files are ambiguous: pass --kind plotly or --kind vega")
	default:
		return "", fmt.Errorf("cannot infer payload kind from %s; pass --kind", path)
	}
}
