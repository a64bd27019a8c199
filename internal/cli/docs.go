package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robiweb74/makupovalni-seznam/internal/docs"
	"github.com/robiweb74/makupovalni-seznam/internal/publish"
)

func newDocsCmd(app *App) *cobra.Command {
	var (
		raw    bool
		render bool
		width  int
	)
	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show short guides (sharing, suggestions, tui, config, storage)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": docs.Topics()}})
			}
			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `seznam docs` to list topics)", topic))
			}
			switch {
			case render:
				out, err := publish.Render(body, width)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			case raw:
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": topic, "markdown": body}})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	cmd.Flags().BoolVar(&render, "render", false, "Render the markdown for the terminal")
	cmd.Flags().IntVar(&width, "width", 80, "Word-wrap width for --render")
	return cmd
}
