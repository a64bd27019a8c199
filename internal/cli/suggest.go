package cli

import (
	"github.com/spf13/cobra"
)

func newSuggestCmd(app *App) *cobra.Command {
	var add bool
	cmd := &cobra.Command{
		Use:   "suggest <list>",
		Short: "Ask the configured model for items that fit the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			l, err := resolveList(snap, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			listID := l.ID
			svc := app.suggester(ctx)
			defer svc.Close()
			suggestions := svc.Suggest(ctx, l.Name, l.ItemTexts())
			if !add {
				return writeOut(cmd, app, map[string]any{"data": suggestions})
			}
			e := app.engine()
			cur := *snap
			for _, text := range suggestions {
				next, ch := e.AddItem(cur, listID, text)
				if err := s.Commit(ctx, &next, ch); err != nil {
					return writeErr(cmd, err)
				}
				cur = next
			}
			out, _ := cur.FindList(listID)
			return writeOut(cmd, app, map[string]any{"data": out.Items, "added": len(suggestions)})
		},
	}
	cmd.Flags().BoolVar(&add, "add", false, "Append all suggestions to the list")
	return cmd
}
