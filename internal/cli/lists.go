package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
	"github.com/robiweb74/makupovalni-seznam/internal/publish"
	"github.com/robiweb74/makupovalni-seznam/internal/share"
)

type listSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Items     int       `json:"items"`
	Done      int       `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
	Created   string    `json:"created"`
}

func summarize(l model.ShoppingList) listSummary {
	return listSummary{
		ID:        l.ID,
		Name:      l.Name,
		Items:     len(l.Items),
		Done:      l.CompletedCount(),
		CreatedAt: l.CreatedAt,
		Created:   humanize.Time(l.CreatedAt),
	}
}

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"list"},
		Short:   "Manage shopping lists",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all shopping lists (newest first)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]listSummary, 0, len(snap.Lists))
			for _, l := range snap.Lists {
				out = append(out, summarize(l))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "new <name...>",
		Short: "Create a list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			next, ch := app.engine().CreateList(*snap, strings.Join(args, " "))
			if ch.Empty() {
				return writeErr(cmd, fmt.Errorf("list name is empty"))
			}
			if err := s.Commit(cmd.Context(), &next, ch); err != nil {
				return writeErr(cmd, err)
			}
			l, _ := next.FindList(ch.ListID)
			return writeOut(cmd, app, map[string]any{"data": l})
		},
	})

	var yes bool
	rmCmd := &cobra.Command{
		Use:   "rm <list>",
		Short: "Delete a list (requires --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errConfirmRequired)
			}
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			l, err := resolveList(snap, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			next, ch := app.engine().DeleteList(*snap, l.ID)
			if err := s.Commit(cmd.Context(), &next, ch); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": ch.ListID}})
		},
	}
	rmCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	cmd.AddCommand(rmCmd)

	var (
		asMarkdown bool
		render     bool
		group      bool
		width      int
	)
	showCmd := &cobra.Command{
		Use:   "show <list>",
		Short: "Show one list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			l, err := resolveList(snap, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !asMarkdown && !render {
				return writeOut(cmd, app, map[string]any{"data": l})
			}
			md := publish.ListMarkdown(*l, publish.RenderOptions{
				GroupByCategory: group,
				ShareLink:       share.Link(app.cfg.Share.BaseURL, share.EncodeList(*l)),
			})
			if render {
				if md, err = publish.Render(md, width); err != nil {
					return writeErr(cmd, err)
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
	showCmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Print the list as a markdown checklist")
	showCmd.Flags().BoolVar(&render, "render", false, "Render the markdown for the terminal")
	showCmd.Flags().BoolVar(&group, "group", false, "Group items by category")
	showCmd.Flags().IntVar(&width, "width", 80, "Word-wrap width for --render")
	cmd.AddCommand(showCmd)

	return cmd
}
