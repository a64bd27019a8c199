package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
	"github.com/robiweb74/makupovalni-seznam/internal/mutate"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "Manage the items of a list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ls <list>",
		Short: "List items in display order",
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
			return writeOut(cmd, app, map[string]any{"data": l.Items})
		},
	})

	var categorize bool
	addCmd := &cobra.Command{
		Use:   "add <list> <text...>",
		Short: "Append items (one per argument)",
		Args:  cobra.MinimumNArgs(2),
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
			e := app.engine()
			doCategorize := categorize || app.cfg.LLM.AutoCategorize
			svc := app.suggester(ctx)
			defer svc.Close()

			cur := *snap
			added := []string{}
			for _, text := range args[1:] {
				next, ch := e.AddItem(cur, listID, text)
				if ch.Empty() {
					continue
				}
				if err := s.Commit(ctx, &next, ch); err != nil {
					return writeErr(cmd, err)
				}
				cur = next
				added = append(added, ch.ItemID)
				if doCategorize {
					cat := svc.Categorize(ctx, fmt.Sprint(ch.Payload["text"]))
					next, cch := e.SetCategory(cur, listID, ch.ItemID, cat)
					if err := s.Commit(ctx, &next, cch); err != nil {
						return writeErr(cmd, err)
					}
					cur = next
				}
			}
			if len(added) == 0 {
				return writeErr(cmd, fmt.Errorf("nothing to add"))
			}
			out, _ := cur.FindList(listID)
			items := make([]model.ListItem, 0, len(added))
			for _, id := range added {
				if it, ok := out.FindItem(id); ok {
					items = append(items, *it)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": items})
		},
	}
	addCmd.Flags().BoolVar(&categorize, "categorize", false, "Ask the suggestion provider for a category")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <list> <item>",
		Short: "Flip an item's completed flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyItemMutation(cmd, app, args[0], args[1], func(e *mutate.Engine, snap model.Snapshot, listID, itemID string) (model.Snapshot, mutate.Change) {
				return e.ToggleItem(snap, listID, itemID)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <list> <item>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyItemMutation(cmd, app, args[0], args[1], func(e *mutate.Engine, snap model.Snapshot, listID, itemID string) (model.Snapshot, mutate.Change) {
				return e.DeleteItem(snap, listID, itemID)
			})
		},
	})

	var to int
	moveCmd := &cobra.Command{
		Use:   "move <list> <item|index> --to <index>",
		Short: "Move an item to a new 0-based position",
		Long: strings.TrimSpace(`
Moves an item the way a drag does: it is removed from its position and then
inserted at --to, counted in the list without the moved item. --to is clamped
to the list bounds.
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("to") {
				return writeErr(cmd, fmt.Errorf("missing --to"))
			}
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			l, err := resolveList(snap, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			from := -1
			if it, err := resolveItem(l, args[1]); err == nil {
				from = l.ItemIndex(it.ID)
			} else if n, convErr := strconv.Atoi(args[1]); convErr == nil {
				from = n
			} else {
				return writeErr(cmd, err)
			}
			if from < 0 || from >= len(l.Items) {
				return writeErr(cmd, fmt.Errorf("index out of range: %d", from))
			}
			next, ch := app.engine().MoveItem(*snap, l.ID, from, to)
			if err := s.Commit(cmd.Context(), &next, ch); err != nil {
				return writeErr(cmd, err)
			}
			out, _ := next.FindList(l.ID)
			return writeOut(cmd, app, map[string]any{"data": out.Items, "moved": !ch.Empty()})
		},
	}
	moveCmd.Flags().IntVar(&to, "to", 0, "Target index after removal")
	cmd.AddCommand(moveCmd)

	var setCategory string
	catCmd := &cobra.Command{
		Use:   "categorize <list> <item>",
		Short: "Set an item's store category (asks the provider unless --set is given)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			category := strings.TrimSpace(setCategory)
			return applyItemMutation(cmd, app, args[0], args[1], func(e *mutate.Engine, snap model.Snapshot, listID, itemID string) (model.Snapshot, mutate.Change) {
				if category == "" {
					l, _ := snap.FindList(listID)
					it, _ := l.FindItem(itemID)
					svc := app.suggester(ctx)
					defer svc.Close()
					category = svc.Categorize(ctx, it.Text)
				}
				return e.SetCategory(snap, listID, itemID, category)
			})
		},
	}
	catCmd.Flags().StringVar(&setCategory, "set", "", "Category to set")
	cmd.AddCommand(catCmd)

	return cmd
}

type itemMutation func(e *mutate.Engine, snap model.Snapshot, listID, itemID string) (model.Snapshot, mutate.Change)

// applyItemMutation resolves list and item references, applies fn and prints the
// resulting item (or the removed id).
func applyItemMutation(cmd *cobra.Command, app *App, listRef, itemRef string, fn itemMutation) error {
	snap, s, err := loadSnapshot(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	l, err := resolveList(snap, listRef)
	if err != nil {
		return writeErr(cmd, err)
	}
	it, err := resolveItem(l, itemRef)
	if err != nil {
		return writeErr(cmd, err)
	}
	listID, itemID := l.ID, it.ID
	next, ch := fn(app.engine(), *snap, listID, itemID)
	if err := s.Commit(cmd.Context(), &next, ch); err != nil {
		return writeErr(cmd, err)
	}
	nl, _ := next.FindList(listID)
	if got, ok := nl.FindItem(itemID); ok {
		return writeOut(cmd, app, map[string]any{"data": got, "changed": !ch.Empty()})
	}
	return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": itemID}})
}
