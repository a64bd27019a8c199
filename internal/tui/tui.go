// Package tui is the interactive terminal front end: a home view of all lists and
// a list view with suggestion chips, keyboard grab-and-drop and mouse dragging.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robiweb74/makupovalni-seznam/internal/model"
	"github.com/robiweb74/makupovalni-seznam/internal/mutate"
	"github.com/robiweb74/makupovalni-seznam/internal/store"
	"github.com/robiweb74/makupovalni-seznam/internal/suggest"
)

// Options wires the TUI to its collaborators. Snapshot, Engine and Store are
// required; the rest degrade to disabled features when nil or empty.
type Options struct {
	Store    store.Store
	Snapshot *model.Snapshot
	Engine   *mutate.Engine
	Suggest  *suggest.Service

	ShareBaseURL   string
	Glyphs         string
	AutoCategorize bool

	CopyClipboard func(string) error
	SendList      func(ctx context.Context, l model.ShoppingList, link string) error
}

func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(appModel); ok {
		fm.saveState()
	}
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Interrupted by a signal; not a failure.
		return nil
	}
	return err
}
