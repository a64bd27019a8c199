package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"pkt.systems/pslog"

	"github.com/robiweb74/makupovalni-seznam/internal/gesture"
	"github.com/robiweb74/makupovalni-seznam/internal/model"
	"github.com/robiweb74/makupovalni-seznam/internal/mutate"
	"github.com/robiweb74/makupovalni-seznam/internal/store"
	"github.com/robiweb74/makupovalni-seznam/internal/suggest"
)

type appModel struct {
	ctx    context.Context
	store  store.Store
	snap   model.Snapshot
	engine *mutate.Engine

	suggest        *suggest.Service
	shareBaseURL   string
	autoCategorize bool
	copyClipboard  func(string) error
	sendList       func(ctx context.Context, l model.ShoppingList, link string) error

	width  int
	height int

	view         view
	activeListID string
	homeCursor   int
	itemCursor   int

	modal           modalKind
	modalInput      textinput.Model
	confirmFocus    confirmModalFocus
	pendingDeleteID string

	adding   bool
	addInput textinput.Model

	// Suggestion chips for the active list. suggestSeq tags every fetch; a
	// result whose seq or list no longer matches is dropped.
	chips       []string
	suggestSeq  int
	suggestBusy bool
	spinner     spinner.Model

	// Drag state is UI-only and never persisted.
	drag    gesture.Controller
	dragSrc dragSource

	help help.Model

	minibufferText string
	minibufferErr  bool
	minibufferSeq  int

	startup tea.Cmd
}

func newAppModel(ctx context.Context, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	m := appModel{
		ctx:            ctx,
		store:          opts.Store,
		engine:         opts.Engine,
		suggest:        opts.Suggest,
		shareBaseURL:   opts.ShareBaseURL,
		autoCategorize: opts.AutoCategorize,
		copyClipboard:  opts.CopyClipboard,
		sendList:       opts.SendList,
		view:           viewHome,
	}
	if opts.Snapshot != nil {
		m.snap = opts.Snapshot.Clone()
	}
	if m.engine == nil {
		m.engine = mutate.NewEngine(true)
	}
	if m.suggest == nil {
		m.suggest = &suggest.Service{Provider: suggest.None{}}
	}

	m.modalInput = textinput.New()
	m.modalInput.CharLimit = 8192
	m.modalInput.Prompt = "› "

	m.addInput = textinput.New()
	m.addInput.CharLimit = 200
	m.addInput.Prompt = "+ "
	m.addInput.Placeholder = "new item"

	m.spinner = spinner.New(spinner.WithSpinner(spinner.MiniDot))
	m.spinner.Style = styleMuted()

	m.help = help.New()

	m.restoreState()
	return m
}

func (m appModel) Init() tea.Cmd {
	return m.startup
}

// restoreState reopens the last list when it still exists.
func (m *appModel) restoreState() {
	st, err := m.store.LoadTUIState()
	if err != nil {
		pslog.Ctx(m.ctx).Debug("tui state unavailable", "err", err)
		return
	}
	if viewFromString(st.View) != viewList {
		return
	}
	if idx := m.snap.ListIndex(st.ActiveListID); idx >= 0 {
		m.homeCursor = idx
		m.startup = m.openList(st.ActiveListID)
	}
}

func (m appModel) saveState() {
	st := &store.TUIState{View: m.view.String()}
	if m.view == viewList {
		st.ActiveListID = m.activeListID
	}
	if err := m.store.SaveTUIState(st); err != nil {
		pslog.Ctx(m.ctx).Warn("save tui state failed", "err", err)
	}
}

func (m appModel) activeList() *model.ShoppingList {
	if m.view != viewList {
		return nil
	}
	l, ok := m.snap.FindList(m.activeListID)
	if !ok {
		return nil
	}
	return l
}

// listInfo feeds both gesture backends with the active list's length and identity.
func (m *appModel) listInfo() (int, string) {
	l := m.activeList()
	if l == nil {
		return 0, ""
	}
	return len(l.Items), gesture.Identity(l.ID, l.ItemIDs())
}

func (m *appModel) pointer() gesture.PointerBackend {
	return gesture.PointerBackend{C: &m.drag, List: m.listInfo}
}

func (m *appModel) touch() gesture.TouchBackend {
	return gesture.TouchBackend{C: &m.drag, List: m.listInfo, Rows: m.itemRows()}
}

// apply installs a new snapshot and persists the change. Persistence failures are
// logged and swallowed; the in-memory state stays authoritative for the session.
func (m *appModel) apply(next model.Snapshot, ch mutate.Change) bool {
	if ch.Empty() {
		return false
	}
	m.snap = next
	_, identity := m.listInfo()
	m.drag.Invalidate(identity)
	if !m.drag.Dragging() {
		m.dragSrc = dragNone
	}
	m.clampCursors()

	if err := m.store.Commit(m.ctx, &m.snap, ch); err != nil {
		pslog.Ctx(m.ctx).Warn("persist failed", "change", ch.Type, "list", ch.ListID, "err", err)
	}
	return true
}

func (m *appModel) clampCursors() {
	m.homeCursor = clamp(m.homeCursor, 0, len(m.snap.Lists)-1)
	if l := m.activeList(); l != nil {
		m.itemCursor = clamp(m.itemCursor, 0, len(l.Items)-1)
	} else {
		m.itemCursor = 0
	}
}

// openList switches to the list view and kicks off a suggestion fetch.
func (m *appModel) openList(id string) tea.Cmd {
	m.view = viewList
	m.activeListID = id
	m.itemCursor = 0
	m.adding = false
	m.addInput.Blur()
	m.chips = nil
	m.resetDrag()
	// Whatever is still in flight belongs to the previous view.
	m.suggestSeq++
	m.suggestBusy = false
	if idx := m.snap.ListIndex(id); idx >= 0 {
		m.homeCursor = idx
	}
	m.saveState()
	return m.fetchSuggestions()
}

func (m *appModel) closeList() {
	m.view = viewHome
	m.adding = false
	m.addInput.Blur()
	m.chips = nil
	m.resetDrag()
	m.suggestSeq++
	m.suggestBusy = false
	m.activeListID = ""
	m.clampCursors()
	m.saveState()
}

func (m *appModel) resetDrag() {
	m.drag.Cancel()
	m.dragSrc = dragNone
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
