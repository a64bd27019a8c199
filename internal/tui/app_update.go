package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"pkt.systems/pslog"

	"github.com/robiweb74/makupovalni-seznam/internal/gesture"
	"github.com/robiweb74/makupovalni-seznam/internal/share"
	"github.com/robiweb74/makupovalni-seznam/internal/suggest"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.addInput.Width = msg.Width - 6
		m.modalInput.Width = modalBodyWidth(msg.Width) - 3
		return m, nil

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
			m.minibufferErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.suggestBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case suggestionsMsg:
		if msg.seq != m.suggestSeq || msg.listID != m.activeListID || m.view != viewList {
			return m, nil
		}
		m.suggestBusy = false
		chips := append([]string(nil), msg.items...)
		if l := m.activeList(); l != nil {
			// Items added while the fetch was in flight.
			for _, text := range l.ItemTexts() {
				chips = suggest.RemoveMatching(chips, text)
			}
		}
		m.chips = chips
		return m, nil

	case categorizedMsg:
		next, ch := m.engine.SetCategory(m.snap, msg.listID, msg.itemID, msg.category)
		m.apply(next, ch)
		return m, nil

	case shareDoneMsg:
		switch {
		case msg.err != nil:
			cmd := m.showError("Share failed: " + msg.err.Error())
			return m, cmd
		case msg.via == "telegram":
			cmd := m.showMinibuffer("Sent " + msg.listName + " to Telegram")
			return m, cmd
		default:
			cmd := m.showMinibuffer("Share link copied")
			return m, cmd
		}

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		if m.view == viewList {
			return m.updateList(msg)
		}
		return m.updateHome(msg)
	}
	return m, nil
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.saveState()
	return m, tea.Quit
}

func (m appModel) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, homeKeys.Quit):
		return m.quit()
	case key.Matches(msg, homeKeys.Up):
		m.homeCursor = clamp(m.homeCursor-1, 0, len(m.snap.Lists)-1)
	case key.Matches(msg, homeKeys.Down):
		m.homeCursor = clamp(m.homeCursor+1, 0, len(m.snap.Lists)-1)
	case key.Matches(msg, homeKeys.Open):
		if m.homeCursor < len(m.snap.Lists) {
			cmd := m.openList(m.snap.Lists[m.homeCursor].ID)
			return m, cmd
		}
	case key.Matches(msg, homeKeys.New):
		m.openInputModal(modalNewList, "list name")
		return m, textinput.Blink
	case key.Matches(msg, homeKeys.Import):
		m.openInputModal(modalImport, "https://…#share=…")
		return m, textinput.Blink
	case key.Matches(msg, homeKeys.Delete):
		if m.homeCursor < len(m.snap.Lists) {
			m.modal = modalConfirmDeleteList
			m.pendingDeleteID = m.snap.Lists[m.homeCursor].ID
			m.confirmFocus = confirmFocusCancel
		}
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.activeList()
	if l == nil {
		m.closeList()
		return m, nil
	}
	if m.adding {
		return m.updateAddInput(msg)
	}
	if m.drag.Dragging() {
		return m.updateGrab(msg)
	}

	switch {
	case msg.String() == "ctrl+c", msg.String() == "q":
		return m.quit()
	case key.Matches(msg, listKeys.Up):
		m.itemCursor = clamp(m.itemCursor-1, 0, len(l.Items)-1)
	case key.Matches(msg, listKeys.Down):
		m.itemCursor = clamp(m.itemCursor+1, 0, len(l.Items)-1)
	case key.Matches(msg, listKeys.Add):
		m.adding = true
		m.addInput.SetValue("")
		m.addInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, listKeys.Toggle):
		if m.itemCursor < len(l.Items) {
			next, ch := m.engine.ToggleItem(m.snap, l.ID, l.Items[m.itemCursor].ID)
			m.apply(next, ch)
		}
	case key.Matches(msg, listKeys.Delete):
		if m.itemCursor < len(l.Items) {
			next, ch := m.engine.DeleteItem(m.snap, l.ID, l.Items[m.itemCursor].ID)
			m.apply(next, ch)
		}
	case key.Matches(msg, listKeys.Grab):
		if m.pointer().DragStart(m.itemCursor) {
			m.dragSrc = dragKeyboard
		}
	case key.Matches(msg, listKeys.MoveUp):
		m.applyMove(gesture.Move{From: m.itemCursor, To: m.itemCursor - 1})
	case key.Matches(msg, listKeys.MoveDown):
		m.applyMove(gesture.Move{From: m.itemCursor, To: m.itemCursor + 1})
	case key.Matches(msg, listKeys.Suggest):
		if !m.suggest.Enabled() {
			cmd := m.showMinibuffer("Suggestions are disabled (set llm.provider)")
			return m, cmd
		}
		if m.suggestBusy {
			return m, nil
		}
		cmd := m.fetchSuggestions()
		return m, cmd
	case key.Matches(msg, listKeys.TakeChip):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(m.chips) {
			cmd := m.addItem(m.chips[idx])
			return m, cmd
		}
	case key.Matches(msg, listKeys.Share):
		cmd := m.shareActive()
		return m, cmd
	case key.Matches(msg, listKeys.Back):
		m.closeList()
	}
	return m, nil
}

func (m appModel) updateAddInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.addInput.Blur()
		return m, nil
	case "enter":
		text := m.addInput.Value()
		m.addInput.SetValue("")
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		// The input stays open for the next item.
		cmd := m.addItem(text)
		return m, cmd
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

// updateGrab drives the pointer backend from the keyboard: the cursor is the
// hovered row, enter drops, esc cancels.
func (m appModel) updateGrab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dragSrc != dragKeyboard {
		if msg.String() == "esc" {
			m.touch().Interrupt()
			m.dragSrc = dragNone
		}
		return m, nil
	}
	n, _ := m.listInfo()
	pb := m.pointer()
	switch {
	case key.Matches(msg, listKeys.GrabCancel):
		pb.DragEnd()
		m.dragSrc = dragNone
		cmd := m.showMinibuffer("Move cancelled")
		return m, cmd
	case key.Matches(msg, listKeys.Drop):
		from := m.drag.Dragged()
		mv, ok := pb.Drop(m.itemCursor)
		pb.DragEnd()
		m.dragSrc = dragNone
		if ok {
			m.applyMove(mv)
		} else {
			m.itemCursor = from
		}
	case key.Matches(msg, listKeys.GrabUp):
		m.itemCursor = clamp(m.itemCursor-1, 0, n-1)
		pb.DragOver(m.itemCursor)
	case key.Matches(msg, listKeys.GrabDown):
		m.itemCursor = clamp(m.itemCursor+1, 0, n-1)
		pb.DragOver(m.itemCursor)
	case msg.String() == "ctrl+c":
		return m.quit()
	}
	return m, nil
}

func (m *appModel) applyMove(mv gesture.Move) {
	l := m.activeList()
	if l == nil {
		return
	}
	next, ch := m.engine.MoveItem(m.snap, l.ID, mv.From, mv.To)
	if m.apply(next, ch) {
		if nl := m.activeList(); nl != nil {
			m.itemCursor = nl.ItemIndex(ch.ItemID)
		}
	}
}

func (m *appModel) addItem(text string) tea.Cmd {
	l := m.activeList()
	if l == nil {
		return nil
	}
	next, ch := m.engine.AddItem(m.snap, l.ID, text)
	if !m.apply(next, ch) {
		return nil
	}
	added := fmt.Sprint(ch.Payload["text"])
	m.chips = suggest.RemoveMatching(m.chips, added)
	if nl := m.activeList(); nl != nil {
		m.itemCursor = len(nl.Items) - 1
	}
	if m.autoCategorize && m.suggest.Enabled() {
		return m.categorize(ch.ListID, ch.ItemID, added)
	}
	return nil
}

func (m *appModel) categorize(listID, itemID, text string) tea.Cmd {
	svc, ctx := m.suggest, m.ctx
	return func() tea.Msg {
		return categorizedMsg{listID: listID, itemID: itemID, category: svc.Categorize(ctx, text)}
	}
}

// fetchSuggestions starts at most one fetch per list view.
func (m *appModel) fetchSuggestions() tea.Cmd {
	l := m.activeList()
	if l == nil || m.suggestBusy || !m.suggest.Enabled() {
		return nil
	}
	m.suggestSeq++
	m.suggestBusy = true
	seq, listID, name, existing := m.suggestSeq, l.ID, l.Name, l.ItemTexts()
	svc, ctx := m.suggest, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return suggestionsMsg{seq: seq, listID: listID, items: svc.Suggest(ctx, name, existing)}
	})
}

// shareActive sends the list to Telegram when configured and otherwise (or on
// failure) copies the link.
func (m *appModel) shareActive() tea.Cmd {
	l := m.activeList()
	if l == nil {
		return nil
	}
	list := l.Clone()
	link := share.Link(m.shareBaseURL, share.EncodeList(list))
	send, copyLink, ctx := m.sendList, m.copyClipboard, m.ctx
	return func() tea.Msg {
		if send != nil {
			err := send(ctx, list, link)
			if err == nil {
				return shareDoneMsg{listName: list.Name, via: "telegram"}
			}
			pslog.Ctx(ctx).Warn("telegram share failed, copying link instead", "list", list.ID, "err", err)
		}
		if copyLink == nil {
			return shareDoneMsg{listName: list.Name, err: errors.New("clipboard unavailable")}
		}
		if err := copyLink(link); err != nil {
			return shareDoneMsg{listName: list.Name, via: "clipboard", err: err}
		}
		return shareDoneMsg{listName: list.Name, via: "clipboard"}
	}
}

func (m *appModel) openInputModal(kind modalKind, placeholder string) {
	m.modal = kind
	m.modalInput.SetValue("")
	m.modalInput.Placeholder = placeholder
	m.modalInput.Focus()
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalInput.Blur()
	m.pendingDeleteID = ""
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal == modalConfirmDeleteList {
		return m.updateConfirm(msg)
	}
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeModal()
		return m, nil
	case "enter":
		kind, value := m.modal, m.modalInput.Value()
		m.closeModal()
		if kind == modalImport {
			cmd := m.importLink(value)
			return m, cmd
		}
		next, ch := m.engine.CreateList(m.snap, value)
		if !m.apply(next, ch) {
			return m, nil
		}
		cmd := m.openList(ch.ListID)
		return m, cmd
	}
	var cmd tea.Cmd
	m.modalInput, cmd = m.modalInput.Update(msg)
	return m, cmd
}

func (m *appModel) importLink(value string) tea.Cmd {
	p, err := share.DecodeLink(value)
	if err != nil {
		pslog.Ctx(m.ctx).Info("share link rejected", "err", err)
		return m.showError("Invalid share link")
	}
	next, ch := m.engine.ImportList(m.snap, p.Name, p.Items)
	if !m.apply(next, ch) {
		return m.showError("Invalid share link")
	}
	open := m.openList(ch.ListID)
	name := p.Name
	if l := m.activeList(); l != nil {
		name = l.Name
	}
	return tea.Batch(open, m.showMinibuffer("Imported "+name))
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
	case "y", "Y":
		return m.confirmDelete()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.confirmDelete()
		}
		m.closeModal()
	case "n", "N", "esc", "ctrl+g", "q":
		m.closeModal()
	}
	return m, nil
}

func (m appModel) confirmDelete() (tea.Model, tea.Cmd) {
	id := m.pendingDeleteID
	m.closeModal()
	name := id
	if l, ok := m.snap.FindList(id); ok {
		name = l.Name
	}
	next, ch := m.engine.DeleteList(m.snap, id)
	if !m.apply(next, ch) {
		return m, nil
	}
	cmd := m.showMinibuffer("Deleted " + name)
	return m, cmd
}

func (m *appModel) showMinibuffer(text string) tea.Cmd {
	m.minibufferText = text
	m.minibufferErr = false
	m.minibufferSeq++
	seq := m.minibufferSeq
	return tea.Tick(minibufferAutoClearAfter, func(time.Time) tea.Msg { return minibufferClearMsg{seq: seq} })
}

func (m *appModel) showError(text string) tea.Cmd {
	cmd := m.showMinibuffer(text)
	m.minibufferErr = true
	return cmd
}
