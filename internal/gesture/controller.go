// Package gesture tracks an in-progress reorder drag and resolves it into a single
// move on release. Two backends feed the same Controller: a drag-and-drop style
// backend with index events and a coordinate backend that hit-tests row bounds.
package gesture

import "strings"

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Move is emitted when a drag ends with a target different from the dragged index.
type Move struct {
	From int
	To   int
}

// Identity fingerprints a list so a gesture started on one version of it is not
// applied to another.
func Identity(listID string, itemIDs []string) string {
	return listID + "|" + strings.Join(itemIDs, ",")
}

// Controller is the shared drag state machine. The zero value is Idle.
type Controller struct {
	state    State
	dragged  int
	target   int
	identity string
	length   int
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Dragging() bool { return c.state == Dragging }

// Dragged and Target report the current indices; both are -1 when Idle.
func (c *Controller) Dragged() int {
	if c.state != Dragging {
		return -1
	}
	return c.dragged
}

func (c *Controller) Target() int {
	if c.state != Dragging {
		return -1
	}
	return c.target
}

// Start begins a drag of index on a list of length n identified by identity.
// It is ignored while another drag is in progress or when index is out of range.
func (c *Controller) Start(index, n int, identity string) bool {
	if c.state == Dragging || index < 0 || index >= n {
		return false
	}
	c.state = Dragging
	c.dragged = index
	c.target = index
	c.identity = identity
	c.length = n
	return true
}

// MoveOver records the hovered index. A negative index means nothing was hit and
// leaves the target as it was.
func (c *Controller) MoveOver(index int) {
	if c.state != Dragging || index < 0 || index >= c.length {
		return
	}
	c.target = index
}

// End finishes the drag. It reports a move only when the target differs from the
// dragged index and the list identity still matches.
func (c *Controller) End(identity string) (Move, bool) {
	if c.state != Dragging {
		return Move{}, false
	}
	m := Move{From: c.dragged, To: c.target}
	stale := identity != c.identity
	c.reset()
	if stale || m.From == m.To {
		return Move{}, false
	}
	return m, true
}

func (c *Controller) Cancel() {
	c.reset()
}

// Invalidate cancels a drag started on a list with a different identity.
func (c *Controller) Invalidate(identity string) {
	if c.state == Dragging && identity != c.identity {
		c.reset()
	}
}

func (c *Controller) reset() {
	*c = Controller{}
}
