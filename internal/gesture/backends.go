package gesture

// ListInfo reports the current length and identity of the list being reordered.
type ListInfo func() (n int, identity string)

// PointerBackend translates drag-and-drop style events, where the source of the
// event already knows which item index it is over.
type PointerBackend struct {
	C    *Controller
	List ListInfo
}

func (b PointerBackend) DragStart(index int) bool {
	n, id := b.List()
	return b.C.Start(index, n, id)
}

func (b PointerBackend) DragOver(index int) {
	b.C.MoveOver(index)
}

// Drop releases over index and resolves the move.
func (b PointerBackend) Drop(index int) (Move, bool) {
	b.C.MoveOver(index)
	_, id := b.List()
	return b.C.End(id)
}

// DragEnd fires after every drag. If no Drop happened first the release was
// outside any drop zone and the drag is cancelled.
func (b PointerBackend) DragEnd() {
	b.C.Cancel()
}

// Row is the rendered rectangle of one item. Coordinates are terminal cells.
type Row struct {
	Index     int
	Top       int
	Height    int
	Left      int
	Right     int // exclusive
	GripLeft  int
	GripRight int // exclusive
}

func (r Row) contains(x, y int) bool {
	h := r.Height
	if h <= 0 {
		h = 1
	}
	return y >= r.Top && y < r.Top+h && x >= r.Left && x < r.Right
}

func (r Row) onGrip(x int) bool {
	return x >= r.GripLeft && x < r.GripRight
}

// TouchBackend translates coordinate events by hit-testing against row bounds
// captured at render time.
type TouchBackend struct {
	C    *Controller
	List ListInfo
	Rows []Row
}

// HitTest returns the index of the row under (x, y), or -1.
func (b TouchBackend) HitTest(x, y int) int {
	for _, r := range b.Rows {
		if r.contains(x, y) {
			return r.Index
		}
	}
	return -1
}

// Press starts a drag only when it lands on a row's grip.
func (b TouchBackend) Press(x, y int) bool {
	for _, r := range b.Rows {
		if r.contains(x, y) && r.onGrip(x) {
			n, id := b.List()
			return b.C.Start(r.Index, n, id)
		}
	}
	return false
}

func (b TouchBackend) Motion(x, y int) {
	b.C.MoveOver(b.HitTest(x, y))
}

func (b TouchBackend) Release() (Move, bool) {
	_, id := b.List()
	return b.C.End(id)
}

// Interrupt cancels the drag, for example when another button is pressed mid-gesture.
func (b TouchBackend) Interrupt() {
	b.C.Cancel()
}
