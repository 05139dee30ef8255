package selection

import (
	"errors"

	"github.com/pushchain/ghapk/internal/catalog"
)

var (
	// ErrNoSelection is returned by Activate when no item is selected.
	ErrNoSelection = errors.New("no release selected")
	// ErrBusy is returned by Activate while another deployment is pending.
	ErrBusy = errors.New("an installation is already in progress")
	// ErrNotPending is returned by Complete for an index that is not pending.
	ErrNotPending = errors.New("item is not being installed")
)

// List is the selectable list model. Build it with New or FromItems.
type List struct {
	items      []Item
	cursor     int // -1 when nothing is selected
	lastCursor int // -1 when nothing was ever selected
	pending    int // -1 when no deployment is running
}

// New builds a list with one idle item per release.
func New(c *catalog.Catalog) *List {
	items := make([]Item, 0, c.Len())
	for _, r := range c.Releases() {
		items = append(items, ItemFromRelease(r))
	}
	return FromItems(items)
}

// FromItems builds a list over the given items. Statuses are reset to Idle.
func FromItems(items []Item) *List {
	cp := make([]Item, len(items))
	copy(cp, items)
	for i := range cp {
		cp[i].Status = Idle
	}
	return &List{items: cp, cursor: -1, lastCursor: -1, pending: -1}
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// Item returns a copy of the item at i.
func (l *List) Item(i int) Item { return l.items[i] }

// Items returns a copy of all items.
func (l *List) Items() []Item { return append([]Item(nil), l.items...) }

// Cursor returns the selected index.
func (l *List) Cursor() (int, bool) {
	if l.cursor < 0 {
		return 0, false
	}
	return l.cursor, true
}

// Pending returns the index of the item being deployed.
func (l *List) Pending() (int, bool) {
	if l.pending < 0 {
		return 0, false
	}
	return l.pending, true
}

// Busy reports whether a deployment is pending.
func (l *List) Busy() bool { return l.pending >= 0 }

// Current returns the selected item.
func (l *List) Current() (Item, bool) {
	if l.cursor < 0 {
		return Item{}, false
	}
	return l.items[l.cursor], true
}

// SelectNext moves the cursor down, wrapping to the first item. With no
// cursor it resumes at the last selection, or the first item.
func (l *List) SelectNext() {
	n := len(l.items)
	if n == 0 {
		return
	}
	if l.cursor < 0 {
		l.cursor = l.resume()
		return
	}
	if l.cursor >= n-1 {
		l.cursor = 0
	} else {
		l.cursor++
	}
}

// SelectPrevious moves the cursor up, wrapping to the last item. With no
// cursor it resumes at the last selection, or the first item.
func (l *List) SelectPrevious() {
	n := len(l.items)
	if n == 0 {
		return
	}
	if l.cursor < 0 {
		l.cursor = l.resume()
		return
	}
	if l.cursor == 0 {
		l.cursor = n - 1
	} else {
		l.cursor--
	}
}

func (l *List) resume() int {
	if l.lastCursor >= 0 && l.lastCursor < len(l.items) {
		return l.lastCursor
	}
	return 0
}

// Deselect clears the cursor and remembers it for the next move.
func (l *List) Deselect() {
	if l.cursor >= 0 {
		l.lastCursor = l.cursor
	}
	l.cursor = -1
}

// SelectFirst jumps to the first item.
func (l *List) SelectFirst() {
	if len(l.items) == 0 {
		return
	}
	l.cursor = 0
}

// SelectLast jumps to the last item.
func (l *List) SelectLast() {
	if len(l.items) == 0 {
		return
	}
	l.cursor = len(l.items) - 1
}

// Activate marks the selected item InProgress and fills the pending slot.
// It returns the index and a snapshot of the item to deploy.
func (l *List) Activate() (int, Item, error) {
	if l.cursor < 0 {
		return 0, Item{}, ErrNoSelection
	}
	if l.pending >= 0 {
		return 0, Item{}, ErrBusy
	}
	i := l.cursor
	l.items[i].Status = InProgress
	l.pending = i
	return i, l.items[i], nil
}

// Complete returns the pending item to Idle and clears the pending slot.
func (l *List) Complete(i int) error {
	if l.pending < 0 || l.pending != i {
		return ErrNotPending
	}
	l.items[i].Status = Idle
	l.pending = -1
	return nil
}
