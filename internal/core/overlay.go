package core

import "fmt"

// TextHandle identifies one overlay entry. Handles are never reused.
type TextHandle uint64

// TextEntry is a string drawn on top of the pixel grid at (X, Y).
type TextEntry struct {
	Handle TextHandle
	X, Y   int
	Text   string
}

// TextOverlay is the ordered overlay list. Later entries paint over earlier ones.
type TextOverlay struct {
	items []TextEntry
	next  TextHandle
}

func (o *TextOverlay) add(x, y int, text string) TextHandle {
	o.next++
	o.items = append(o.items, TextEntry{Handle: o.next, X: x, Y: y, Text: text})
	return o.next
}

func (o *TextOverlay) remove(h TextHandle) error {
	for i, e := range o.items {
		if e.Handle == h {
			o.items = append(o.items[:i], o.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: handle %d", ErrTextNotFound, h)
}

func (o *TextOverlay) clear() {
	o.items = o.items[:0]
}

func (o *TextOverlay) entries() []TextEntry {
	out := make([]TextEntry, len(o.items))
	copy(out, o.items)
	return out
}
