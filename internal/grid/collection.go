package grid

import (
	"errors"
	"fmt"
	"sort"
)

// ChangeKind classifies a collection change.
type ChangeKind int

const (
	ChangeAdd ChangeKind = iota
	ChangeRemove
	ChangeReplace
	ChangeMove
	ChangeReset
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdd:
		return "add"
	case ChangeRemove:
		return "remove"
	case ChangeReplace:
		return "replace"
	case ChangeMove:
		return "move"
	case ChangeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes a mutation of a Collection after it happened.
// Start and Count cover the affected items; for ChangeMove, Start is the
// source index and To the destination.
type Change struct {
	Kind  ChangeKind
	Start int
	Count int
	To    int
}

// Rows is the read side of a row sequence.
type Rows interface {
	Len() int
	Row(i int) any
}

// Observable is implemented by row sequences that report their own changes.
type Observable interface {
	Subscribe(fn func(Change) error) func()
}

// Collection is an ordered, observable sequence. Listener errors are
// returned from the mutating call that triggered them.
type Collection[T any] struct {
	items     []T
	listeners map[int]func(Change) error
	nextID    int
}

// NewCollection returns a collection holding items.
func NewCollection[T any](items ...T) *Collection[T] {
	return &Collection[T]{items: append([]T(nil), items...)}
}

func (c *Collection[T]) Len() int      { return len(c.items) }
func (c *Collection[T]) At(i int) T    { return c.items[i] }
func (c *Collection[T]) Row(i int) any { return c.items[i] }

// Items returns a copy of the items.
func (c *Collection[T]) Items() []T {
	return append([]T(nil), c.items...)
}

// IndexOf returns the first index for which match reports true, or -1.
func (c *Collection[T]) IndexOf(match func(T) bool) int {
	for i, it := range c.items {
		if match(it) {
			return i
		}
	}
	return -1
}

// Append adds items at the end.
func (c *Collection[T]) Append(items ...T) error {
	return c.Insert(len(c.items), items...)
}

// Insert adds items before index i.
func (c *Collection[T]) Insert(i int, items ...T) error {
	if i < 0 || i > len(c.items) {
		panic(fmt.Sprintf("collection: insert index %d out of range [0,%d]", i, len(c.items)))
	}
	if len(items) == 0 {
		return nil
	}
	c.items = append(c.items[:i], append(append([]T(nil), items...), c.items[i:]...)...)
	return c.notify(Change{Kind: ChangeAdd, Start: i, Count: len(items)})
}

// RemoveRange removes count items starting at start.
func (c *Collection[T]) RemoveRange(start, count int) error {
	if start < 0 || count < 0 || start+count > len(c.items) {
		panic(fmt.Sprintf("collection: remove [%d,%d) out of range [0,%d)", start, start+count, len(c.items)))
	}
	if count == 0 {
		return nil
	}
	c.items = append(c.items[:start], c.items[start+count:]...)
	return c.notify(Change{Kind: ChangeRemove, Start: start, Count: count})
}

// Replace swaps the item at i for item.
func (c *Collection[T]) Replace(i int, item T) error {
	if i < 0 || i >= len(c.items) {
		panic(fmt.Sprintf("collection: replace index %d out of range [0,%d)", i, len(c.items)))
	}
	c.items[i] = item
	return c.notify(Change{Kind: ChangeReplace, Start: i, Count: 1})
}

// Move relocates the item at from so that it ends up at index to.
func (c *Collection[T]) Move(from, to int) error {
	n := len(c.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		panic(fmt.Sprintf("collection: move %d -> %d out of range [0,%d)", from, to, n))
	}
	if from == to {
		return nil
	}
	item := c.items[from]
	c.items = append(c.items[:from], c.items[from+1:]...)
	c.items = append(c.items[:to], append([]T{item}, c.items[to:]...)...)
	return c.notify(Change{Kind: ChangeMove, Start: from, Count: 1, To: to})
}

// Reset replaces every item.
func (c *Collection[T]) Reset(items []T) error {
	c.items = append([]T(nil), items...)
	return c.notify(Change{Kind: ChangeReset, Count: len(c.items)})
}

// Subscribe registers fn for changes. The returned func removes it.
func (c *Collection[T]) Subscribe(fn func(Change) error) func() {
	if c.listeners == nil {
		c.listeners = make(map[int]func(Change) error)
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

func (c *Collection[T]) notify(ch Change) error {
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var errs []error
	for _, id := range ids {
		if fn, ok := c.listeners[id]; ok {
			if err := fn(ch); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
