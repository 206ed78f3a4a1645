// Package ledger keeps the per-index metadata (key and height) backing a
// windowed list. Metadata is created lazily the first time an index is
// looked up and dropped wholesale when the data source is replaced.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/tujuhre12/vlist/internal/vlist/geom"
)

var (
	// ErrIndexOutOfRange is returned when an index has no backing record.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNilKeyFunc is returned when a ledger is built without a key func.
	ErrNilKeyFunc = errors.New("key func is required")
)

// KeyFunc generates the unique key of a record. It must be injective and
// stable for a given index during the lifetime of one data source.
type KeyFunc[T any] func(record T, index int) string

// ItemMeta is the metadata of one record.
type ItemMeta struct {
	Index  int
	Key    string
	Height int
	// Measured is false until a real height has been reported.
	Measured bool
}

// Ledger maps record indices to their metadata and positions.
type Ledger[T any] struct {
	keyFn         KeyFunc[T]
	defaultHeight int
	origin        int

	records []T
	items   map[int]*ItemMeta
	offsets *offsets
}

// New creates a ledger. Unmeasured items are assumed to be defaultHeight
// rows tall.
func New[T any](keyFn KeyFunc[T], defaultHeight int) (*Ledger[T], error) {
	if keyFn == nil {
		return nil, ErrNilKeyFunc
	}
	return &Ledger[T]{
		keyFn:         keyFn,
		defaultHeight: max(0, defaultHeight),
		items:         make(map[int]*ItemMeta),
		offsets:       newOffsets(0),
	}, nil
}

// SetDataSource replaces the records and drops all metadata.
func (l *Ledger[T]) SetDataSource(records []T) {
	l.records = records
	l.items = make(map[int]*ItemMeta)
	l.offsets = newOffsets(len(records))
	slog.Debug("Ledger data source replaced", "length", len(records))
}

// DataSource returns the current records.
func (l *Ledger[T]) DataSource() []T {
	return l.records
}

// Len returns the number of records.
func (l *Ledger[T]) Len() int {
	return len(l.records)
}

// DefaultHeight returns the height assumed for unmeasured items.
func (l *Ledger[T]) DefaultHeight() int {
	return l.defaultHeight
}

// SetOrigin sets the offset of the first item, normally the header height.
func (l *Ledger[T]) SetOrigin(origin int) {
	l.origin = max(0, origin)
}

// Origin returns the offset of the first item.
func (l *Ledger[T]) Origin() int {
	return l.origin
}

// Record returns the record at index.
func (l *Ledger[T]) Record(index int) (T, error) {
	if index < 0 || index >= len(l.records) {
		var zero T
		return zero, l.outOfRange(index)
	}
	return l.records[index], nil
}

// Item returns the metadata at index, creating it on first access.
func (l *Ledger[T]) Item(index int) (*ItemMeta, error) {
	if item, ok := l.items[index]; ok {
		return item, nil
	}
	if index < 0 || index >= len(l.records) {
		return nil, l.outOfRange(index)
	}
	item := &ItemMeta{
		Index:  index,
		Key:    l.keyFn(l.records[index], index),
		Height: l.defaultHeight,
	}
	l.items[index] = item
	return item, nil
}

// UpdateItemHeight stores a measured height and returns the signed
// difference from the previous height.
func (l *Ledger[T]) UpdateItemHeight(index, height int) (int, error) {
	item, err := l.Item(index)
	if err != nil {
		return 0, err
	}
	height = max(0, height)
	delta := height - item.Height
	item.Height = height
	item.Measured = true
	l.offsets.add(index, delta)
	return delta, nil
}

// ItemOffset returns the top offset and height of the item at index. The
// index is clamped into the data source; an empty source yields (0, 0).
func (l *Ledger[T]) ItemOffset(index int) (top, height int) {
	if len(l.records) == 0 {
		return 0, 0
	}
	index = min(max(index, 0), len(l.records)-1)
	return l.top(index), l.height(index)
}

// SumHeights returns the summed height of the items in [from, to).
func (l *Ledger[T]) SumHeights(from, to int) int {
	from = max(from, 0)
	to = min(to, len(l.records))
	if to <= from {
		return 0
	}
	return (to-from)*l.defaultHeight + l.offsets.prefix(to) - l.offsets.prefix(from)
}

// TotalHeight returns the summed height of every item.
func (l *Ledger[T]) TotalHeight() int {
	return l.SumHeights(0, len(l.records))
}

// ItemsByRange returns every item whose interval intersects r.
func (l *Ledger[T]) ItemsByRange(r geom.Range) ([]*ItemMeta, error) {
	var items []*ItemMeta
	err := l.IterateByRange(r, func(item *ItemMeta) bool {
		items = append(items, item)
		return true
	})
	return items, err
}

// IterateByRange calls visit, in index order, for every item whose interval
// [top, top+height) intersects r. Iteration stops once an item's top reaches
// r.Bottom or visit returns false.
func (l *Ledger[T]) IterateByRange(r geom.Range, visit func(*ItemMeta) bool) error {
	start := l.firstBelow(r.Top)
	top := l.top(start)
	for i := start; i < len(l.records); i++ {
		item, err := l.Item(i)
		if err != nil {
			return err
		}
		bottom := top + item.Height
		if r.Intersects(top, bottom) && !visit(item) {
			return nil
		}
		top = bottom
		if top >= r.Bottom {
			break
		}
	}
	return nil
}

// Dispose drops all state.
func (l *Ledger[T]) Dispose() {
	l.records = nil
	l.items = make(map[int]*ItemMeta)
	l.offsets = newOffsets(0)
}

func (l *Ledger[T]) top(index int) int {
	return l.origin + l.SumHeights(0, index)
}

func (l *Ledger[T]) height(index int) int {
	if item, ok := l.items[index]; ok {
		return item.Height
	}
	return l.defaultHeight
}

// firstBelow returns the smallest index whose bottom edge lies below y.
func (l *Ledger[T]) firstBelow(y int) int {
	return sort.Search(len(l.records), func(i int) bool {
		return l.top(i+1) > y
	})
}

func (l *Ledger[T]) outOfRange(index int) error {
	return fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, index, len(l.records))
}
