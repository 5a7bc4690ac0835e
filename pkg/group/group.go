package group

import "github.com/goliatone/go-storefront/pkg/preview"

// ID identifies a record for the lifetime of its group. IDs start at 1 and
// are never reused; zero means "no record".
type ID uint64

// Entry pairs a record with its ID.
type Entry[R any] struct {
	ID     ID
	Record R
}

// Group is an immutable ordered sequence of records.
type Group[R Shape[R]] struct {
	entries []Entry[R]
	last    ID
	blank   func() R
}

// New builds a group whose appended records come from blank (the zero R when
// blank is nil), seeded with initial.
func New[R Shape[R]](blank func() R, initial ...R) Group[R] {
	g := Group[R]{blank: blank}
	if len(initial) == 0 {
		return g
	}
	g.entries = make([]Entry[R], 0, len(initial))
	for _, record := range initial {
		g.last++
		g.entries = append(g.entries, Entry[R]{ID: g.last, Record: record})
	}
	return g
}

// Len returns the number of records.
func (g Group[R]) Len() int {
	return len(g.entries)
}

// At returns the record at index.
func (g Group[R]) At(index int) (R, bool) {
	if index < 0 || index >= len(g.entries) {
		var zero R
		return zero, false
	}
	return g.entries[index].Record, true
}

// EntryAt returns the record and ID at index.
func (g Group[R]) EntryAt(index int) (Entry[R], bool) {
	if index < 0 || index >= len(g.entries) {
		return Entry[R]{}, false
	}
	return g.entries[index], true
}

// IndexOf returns the current position of id, or -1.
func (g Group[R]) IndexOf(id ID) int {
	if id == 0 {
		return -1
	}
	for i, entry := range g.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

// Records returns the records in order. The slice is a copy.
func (g Group[R]) Records() []R {
	out := make([]R, len(g.entries))
	for i, entry := range g.entries {
		out[i] = entry.Record
	}
	return out
}

// Entries returns the records with their IDs. The slice is a copy.
func (g Group[R]) Entries() []Entry[R] {
	return append([]Entry[R](nil), g.entries...)
}

// IDs returns the record IDs in order.
func (g Group[R]) IDs() []ID {
	out := make([]ID, len(g.entries))
	for i, entry := range g.entries {
		out[i] = entry.ID
	}
	return out
}

// Blank returns a fresh empty record.
func (g Group[R]) Blank() R {
	if g.blank == nil {
		var zero R
		return zero
	}
	return g.blank()
}

// Append adds one blank record at the end.
func (g Group[R]) Append() Group[R] {
	next := g.clone(1)
	next.last++
	next.entries = append(next.entries, Entry[R]{ID: next.last, Record: g.Blank()})
	return next
}

// RemoveAt deletes the record at index. Out-of-range indices return g as is.
func (g Group[R]) RemoveAt(index int) Group[R] {
	if index < 0 || index >= len(g.entries) {
		return g
	}
	next := g.clone(0)
	next.entries = append(next.entries[:index], next.entries[index+1:]...)
	return next
}

// RemoveID deletes the record with id, wherever it currently sits.
func (g Group[R]) RemoveID(id ID) Group[R] {
	return g.RemoveAt(g.IndexOf(id))
}

// UpdateField sets one field of the record at index.
func (g Group[R]) UpdateField(index int, field, value string) Group[R] {
	return g.update(index, func(record R) R {
		return record.WithField(field, value)
	})
}

// UpdateFieldID sets one field of the record with id.
func (g Group[R]) UpdateFieldID(id ID, field, value string) Group[R] {
	return g.UpdateField(g.IndexOf(id), field, value)
}

// SetImage stores img on the record at index. A nil img clears the image.
func (g Group[R]) SetImage(index int, img *preview.Image) Group[R] {
	return g.update(index, func(record R) R {
		return record.WithImageRef(img)
	})
}

// SetImageID stores img on the record with id.
func (g Group[R]) SetImageID(id ID, img *preview.Image) Group[R] {
	return g.SetImage(g.IndexOf(id), img)
}

// Reset replaces all records. IDs keep counting from where the group was.
func (g Group[R]) Reset(records ...R) Group[R] {
	next := Group[R]{last: g.last, blank: g.blank}
	if len(records) == 0 {
		return next
	}
	next.entries = make([]Entry[R], 0, len(records))
	for _, record := range records {
		next.last++
		next.entries = append(next.entries, Entry[R]{ID: next.last, Record: record})
	}
	return next
}

func (g Group[R]) update(index int, fn func(R) R) Group[R] {
	if index < 0 || index >= len(g.entries) {
		return g
	}
	next := g.clone(0)
	next.entries[index].Record = fn(next.entries[index].Record)
	return next
}

func (g Group[R]) clone(extra int) Group[R] {
	entries := make([]Entry[R], len(g.entries), len(g.entries)+extra)
	copy(entries, g.entries)
	return Group[R]{entries: entries, last: g.last, blank: g.blank}
}
