package group

import (
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-storefront/pkg/preview"
)

// Store owns one Group for a form. Mutations are serialized, and SetImage
// reads files on their own goroutines so field edits are never blocked by a
// pending read. Wait may run while other goroutines keep calling SetImage.
type Store[R Shape[R]] struct {
	mu    sync.Mutex
	idle  *sync.Cond
	group Group[R]
	opts  options

	// selections[id] counts image selections on a record; a read only lands
	// if no newer selection or clear happened since it started.
	selections map[ID]uint64
	pending    int
}

// NewStore constructs a store whose records come from blank.
func NewStore[R Shape[R]](blank func() R, opts ...Option) *Store[R] {
	cfg := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	g := New(blank)
	for i := 0; i < cfg.initial; i++ {
		g = g.Append()
	}
	s := &Store[R]{group: g, opts: cfg, selections: make(map[ID]uint64)}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// Name returns the label given with WithName.
func (s *Store[R]) Name() string {
	if s == nil {
		return ""
	}
	return s.opts.name
}

// Snapshot returns the current group. Groups are immutable, so the value is
// safe to keep.
func (s *Store[R]) Snapshot() Group[R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.group
}

// Len returns the current number of records.
func (s *Store[R]) Len() int {
	return s.Snapshot().Len()
}

// Dispatch applies a and returns the new group. Image actions supersede any
// read still pending for the same record.
func (s *Store[R]) Dispatch(a Action) Group[R] {
	s.mu.Lock()
	if a.Op == OpSetImage || a.Op == OpClearImage {
		id := a.ID
		if id == 0 {
			if entry, ok := s.group.EntryAt(a.Index); ok {
				id = entry.ID
			}
		}
		if s.group.IndexOf(id) >= 0 {
			s.selections[id]++
		}
	}
	changed := s.commitLocked(a)
	after := s.group
	s.mu.Unlock()

	s.notify(changed)
	return after
}

// Append adds one blank record.
func (s *Store[R]) Append() Group[R] {
	return s.Dispatch(Append())
}

// RemoveAt deletes the record at index; out-of-range is a no-op.
func (s *Store[R]) RemoveAt(index int) Group[R] {
	return s.Dispatch(RemoveAt(index))
}

// UpdateField sets one field at index; out-of-range is a no-op.
func (s *Store[R]) UpdateField(index int, field, value string) Group[R] {
	return s.Dispatch(UpdateField(index, field, value))
}

// Reset replaces every record, for example when loading an existing product.
func (s *Store[R]) Reset(records ...R) Group[R] {
	s.mu.Lock()
	s.group = s.group.Reset(records...)
	after := s.group
	s.mu.Unlock()

	if s.opts.onChange != nil {
		s.opts.onChange()
	}
	return after
}

// SetImage reads file into a preview and attaches it to the record that sits
// at index now. A nil file clears the image before SetImage returns. Each call
// supersedes earlier ones on the same record: a read that completes after a
// newer SetImage, or after its record was removed, is dropped. Reads cannot be
// cancelled; use Wait to block until every pending read has settled.
func (s *Store[R]) SetImage(index int, file preview.File) {
	s.mu.Lock()
	entry, ok := s.group.EntryAt(index)
	if !ok {
		s.mu.Unlock()
		return
	}
	s.selections[entry.ID]++
	seq := s.selections[entry.ID]
	if file == nil {
		changed := s.commitLocked(SetImageByID(entry.ID, nil))
		s.mu.Unlock()
		s.notify(changed)
		return
	}
	s.pending++
	s.mu.Unlock()

	go func(id ID, seq uint64) {
		defer s.readDone()
		s.completeRead(id, seq, file)
	}(entry.ID, seq)
}

// Wait blocks until all reads started by SetImage have completed, including
// reads started while waiting.
func (s *Store[R]) Wait() {
	s.mu.Lock()
	for s.pending > 0 {
		s.idle.Wait()
	}
	s.mu.Unlock()
}

func (s *Store[R]) readDone() {
	s.mu.Lock()
	s.pending--
	if s.pending == 0 {
		s.idle.Broadcast()
	}
	s.mu.Unlock()
}

func (s *Store[R]) completeRead(id ID, seq uint64, file preview.File) {
	logger := s.opts.logger.With(
		zap.String("group", s.opts.name),
		zap.Uint64("record", uint64(id)),
		zap.String("file", file.Name()),
	)

	img, err := s.opts.reader.Read(file)
	if err != nil {
		logger.Warn("image preview failed", zap.Error(err))
		if s.opts.onReadError != nil {
			s.opts.onReadError(&ReadError{Group: s.opts.name, ID: id, File: file.Name(), Err: err})
		}
		return
	}

	s.mu.Lock()
	switch {
	case s.group.IndexOf(id) < 0:
		if s.selections[id] == seq {
			delete(s.selections, id)
		}
		s.mu.Unlock()
		logger.Debug("record removed before preview completed")
		return
	case s.selections[id] != seq:
		s.mu.Unlock()
		logger.Debug("preview superseded by a newer selection")
		return
	}
	changed := s.commitLocked(SetImageByID(id, img))
	s.mu.Unlock()

	s.notify(changed)
	logger.Debug("image preview attached", zap.String("media_type", img.MediaType))
}

// commitLocked applies a with s.mu held and reports whether the group changed.
func (s *Store[R]) commitLocked(a Action) bool {
	before := s.group
	s.group = Reduce(s.group, a)
	return !sameGroup(before, s.group)
}

func (s *Store[R]) notify(changed bool) {
	if changed && s.opts.onChange != nil {
		s.opts.onChange()
	}
}

func sameGroup[R Shape[R]](a, b Group[R]) bool {
	if len(a.entries) != len(b.entries) || a.last != b.last {
		return false
	}
	if len(a.entries) == 0 {
		return true
	}
	return &a.entries[0] == &b.entries[0]
}
