package board

import "slices"

// Listener receives board change notifications.
// Calls are synchronous: the board waits for every listener to return
// before continuing, so a listener must not call Move, Spawn, Init or
// LoadState on the board that notified it.
type Listener interface {
	// OnCreated reports a new tile at c. full is true when the board has
	// no empty cell left after the creation.
	OnCreated(b *Board, c Cell, full bool)

	// OnJoined reports that the tile at m.Source merged into the tile at
	// m.Destination(). The destination already holds the doubled value and
	// the source is already empty.
	OnJoined(b *Board, m Movement)

	// OnMoved reports that the tile at m.Source slid to m.Destination()
	// without merging. The source is already empty.
	OnMoved(b *Board, m Movement)

	// OnRemoved reports that c became empty outside of a move
	// (board reset or state restore).
	OnRemoved(b *Board, c Cell)
}

// ListenerFuncs adapts optional callbacks to the Listener interface.
// Register it by pointer; nil callbacks are ignored.
type ListenerFuncs struct {
	Created func(b *Board, c Cell, full bool)
	Joined  func(b *Board, m Movement)
	Moved   func(b *Board, m Movement)
	Removed func(b *Board, c Cell)
}

func (f *ListenerFuncs) OnCreated(b *Board, c Cell, full bool) {
	if f.Created != nil {
		f.Created(b, c, full)
	}
}

func (f *ListenerFuncs) OnJoined(b *Board, m Movement) {
	if f.Joined != nil {
		f.Joined(b, m)
	}
}

func (f *ListenerFuncs) OnMoved(b *Board, m Movement) {
	if f.Moved != nil {
		f.Moved(b, m)
	}
}

func (f *ListenerFuncs) OnRemoved(b *Board, c Cell) {
	if f.Removed != nil {
		f.Removed(b, c)
	}
}

// AddListener registers l. Registering the same listener twice is a no-op.
// l must be comparable (use pointer types).
func (b *Board) AddListener(l Listener) {
	if l == nil {
		return
	}
	if _, ok := b.listenerSet[l]; ok {
		return
	}
	b.listenerSet[l] = struct{}{}
	b.listeners = append(b.listeners, l)
}

// RemoveListener unregisters l. A listener removed while an event is being
// dispatched is not called for the rest of that dispatch.
func (b *Board) RemoveListener(l Listener) {
	if _, ok := b.listenerSet[l]; !ok {
		return
	}
	delete(b.listenerSet, l)
	b.listeners = slices.DeleteFunc(b.listeners, func(x Listener) bool {
		return x == l
	})
}

// dispatch calls fn for each listener registered at dispatch time,
// in registration order.
func (b *Board) dispatch(fn func(Listener)) {
	if len(b.listeners) == 0 {
		return
	}
	snapshot := slices.Clone(b.listeners)
	for _, l := range snapshot {
		if _, ok := b.listenerSet[l]; !ok {
			continue
		}
		fn(l)
	}
}

func (b *Board) notifyCreated(c Cell) {
	full := b.Full()
	b.dispatch(func(l Listener) { l.OnCreated(b, c, full) })
}

func (b *Board) notifyJoined(m Movement) {
	b.dispatch(func(l Listener) { l.OnJoined(b, m) })
}

func (b *Board) notifyMoved(m Movement) {
	b.dispatch(func(l Listener) { l.OnMoved(b, m) })
}

func (b *Board) notifyRemoved(c Cell) {
	b.dispatch(func(l Listener) { l.OnRemoved(b, c) })
}

// EventKind identifies a recorded board event.
type EventKind uint8

const (
	EventCreated EventKind = iota + 1
	EventJoined
	EventMoved
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventJoined:
		return "joined"
	case EventMoved:
		return "moved"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is a recorded board notification.
// Cell is set for created/removed events, Movement for joined/moved events.
// Value is the cell value right after the event (0 for removals).
type Event struct {
	Kind     EventKind
	Cell     Cell
	Movement Movement
	Full     bool
	Value    int
}

// Recorder is a Listener that keeps every event it receives.
type Recorder struct {
	Events []Event
}

func (r *Recorder) OnCreated(b *Board, c Cell, full bool) {
	r.Events = append(r.Events, Event{Kind: EventCreated, Cell: c, Full: full, Value: b.Number(c.Row, c.Col)})
}

func (r *Recorder) OnJoined(b *Board, m Movement) {
	dst := m.Destination()
	r.Events = append(r.Events, Event{Kind: EventJoined, Movement: m, Value: b.Number(dst.Row, dst.Col)})
}

func (r *Recorder) OnMoved(b *Board, m Movement) {
	dst := m.Destination()
	r.Events = append(r.Events, Event{Kind: EventMoved, Movement: m, Value: b.Number(dst.Row, dst.Col)})
}

func (r *Recorder) OnRemoved(_ *Board, c Cell) {
	r.Events = append(r.Events, Event{Kind: EventRemoved, Cell: c})
}

// Count returns how many recorded events have the given kind.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}
