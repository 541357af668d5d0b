package assoc

import (
	"runtime"
	"sync"
	"weak"
)

// Table associates at most one dependent value of type D with each live owner
// of type O. Owners are keyed by identity, not by value: two distinct owners
// with equal contents get independent entries. The table holds the owner side
// of each entry weakly, so an entry never keeps its owner alive, while the
// dependent side is held strongly until the entry is removed.
//
// An entry is removed after its owner becomes unreachable. Removal is not
// synchronous with the owner's death: it happens when the garbage collector
// notices the owner is gone, or earlier if Sweep is called. Until then Len
// still counts the entry.
//
// The table is intended for use from a single logical thread of control. The
// internal mutex only fences the map against the runtime's cleanup goroutine;
// callers that share a table across goroutines must provide their own
// synchronization around compound operations.
//
// A dependent that strongly references its own owner pins the owner for the
// lifetime of the table and its entry is never reclaimed. The table does not
// detect this.
type Table[O any, D any] struct {
	mu       sync.Mutex
	entries  map[weak.Pointer[O]]D
	observer Observer
}

// NewTable creates an empty association table.
func NewTable[O any, D any](opts ...Option[O, D]) *Table[O, D] {
	t := &Table[O, D]{
		entries: make(map[weak.Pointer[O]]D),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetOrCreate returns the dependent associated with owner, creating one with
// factory on the first access. Repeated calls with the same live owner return
// the value stored by the first call unchanged, and the factory argument of
// later calls is ignored. The factory runs at most once per owner.
//
// The lookup and the insert are a single step: the factory runs with the
// table's internal lock held, so it must not call back into the same table.
//
// The owner must be non-nil and heap-allocated; this is a requirement of the
// runtime's cleanup machinery, which panics otherwise.
func (t *Table[O, D]) GetOrCreate(owner *O, factory func(*O) D) D {
	key := weak.Make(owner)

	t.mu.Lock()
	if value, ok := t.entries[key]; ok {
		n := len(t.entries)
		t.mu.Unlock()
		t.emit(EventHit, n)
		return value
	}

	value := factory(owner)
	t.entries[key] = value
	n := len(t.entries)
	t.mu.Unlock()

	runtime.AddCleanup(owner, t.reclaim, key)
	t.emit(EventCreate, n)
	return value
}

// Set unconditionally associates value with owner, replacing any dependent
// previously stored for it. The prior value, if any, is discarded. No
// construction strategy is involved; the caller supplies the value fully
// formed.
func (t *Table[O, D]) Set(owner *O, value D) {
	key := weak.Make(owner)

	t.mu.Lock()
	_, existed := t.entries[key]
	t.entries[key] = value
	n := len(t.entries)
	t.mu.Unlock()

	if !existed {
		runtime.AddCleanup(owner, t.reclaim, key)
	}
	t.emit(EventSet, n)
}

// Get returns the dependent stored for owner and true if an entry exists, or
// the zero value and false otherwise. It never constructs a value and never
// modifies the table.
func (t *Table[O, D]) Get(owner *O) (D, bool) {
	key := weak.Make(owner)

	t.mu.Lock()
	value, ok := t.entries[key]
	t.mu.Unlock()
	return value, ok
}

// Len returns the current number of entries. Entries whose owner has died but
// has not yet been reclaimed are still counted.
func (t *Table[O, D]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Sweep removes every entry whose owner has become unreachable and returns
// the number of entries removed. Sweep gives deterministic reclamation for
// callers that don't want to wait for the collector; entries it removes would
// otherwise be removed by the automatic cleanup eventually.
func (t *Table[O, D]) Sweep() int {
	t.mu.Lock()
	removed := 0
	for key := range t.entries {
		if key.Value() == nil {
			delete(t.entries, key)
			removed++
		}
	}
	n := len(t.entries)
	t.mu.Unlock()

	for i := 0; i < removed; i++ {
		t.emit(EventSwept, n)
	}
	return removed
}

// reclaim is registered with runtime.AddCleanup for each inserted entry and
// runs on the collector's cleanup goroutine after the owner is unreachable.
// The entry may already be gone if Sweep got there first.
func (t *Table[O, D]) reclaim(key weak.Pointer[O]) {
	t.mu.Lock()
	_, ok := t.entries[key]
	delete(t.entries, key)
	n := len(t.entries)
	t.mu.Unlock()

	if ok {
		t.emit(EventReclaim, n)
	}
}

func (t *Table[O, D]) emit(event Event, entries int) {
	if t.observer == nil {
		return
	}
	t.observer.On(EventData{
		Event:   event,
		Entries: entries,
	})
}
