package assoc

// Option is a functional option for configuring a Table.
type Option[O any, D any] func(*Table[O, D])

// WithObserver attaches an Observer that receives hit, create, set, reclaim,
// and sweep events for the lifetime of the table.
func WithObserver[O any, D any](o Observer) Option[O, D] {
	return func(t *Table[O, D]) {
		t.observer = o
	}
}
