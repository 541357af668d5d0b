package assoc

// Observer receives table lifecycle events. EventReclaim is delivered from
// the runtime's cleanup goroutine, so implementations must be safe for
// concurrent use.
type Observer interface {
	On(eventData EventData)
}

// Event represents a table event type.
type Event int

const (
	// EventHit is emitted when a lookup finds an existing entry.
	EventHit Event = iota
	// EventCreate is emitted when a factory ran and a new entry was stored.
	EventCreate
	// EventSet is emitted when Set stores or replaces a value.
	EventSet
	// EventReclaim is emitted when an entry is removed after its owner was
	// collected.
	EventReclaim
	// EventSwept is emitted for each entry removed by an explicit Sweep.
	EventSwept
)

// EventData carries the details of a table event.
type EventData struct {
	Event Event
	// Entries is the entry count immediately after the event.
	Entries int
}
