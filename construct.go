package assoc

// OwnerInitializer is an interface that can be implemented by a dependent
// type to populate its initial state from the owner it is being attached to.
// Implementing this interface is required if you want to use the FromOwner
// function.
type OwnerInitializer[O any] interface {
	// InitFromOwner is called exactly once, on a freshly allocated dependent,
	// before the dependent is stored or returned.
	InitFromOwner(owner *O)
}

// Default returns the dependent associated with owner, allocating a zeroed
// *D on the first access. It is only applicable to tables whose dependent
// category is a pointer type; for anything else use GetOrCreate with an
// explicit factory.
//
// Repeated calls with the same live owner return the same *D instance.
func Default[O any, D any](t *Table[O, *D], owner *O) *D {
	return t.GetOrCreate(owner, func(*O) *D {
		return new(D)
	})
}

// FromOwner returns the dependent associated with owner, allocating a *D and
// initializing it from the owner on the first access. The dependent type must
// implement OwnerInitializer, which is enforced at compile time; PD is
// inferred and never needs to be spelled out at the call site.
//
// This is the strategy to use when the dependent must record or derive state
// from its owner at creation time.
func FromOwner[O any, D any, PD interface {
	*D
	OwnerInitializer[O]
}](t *Table[O, *D], owner *O) *D {
	return t.GetOrCreate(owner, func(o *O) *D {
		d := new(D)
		PD(d).InitFromOwner(o)
		return d
	})
}
