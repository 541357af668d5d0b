// Package assoc provides a weak-keyed association table: a map from an owner
// object to a single lazily created dependent value, where the entry is
// released automatically once the owner is no longer referenced anywhere else.
// The table holds the dependent strongly and the owner weakly, so attaching a
// dependent never extends the owner's lifetime.
//
// The Table object has comprehensive documentation about how it works.
//
// There are also generic helper functions that make the common construction
// strategies more concise.
package assoc
