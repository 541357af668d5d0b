package assoc

import (
	"fmt"
	"reflect"
)

// Status is a diagnostic tool that returns a string describing the state of
// the table: the owner and dependent types and the current entry count, split
// into entries whose owner is still live and entries awaiting reclamation.
//
// Note that the split is a snapshot; an owner can die between the check and
// the caller reading the result. The format is not stable and should only be
// used for debugging and logging.
func (t *Table[O, D]) Status() string {
	t.mu.Lock()
	live := 0
	dead := 0
	for key := range t.entries {
		if key.Value() != nil {
			live++
		} else {
			dead++
		}
	}
	t.mu.Unlock()

	return fmt.Sprintf("assoc.Table[%v, %v] - entries: %d (live: %d, awaiting reclaim: %d)",
		reflect.TypeFor[O](), reflect.TypeFor[D](), live+dead, live, dead)
}
