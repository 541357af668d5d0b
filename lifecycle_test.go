package assoc

import (
	"runtime"
	"testing"
	"time"
	"weak"

	"github.com/stretchr/testify/assert"
)

// populateTransient creates n entries whose owners are unreachable as soon as
// this function returns. Kept out of the callers' frames so the collector
// sees the owners as dead.
//
//go:noinline
func populateTransient(table *Table[testHost, *testShadow], n int) {
	for i := 0; i < n; i++ {
		host := &testHost{Val: i}
		Default(table, host)
	}
}

//go:noinline
func createAndDropOwner(t *testing.T, table *Table[testHost, *testShadow]) {
	host := &testHost{Val: 1}

	s1 := Default(table, host)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 0, s1.Val)

	s2 := Default(table, host)
	assert.Equal(t, 1, table.Len())
	assert.Same(t, s1, s2)
}

func Test_ReclaimAfterOwnerDies(t *testing.T) {
	table := NewTable[testHost, *testShadow]()

	populateTransient(table, 4)
	assert.Equal(t, 4, table.Len())

	// Reclamation rides on the collector and is not synchronous with the
	// owners' death, so poll rather than asserting after a single cycle.
	assert.Eventually(t, func() bool {
		runtime.GC()
		return table.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func Test_EntrySurvivesWhileOwnerLive(t *testing.T) {
	table := NewTable[testHost, *testShadow]()
	host := &testHost{Val: 1}

	shadow := Default(table, host)
	shadowRef := weak.Make(shadow)

	runtime.GC()
	runtime.GC()

	assert.Equal(t, 1, table.Len())
	got, ok := table.Get(host)
	assert.True(t, ok)
	assert.Same(t, shadow, got)

	// The table is the only strong holder of the dependent; it must have kept
	// it alive through the collections above.
	assert.NotNil(t, shadowRef.Value())

	runtime.KeepAlive(host)
}

func Test_Sweep_RemovesDeadEntries(t *testing.T) {
	table := NewTable[testHost, *testShadow]()

	liveHost := &testHost{Val: 100}
	liveShadow := Default(table, liveHost)

	populateTransient(table, 8)
	assert.Equal(t, 9, table.Len())

	// The automatic cleanup races with the explicit sweep here; between the
	// two of them every dead entry must go, and the live one must stay.
	assert.Eventually(t, func() bool {
		runtime.GC()
		table.Sweep()
		return table.Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	got, ok := table.Get(liveHost)
	assert.True(t, ok)
	assert.Same(t, liveShadow, got)

	runtime.KeepAlive(liveHost)
}

func Test_Sweep_NoDeadEntries(t *testing.T) {
	table := NewTable[testHost, *testShadow]()
	host := &testHost{Val: 1}
	Default(table, host)

	assert.Equal(t, 0, table.Sweep())
	assert.Equal(t, 1, table.Len())

	runtime.KeepAlive(host)
}

func Test_EndToEnd_Lifecycle(t *testing.T) {
	table := NewTable[testHost, *testShadow]()
	assert.Equal(t, 0, table.Len())

	createAndDropOwner(t, table)

	assert.Eventually(t, func() bool {
		runtime.GC()
		return table.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)
}
