package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intEqual(a, b int) bool { return a == b }

func TestHistory_SetAndNoOp(t *testing.T) {
	h := New(1, intEqual)

	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	assert.True(t, h.Set(2))
	assert.Equal(t, 2, h.Present())
	assert.True(t, h.CanUndo())

	before := h.Snapshot()
	assert.False(t, h.Set(2), "setting an equal value must be a no-op")
	assert.Equal(t, before, h.Snapshot())
}

func TestHistory_UpdateUsesLatestPresent(t *testing.T) {
	h := New(0, intEqual)
	inc := func(v int) int { return v + 1 }

	h.Update(inc)
	h.Update(inc)
	h.Update(inc)

	assert.Equal(t, 3, h.Present())
	assert.Equal(t, []int{0, 1, 2}, h.Snapshot().Past)
}

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	h := New("a", nil)
	h.Set("b")
	h.Set("c")

	require.True(t, h.Undo())
	assert.Equal(t, "b", h.Present())
	snap := h.Snapshot()
	assert.Equal(t, []string{"a"}, snap.Past)
	assert.Equal(t, []string{"c"}, snap.Future)

	require.True(t, h.Undo())
	assert.Equal(t, []string{"b", "c"}, h.Snapshot().Future, "future[0] is the next redo")

	require.True(t, h.Redo())
	assert.Equal(t, "b", h.Present())
	require.True(t, h.Redo())
	assert.Equal(t, "c", h.Present())
	assert.False(t, h.CanRedo())
}

func TestHistory_BoundaryNoOps(t *testing.T) {
	h := New(10, intEqual)
	h.Set(20)

	assert.True(t, h.Undo())
	assert.False(t, h.Undo())
	assert.False(t, h.Undo())
	assert.Equal(t, 10, h.Present())

	assert.True(t, h.Redo())
	assert.False(t, h.Redo())
	assert.Equal(t, 20, h.Present())
}

func TestHistory_SetAfterUndoDiscardsFuture(t *testing.T) {
	h := New(1, intEqual)
	h.Set(2)
	h.Set(3)
	h.Undo()

	assert.True(t, h.Set(9))
	assert.False(t, h.CanRedo())
	assert.False(t, h.Redo())
	assert.Equal(t, 9, h.Present())
	assert.Equal(t, []int{1, 2}, h.Snapshot().Past)
}

func TestHistory_PresentNeverInStacks(t *testing.T) {
	h := New(0, intEqual)
	ops := []func(){
		func() { h.Set(1) },
		func() { h.Set(2) },
		func() { h.Undo() },
		func() { h.Set(2) },
		func() { h.Undo() },
		func() { h.Redo() },
		func() { h.Set(2) },
		func() { h.Set(3) },
	}
	for i, op := range ops {
		op()
		snap := h.Snapshot()
		last := len(snap.Past) - 1
		if last >= 0 {
			assert.NotEqual(t, snap.Present, snap.Past[last], "step %d", i)
		}
		if len(snap.Future) > 0 {
			assert.NotEqual(t, snap.Present, snap.Future[0], "step %d", i)
		}
	}
}

func TestHistory_WithLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		sets     int
		wantPast int
	}{
		{name: "unlimited", limit: 0, sets: 10, wantPast: 10},
		{name: "negative is unlimited", limit: -3, sets: 4, wantPast: 4},
		{name: "capped", limit: 3, sets: 10, wantPast: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(0, intEqual, WithLimit[int](tt.limit))
			for i := 1; i <= tt.sets; i++ {
				h.Set(i)
			}
			past := h.Snapshot().Past
			assert.Len(t, past, tt.wantPast)
			assert.Equal(t, tt.sets-1, past[len(past)-1])
		})
	}
}

func TestHistory_SnapshotIsACopy(t *testing.T) {
	h := New(0, intEqual)
	h.Set(1)
	snap := h.Snapshot()
	snap.Past[0] = 42

	assert.Equal(t, []int{0}, h.Snapshot().Past)
}
