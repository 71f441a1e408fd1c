package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltered(t *testing.T) {
	c, _ := newTestController(t, seedTasks()...)
	assert.Equal(t, c.Tasks(), c.Filtered())

	c.SetFilter("Work")
	assert.Equal(t, []int64{1, 3}, ids(c.Filtered()))
	assert.Equal(t, 5, c.Len(), "filtering never mutates the list")

	c.SetFilter("Nope")
	assert.Empty(t, c.Filtered())

	c.SetFilter("")
	assert.Equal(t, AllTags, c.Filter())
	assert.Len(t, c.Filtered(), 5)
}

func TestFilteredTracksMutations(t *testing.T) {
	c, _ := newTestController(t, seedTasks()...)
	c.SetFilter("Work")
	require.NoError(t, c.Delete(1))
	assert.Equal(t, []int64{3}, ids(c.Filtered()))
}

func TestTagUniverse(t *testing.T) {
	c, _ := newTestController(t, seedTasks()...)
	assert.Equal(t, []string{AllTags, "Work", "Study", "Errands"}, c.TagUniverse())

	empty, _ := newTestController(t)
	assert.Equal(t, []string{AllTags}, empty.TagUniverse())
}

func TestTagCounts(t *testing.T) {
	c, _ := newTestController(t, seedTasks()...)
	assert.Equal(t, map[string]int{AllTags: 5, "Work": 2, "Study": 1, "Errands": 1}, c.TagCounts())
}

func TestReorderUnfiltered(t *testing.T) {
	tests := []struct {
		name     string
		src, dst int
		want     []int64
	}{
		{"down", 0, 3, []int64{2, 3, 4, 1, 5}},
		{"up", 4, 1, []int64{1, 5, 2, 3, 4}},
		{"to end", 1, 4, []int64{1, 3, 4, 5, 2}},
		{"to start", 2, 0, []int64{3, 1, 2, 4, 5}},
		{"same place", 2, 2, []int64{1, 2, 3, 4, 5}},
		{"no destination", 2, -1, []int64{1, 2, 3, 4, 5}},
		{"source out of range", 7, 1, []int64{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t, seedTasks()...)
			require.NoError(t, c.Reorder(tt.src, tt.dst))
			assert.Equal(t, tt.want, ids(c.Tasks()))
		})
	}
}

func TestReorderMatchesSplice(t *testing.T) {
	seed := seedTasks()
	for i := range seed {
		for j := range seed {
			c, _ := newTestController(t, seed...)
			require.NoError(t, c.Reorder(i, j))

			want := ids(seed)
			moved := want[i]
			want = append(want[:i:i], want[i+1:]...)
			want = append(want[:j:j], append([]int64{moved}, want[j:]...)...)
			assert.Equal(t, want, ids(c.Tasks()), "reorder(%d, %d)", i, j)
		}
	}
}

func TestReorderFilteredUsesViewIndices(t *testing.T) {
	c, st := newTestController(t, seedTasks()...)
	c.SetFilter("Work")

	// view is [1, 3]; drag "three" onto "one".
	require.NoError(t, c.Reorder(1, 0))
	assert.Equal(t, []int64{3, 1, 2, 4, 5}, ids(c.Tasks()))
	assert.Equal(t, []int64{3, 1}, ids(c.Filtered()))
	assert.Equal(t, ids(c.Tasks()), ids(st.tasks))

	require.NoError(t, c.Reorder(0, 1))
	assert.Equal(t, []int64{1, 3, 2, 4, 5}, ids(c.Tasks()))

	require.NoError(t, c.Reorder(0, 2), "destination outside the view")
	assert.Equal(t, []int64{1, 3, 2, 4, 5}, ids(c.Tasks()))
}
