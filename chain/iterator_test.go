package chain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator_Walk(t *testing.T) {
	tracker := newTracker(t)
	list := newIntList(t, tracker, 1, 2, 3, 4, 5)
	defer list.Destroy()

	it := list.Begin()
	require.Equal(t, 1, *it.Value())
	it.Advance()
	require.Equal(t, 2, *it.Value())
	it.Advance()
	require.Equal(t, 3, *it.Value())

	next := it.Next()
	require.Equal(t, 3, *it.Value())
	require.Equal(t, 4, *next.Value())

	require.False(t, list.Begin().Equal(list.End()))
	require.True(t, list.Begin().Equal(list.Begin()))
	require.False(t, it.Equal(next))
}

func TestIterator_ReachesEnd(t *testing.T) {
	tracker := newTracker(t)
	list := newIntList(t, tracker, 10, 20, 30)
	defer list.Destroy()

	sum := 0
	count := 0
	it := list.Begin()
	for ; !it.Equal(list.End()); it.Advance() {
		sum += *it.Value()
		count++
	}

	require.Equal(t, 3, count)
	require.Equal(t, 60, sum)
	require.True(t, it.Done())
	require.Panics(t, func() { it.Value() })
	require.Panics(t, func() { it.Advance() })
}

func TestIterator_Restartable(t *testing.T) {
	tracker := newTracker(t)
	list := newIntList(t, tracker, 1, 2, 3)
	defer list.Destroy()

	collect := func() []int {
		var values []int
		for it := list.Begin(); !it.Done(); it.Advance() {
			values = append(values, *it.Value())
		}
		return values
	}

	require.Equal(t, []int{1, 2, 3}, collect())
	require.Equal(t, []int{1, 2, 3}, collect())
}

func TestIterator_MutatesElements(t *testing.T) {
	tracker := newTracker(t)
	list := newIntList(t, tracker, 1, 2, 3)
	defer list.Destroy()

	it := list.Begin().Next()
	*it.Value() = 20

	// Element mutation is not a structural change
	require.Equal(t, 20, *it.Value())
	require.Equal(t, []int{1, 20, 3}, list.Values())
}

func TestIterator_InvalidatedByMutation(t *testing.T) {
	tracker := newTracker(t)
	list := newIntList(t, tracker, 1, 2, 3)
	defer list.Destroy()

	it := list.Begin()
	require.NoError(t, list.Append(4))
	require.Panics(t, func() { it.Value() })

	it = list.Begin()
	require.NoError(t, list.RemoveLast())
	require.Panics(t, func() { it.Advance() })

	it = list.Begin()
	moved := list.Move()
	defer moved.Destroy()
	require.Panics(t, func() { it.Value() })
}

func TestIterator_EmptyList(t *testing.T) {
	tracker := newTracker(t)
	list := newIntList(t, tracker)

	it := list.Begin()
	require.True(t, it.Done())
	require.True(t, it.Equal(list.End()))
	require.Panics(t, func() { it.Value() })
}

func TestList_ForEach(t *testing.T) {
	tracker := newTracker(t)
	list := newIntList(t, tracker, 1, 2, 3, 4)
	defer list.Destroy()

	var seen []int
	list.ForEach(func(value *int) bool {
		seen = append(seen, *value)
		return *value < 3
	})
	require.Equal(t, []int{1, 2, 3}, seen)

	list.ForEach(func(value *int) bool {
		*value *= 10
		return true
	})
	require.Equal(t, []int{10, 20, 30, 40}, list.Values())
}
