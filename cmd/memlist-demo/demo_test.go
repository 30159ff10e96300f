package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestDemo(stats bool) (*demo, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	return &demo{
		out:    out,
		logger: slog.New(slog.NewTextHandler(logs, nil)),
		stats:  stats,
	}, out, logs
}

func TestDemo_Ints(t *testing.T) {
	d, out, logs := newTestDemo(false)
	require.NoError(t, d.run("ints"))

	require.Contains(t, out.String(), "Elements: 1 2 3 4 5\n")
	require.Contains(t, out.String(), "After Append: 1 2 3 4 5 6 7\n")
	require.Contains(t, out.String(), "After RemoveLast: 1 2 3 4 5 6\n")
	require.Contains(t, out.String(), "Front: 1\nBack: 6\n")
	require.Contains(t, out.String(), "Using iterator: 1 2 3 4 5 6\n")
	require.NotContains(t, logs.String(), "UNRELEASED MEMORY")
}

func TestDemo_Complex(t *testing.T) {
	d, out, logs := newTestDemo(false)
	require.NoError(t, d.run("complex"))

	require.Contains(t, out.String(), "sample { id: 2, name: Second Modified, value: 20.7, data: [2, 4, 6] }")
	require.Contains(t, out.String(), "Copied list size: 3\n")
	require.Contains(t, out.String(), "Moved list size: 3\nOriginal list size after move: 0\n")
	// Both the copy and the moved list destroy their three elements
	require.Equal(t, 2, bytes.Count(out.Bytes(), []byte("Destroying sample: 3 - Third")))
	require.NotContains(t, logs.String(), "UNRELEASED MEMORY")
}

func TestDemo_Resource(t *testing.T) {
	d, out, _ := newTestDemo(true)
	require.NoError(t, d.run("resource"))

	require.Contains(t, out.String(), "Outstanding blocks: 5\n")
	require.Contains(t, out.String(), "Outstanding blocks after removal: 3\n")
	require.Contains(t, out.String(), "Outstanding blocks: 6\n")
	require.Contains(t, out.String(), "Elements: 0 10 20 50 60 70\n")
	require.Contains(t, out.String(), `"Name":"resource"`)
	require.Contains(t, out.String(), "Scope ended")
}

func TestSample_Clone(t *testing.T) {
	original := newSample(nil, 4, "Four", 4.5)
	cloned := original.Clone()
	cloned.Data[0] = 99

	require.Equal(t, []int{4, 8, 12}, original.Data)
	require.Equal(t, "sample { id: 4, name: Four, value: 4.5, data: [99, 8, 12] }", cloned.String())
}
