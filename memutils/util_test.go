package memutils_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/memlist/memutils"
)

func TestCheckPow2(t *testing.T) {
	for _, value := range []uint{0, 1, 2, 4, 64, 4096} {
		require.NoError(t, memutils.CheckPow2(value, "value"))
	}

	err := memutils.CheckPow2(12, "alignment")
	require.ErrorIs(t, err, memutils.PowerOfTwoError)
	require.Contains(t, err.Error(), "alignment is 12")
}

func TestNormalizeAlignment(t *testing.T) {
	alignment, err := memutils.NormalizeAlignment(0)
	require.NoError(t, err)
	require.Equal(t, memutils.DefaultAlignment, alignment)

	alignment, err = memutils.NormalizeAlignment(32)
	require.NoError(t, err)
	require.Equal(t, uint(32), alignment)

	_, err = memutils.NormalizeAlignment(24)
	require.ErrorIs(t, err, memutils.PowerOfTwoError)
}

func TestAlign(t *testing.T) {
	require.Equal(t, 16, memutils.AlignUp(9, 8))
	require.Equal(t, 16, memutils.AlignUp(16, 8))
	require.Equal(t, uintptr(0x1040), memutils.AlignAddress(0x1001, 64))
	require.Equal(t, uintptr(0x1000), memutils.AlignAddress(0x1000, 64))
}

func TestDetailedStatistics(t *testing.T) {
	var stats memutils.DetailedStatistics
	stats.Clear()
	require.Equal(t, math.MaxInt, stats.BlockSizeMin)

	stats.AddBlock(100, 8)
	stats.AddBlock(20, 64)

	var other memutils.DetailedStatistics
	other.Clear()
	other.AddBlock(5, 4)
	other.AllocationCount = 3

	stats.AddDetailedStatistics(&other)
	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:      3,
			BlockBytes:      125,
			AllocationCount: 3,
		},
		BlockSizeMin: 5,
		BlockSizeMax: 100,
		AlignmentMax: 64,
	}, stats)
}
