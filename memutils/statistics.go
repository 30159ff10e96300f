package memutils

import "math"

// Statistics summarizes the blocks a memory resource is currently holding, alongside
// the allocate/deallocate traffic it has serviced over its lifetime.
type Statistics struct {
	BlockCount        int
	BlockBytes        int
	AllocationCount   int
	AllocationBytes   int
	DeallocationCount int
	DeallocationBytes int
}

func (s *Statistics) Clear() {
	s.BlockCount = 0
	s.BlockBytes = 0
	s.AllocationCount = 0
	s.AllocationBytes = 0
	s.DeallocationCount = 0
	s.DeallocationBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.BlockCount += other.BlockCount
	s.BlockBytes += other.BlockBytes
	s.AllocationCount += other.AllocationCount
	s.AllocationBytes += other.AllocationBytes
	s.DeallocationCount += other.DeallocationCount
	s.DeallocationBytes += other.DeallocationBytes
}

// DetailedStatistics extends Statistics with the size and alignment extremes of the live blocks
type DetailedStatistics struct {
	Statistics
	BlockSizeMin int
	BlockSizeMax int
	AlignmentMax uint
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.BlockSizeMin = math.MaxInt
	s.BlockSizeMax = 0
	s.AlignmentMax = 0
}

// AddBlock records a single live block
func (s *DetailedStatistics) AddBlock(size int, alignment uint) {
	s.BlockCount++
	s.BlockBytes += size

	if size < s.BlockSizeMin {
		s.BlockSizeMin = size
	}

	if size > s.BlockSizeMax {
		s.BlockSizeMax = size
	}

	if alignment > s.AlignmentMax {
		s.AlignmentMax = alignment
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)

	if other.BlockSizeMin < s.BlockSizeMin {
		s.BlockSizeMin = other.BlockSizeMin
	}

	if other.BlockSizeMax > s.BlockSizeMax {
		s.BlockSizeMax = other.BlockSizeMax
	}

	if other.AlignmentMax > s.AlignmentMax {
		s.AlignmentMax = other.AlignmentMax
	}
}
