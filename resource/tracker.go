package resource

import (
	"context"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/memlist/memutils"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

const defaultTrackerName = "tracker"

var nextTrackerID uint64

// TrackerOptions contains optional settings when creating a Tracker
type TrackerOptions struct {
	// Upstream is the resource that actually services allocations. If nil, DefaultResource()
	// is used.
	Upstream MemoryResource
	// Name is attached to every log line the Tracker writes. Defaults to "tracker".
	Name string
}

type blockRecord struct {
	size      int
	alignment uint
}

type trackedBlock struct {
	address unsafe.Pointer
	blockRecord
}

// Tracker is a MemoryResource that wraps an upstream resource and keeps a record of every block
// it has handed out and not yet taken back. Deallocation requests for addresses it has no record
// of fail with ErrInvalidDeallocation instead of reaching the upstream.
//
// Tracker is not safe for concurrent use. It must outlive every container bound to it; call
// Destroy when its scope ends to release and report any blocks that were never returned.
type Tracker struct {
	id        uint64
	name      string
	logger    *slog.Logger
	upstream  MemoryResource
	destroyed bool

	blocks *swiss.Map[unsafe.Pointer, blockRecord]
	stats  memutils.Statistics
}

var _ MemoryResource = &Tracker{}

// NewTracker creates a new Tracker
//
// logger - receives a debug line for every allocate/deallocate and an error line for every block
// still outstanding at Destroy. If nil, logging is discarded.
//
// options - Optional parameters: it is valid to leave all the fields blank
func NewTracker(logger *slog.Logger, options TrackerOptions) *Tracker {
	if logger == nil {
		logger = slog.New(discardHandler{})
	}

	upstream := options.Upstream
	if upstream == nil {
		upstream = DefaultResource()
	}

	name := options.Name
	if name == "" {
		name = defaultTrackerName
	}

	return &Tracker{
		id:       atomic.AddUint64(&nextTrackerID, 1),
		name:     name,
		logger:   logger,
		upstream: upstream,
		blocks:   swiss.NewMap[unsafe.Pointer, blockRecord](42),
	}
}

// ID returns the handle that identifies this Tracker for IsEqual
func (t *Tracker) ID() uint64 { return t.id }

// Name returns the label this Tracker attaches to its log lines
func (t *Tracker) Name() string { return t.name }

// Upstream returns the resource this Tracker delegates to
func (t *Tracker) Upstream() MemoryResource { return t.upstream }

func (t *Tracker) checkLive(operation string) {
	if t.destroyed {
		panic(fmt.Sprintf("attempting to %s tracker %q after it was destroyed", operation, t.name))
	}
}

func (t *Tracker) Allocate(size int, alignment uint) (unsafe.Pointer, error) {
	t.checkLive("allocate from")

	if size == 0 {
		t.logger.Debug("Tracker::Allocate ignoring zero-size request", slog.String("tracker", t.name))
		return nil, nil
	}

	ptr, err := t.upstream.Allocate(size, alignment)
	if err != nil {
		return nil, err
	}
	if ptr == nil {
		return nil, errors.Newf("upstream returned no storage for a %d byte request", size)
	}

	if t.blocks.Has(ptr) {
		panic(fmt.Sprintf("upstream handed out address %p while it was still outstanding", ptr))
	}

	t.blocks.Put(ptr, blockRecord{size: size, alignment: alignment})
	t.stats.BlockCount++
	t.stats.BlockBytes += size
	t.stats.AllocationCount++
	t.stats.AllocationBytes += size

	t.logger.Debug("Tracker::Allocate",
		slog.String("tracker", t.name),
		slog.String("address", fmt.Sprintf("%p", ptr)),
		slog.Int("size", size),
		slog.Uint64("alignment", uint64(alignment)))
	return ptr, nil
}

func (t *Tracker) Deallocate(ptr unsafe.Pointer, size int, alignment uint) error {
	if ptr == nil {
		return nil
	}

	t.checkLive("deallocate through")

	record, ok := t.blocks.Get(ptr)
	if !ok {
		return errors.Wrapf(ErrInvalidDeallocation, "tracker %q has no record of address %p (%d bytes)", t.name, ptr, size)
	}

	if record.size != size || record.alignment != alignment {
		t.logger.Warn("Tracker::Deallocate layout does not match the recorded allocation",
			slog.String("tracker", t.name),
			slog.String("address", fmt.Sprintf("%p", ptr)),
			slog.Int("size", size),
			slog.Int("recordedSize", record.size),
			slog.Uint64("alignment", uint64(alignment)),
			slog.Uint64("recordedAlignment", uint64(record.alignment)))
	}

	// The upstream always receives the recorded layout
	err := t.upstream.Deallocate(ptr, record.size, record.alignment)
	if err != nil {
		return err
	}

	t.blocks.Delete(ptr)
	t.stats.BlockCount--
	t.stats.BlockBytes -= record.size
	t.stats.DeallocationCount++
	t.stats.DeallocationBytes += record.size

	t.logger.Debug("Tracker::Deallocate",
		slog.String("tracker", t.name),
		slog.String("address", fmt.Sprintf("%p", ptr)),
		slog.Int("size", record.size))
	return nil
}

// IsEqual returns true only when other is this same Tracker. Two trackers never share records,
// so blocks from one can never be released through another.
func (t *Tracker) IsEqual(other MemoryResource) bool {
	tracker, ok := other.(*Tracker)
	return ok && tracker != nil && tracker.id == t.id
}

// OutstandingBlockCount returns the number of blocks allocated and not yet deallocated
func (t *Tracker) OutstandingBlockCount() int {
	return t.blocks.Count()
}

// OutstandingBytes returns the total size of the blocks allocated and not yet deallocated
func (t *Tracker) OutstandingBytes() int {
	return t.stats.BlockBytes
}

// AddStatistics sums this tracker's statistics into the provided memutils.Statistics object
func (t *Tracker) AddStatistics(stats *memutils.Statistics) {
	stats.AddStatistics(&t.stats)
}

// AddDetailedStatistics sums this tracker's statistics, including the extremes of its live
// blocks, into the provided memutils.DetailedStatistics object
func (t *Tracker) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	stats.AllocationCount += t.stats.AllocationCount
	stats.AllocationBytes += t.stats.AllocationBytes
	stats.DeallocationCount += t.stats.DeallocationCount
	stats.DeallocationBytes += t.stats.DeallocationBytes

	t.blocks.Iter(func(_ unsafe.Pointer, record blockRecord) bool {
		stats.AddBlock(record.size, record.alignment)
		return false
	})
}

func (t *Tracker) sortedBlocks() []trackedBlock {
	blocks := make([]trackedBlock, 0, t.blocks.Count())
	t.blocks.Iter(func(address unsafe.Pointer, record blockRecord) bool {
		blocks = append(blocks, trackedBlock{address: address, blockRecord: record})
		return false
	})

	slices.SortFunc(blocks, func(left, right trackedBlock) int {
		switch {
		case uintptr(left.address) < uintptr(right.address):
			return -1
		case uintptr(left.address) > uintptr(right.address):
			return 1
		}
		return 0
	})
	return blocks
}

// VisitBlocks calls the provided callback once for each outstanding block, in ascending address
// order. Iteration stops at the first error, which is returned.
func (t *Tracker) VisitBlocks(visit func(ptr unsafe.Pointer, size int, alignment uint) error) error {
	for _, block := range t.sortedBlocks() {
		err := visit(block.address, block.size, block.alignment)
		if err != nil {
			return err
		}
	}

	return nil
}

// Validate checks the record set against the running totals
func (t *Tracker) Validate() error {
	count := 0
	bytes := 0
	var err error
	t.blocks.Iter(func(address unsafe.Pointer, record blockRecord) bool {
		if address == nil {
			err = errors.New("tracker holds a record for a nil address")
			return true
		}
		if record.size <= 0 {
			err = errors.Newf("record for address %p has invalid size %d", address, record.size)
			return true
		}
		count++
		bytes += record.size
		return false
	})
	if err != nil {
		return err
	}

	if count != t.stats.BlockCount {
		return errors.Newf("tracker holds %d records but has counted %d outstanding blocks", count, t.stats.BlockCount)
	}
	if bytes != t.stats.BlockBytes {
		return errors.Newf("tracker records total %d bytes but has counted %d outstanding bytes", bytes, t.stats.BlockBytes)
	}
	if t.stats.AllocationCount-t.stats.DeallocationCount != count {
		return errors.Newf("tracker serviced %d allocations and %d deallocations but holds %d records",
			t.stats.AllocationCount, t.stats.DeallocationCount, count)
	}

	return nil
}

// BuildStatsString returns a json document describing this tracker's statistics. If detailed is
// true, every outstanding block is listed as well.
func (t *Tracker) BuildStatsString(detailed bool) string {
	var stats memutils.DetailedStatistics
	stats.Clear()
	t.AddDetailedStatistics(&stats)

	writer := jwriter.NewWriter()
	obj := writer.Object()
	obj.Name("Name").String(t.name)

	total := obj.Name("Total").Object()
	total.Name("BlockCount").Int(stats.BlockCount)
	total.Name("BlockBytes").Int(stats.BlockBytes)
	total.Name("AllocationCount").Int(stats.AllocationCount)
	total.Name("AllocationBytes").Int(stats.AllocationBytes)
	total.Name("DeallocationCount").Int(stats.DeallocationCount)
	total.Name("DeallocationBytes").Int(stats.DeallocationBytes)
	if stats.BlockCount > 0 {
		total.Name("BlockSizeMin").Int(stats.BlockSizeMin)
		total.Name("BlockSizeMax").Int(stats.BlockSizeMax)
		total.Name("AlignmentMax").Int(int(stats.AlignmentMax))
	}
	total.End()

	if detailed {
		blocks := obj.Name("Blocks").Array()
		for _, block := range t.sortedBlocks() {
			o := blocks.Object()
			o.Name("Address").String(fmt.Sprintf("%p", block.address))
			o.Name("Size").Int(block.size)
			o.Name("Alignment").Int(int(block.alignment))
			o.End()
		}
		blocks.End()
	}

	obj.End()
	return string(writer.Bytes())
}

// Destroy ends the tracker's lifetime. Any blocks that are still outstanding were leaked by their
// owners: each is logged, released upstream, and forgotten. Failures while releasing leaked blocks
// are logged and never returned or raised. Every forgotten block counts as a deallocation in the
// tracker's statistics. Calling Destroy more than once is a no-op; any other
// use of the Tracker afterwards panics.
func (t *Tracker) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true

	leaked := t.sortedBlocks()
	for _, block := range leaked {
		t.logUnreleasedMemory(block)

		// The record is dropped whether or not the upstream accepts it
		t.stats.DeallocationCount++
		t.stats.DeallocationBytes += block.size

		err := t.releaseLeakedBlock(block)
		if err != nil {
			t.logger.LogAttrs(context.Background(),
				slog.LevelError,
				"[UNRELEASED MEMORY] error while releasing unreleased memory",
				slog.String("tracker", t.name),
				slog.String("address", fmt.Sprintf("%p", block.address)),
				slog.Any("error", err))
		}
	}

	if len(leaked) > 0 {
		t.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] tracker destroyed with outstanding blocks",
			slog.String("tracker", t.name),
			slog.Int("count", len(leaked)),
			slog.Int("bytes", t.stats.BlockBytes))
	}

	t.blocks = swiss.NewMap[unsafe.Pointer, blockRecord](42)
	t.stats.BlockCount = 0
	t.stats.BlockBytes = 0
}

func (t *Tracker) releaseLeakedBlock(block trackedBlock) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = errors.Newf("upstream panicked: %v", recovered)
		}
	}()

	return t.upstream.Deallocate(block.address, block.size, block.alignment)
}

func (t *Tracker) logUnreleasedMemory(block trackedBlock) {
	t.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] unfreed block",
		slog.String("tracker", t.name),
		slog.String("address", fmt.Sprintf("%p", block.address)),
		slog.Int("size", block.size),
		slog.Uint64("alignment", uint64(block.alignment)),
	)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
