package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/vkngwrapper/memlist/chain"
	"github.com/vkngwrapper/memlist/resource"
	"golang.org/x/exp/slog"
)

type demo struct {
	out    io.Writer
	logger *slog.Logger
	stats  bool
}

func (d *demo) newTracker(name string) *resource.Tracker {
	return resource.NewTracker(d.logger, resource.TrackerOptions{Name: name})
}

func (d *demo) printStats(tracker *resource.Tracker) {
	if d.stats {
		fmt.Fprintln(d.out, tracker.BuildStatsString(true))
	}
}

func destroyList[T any](d *demo, list *chain.List[T]) {
	err := list.Destroy()
	if err != nil {
		d.logger.Error("failed to destroy list", slog.Any("error", err))
	}
}

func printList[T any](d *demo, label string, list *chain.List[T]) {
	values := make([]string, 0, list.Len())
	list.ForEach(func(value *T) bool {
		values = append(values, fmt.Sprint(*value))
		return true
	})
	fmt.Fprintf(d.out, "%s: %s\n", label, strings.Join(values, " "))
}

func (d *demo) ints() error {
	fmt.Fprintln(d.out, "\n=== Lists of int ===")

	tracker := d.newTracker("ints")
	defer tracker.Destroy()

	list, err := chain.NewFromValues(resource.NewAllocator[int](tracker), 1, 2, 3, 4, 5)
	if err != nil {
		return err
	}
	defer destroyList(d, list)

	fmt.Fprintf(d.out, "Size: %d\n", list.Len())
	printList(d, "Elements", list)

	for _, value := range []int{6, 7} {
		err = list.Append(value)
		if err != nil {
			return err
		}
	}
	printList(d, "After Append", list)

	err = list.RemoveLast()
	if err != nil {
		return err
	}
	printList(d, "After RemoveLast", list)

	first, err := list.Front()
	if err != nil {
		return err
	}
	last, err := list.Back()
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Front: %d\n", *first)
	fmt.Fprintf(d.out, "Back: %d\n", *last)

	fmt.Fprint(d.out, "Using iterator:")
	for it := list.Begin(); !it.Equal(list.End()); it.Advance() {
		fmt.Fprintf(d.out, " %d", *it.Value())
	}
	fmt.Fprintln(d.out)

	d.printStats(tracker)
	return nil
}

func (d *demo) complex() error {
	fmt.Fprintln(d.out, "\n=== Lists of sample ===")

	tracker := d.newTracker("complex")
	defer tracker.Destroy()

	list := chain.New(resource.NewAllocator[sample](tracker))
	defer destroyList(d, list)

	for _, s := range []sample{
		newSample(d.out, 1, "First", 10.5),
		newSample(d.out, 2, "Second", 20.7),
		newSample(d.out, 3, "Third", 30.9),
	} {
		err := list.AppendMove(&s)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(d.out, "Size: %d\n", list.Len())
	list.ForEach(func(s *sample) bool {
		fmt.Fprintln(d.out, s)
		return true
	})

	it := list.Begin()
	it.Advance()
	it.Value().Name = "Second Modified"

	fmt.Fprintln(d.out, "\nAfter modification:")
	list.ForEach(func(s *sample) bool {
		fmt.Fprintln(d.out, s)
		return true
	})

	fmt.Fprintln(d.out, "\nCopying list:")
	copied, err := chain.NewCopy(list.Allocator(), list)
	if err != nil {
		return err
	}
	defer destroyList(d, copied)
	fmt.Fprintf(d.out, "Copied list size: %d\n", copied.Len())

	fmt.Fprintln(d.out, "\nMoving list:")
	moved := list.Move()
	defer destroyList(d, moved)
	fmt.Fprintf(d.out, "Moved list size: %d\n", moved.Len())
	fmt.Fprintf(d.out, "Original list size after move: %d\n", list.Len())

	d.printStats(tracker)
	return nil
}

func (d *demo) resource() error {
	fmt.Fprintln(d.out, "\n=== Tracked memory resource ===")

	err := func() error {
		tracker := d.newTracker("resource")
		defer tracker.Destroy()

		list := chain.New(resource.NewAllocator[int](tracker))
		defer destroyList(d, list)

		fmt.Fprintln(d.out, "Allocating 5 ints...")
		for i := 0; i < 5; i++ {
			err := list.Append(i * 10)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(d.out, "Outstanding blocks: %d\n", tracker.OutstandingBlockCount())

		fmt.Fprintln(d.out, "\nRemoving 2 ints...")
		for i := 0; i < 2; i++ {
			err := list.RemoveLast()
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(d.out, "Outstanding blocks after removal: %d\n", tracker.OutstandingBlockCount())

		fmt.Fprintln(d.out, "\nAllocating 3 more ints...")
		for i := 5; i < 8; i++ {
			err := list.Append(i * 10)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(d.out, "Outstanding blocks: %d\n", tracker.OutstandingBlockCount())
		printList(d, "\nElements", list)

		d.printStats(tracker)
		fmt.Fprintln(d.out, "\nGoing out of scope - the tracker will clean up...")
		return nil
	}()
	if err != nil {
		return err
	}

	fmt.Fprintln(d.out, "Scope ended, all memory has been returned")
	return nil
}
