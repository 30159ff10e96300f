package main

import (
	"fmt"
	"io"
	"strings"
)

// sample is the payload the demonstrations store in lists
type sample struct {
	ID    int
	Name  string
	Value float64
	Data  []int

	out io.Writer
}

func newSample(out io.Writer, id int, name string, value float64) sample {
	return sample{
		ID:    id,
		Name:  name,
		Value: value,
		Data:  []int{id, id * 2, id * 3},
		out:   out,
	}
}

func (s sample) Clone() sample {
	cloned := s
	if s.Data != nil {
		cloned.Data = make([]int, len(s.Data))
		copy(cloned.Data, s.Data)
	}
	return cloned
}

func (s *sample) Destroy() {
	if s.out != nil {
		fmt.Fprintf(s.out, "Destroying sample: %d - %s\n", s.ID, s.Name)
	}
}

func (s sample) String() string {
	data := make([]string, 0, len(s.Data))
	for _, value := range s.Data {
		data = append(data, fmt.Sprint(value))
	}

	return fmt.Sprintf("sample { id: %d, name: %s, value: %g, data: [%s] }",
		s.ID, s.Name, s.Value, strings.Join(data, ", "))
}
