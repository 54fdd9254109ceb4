package telemetry

import "github.com/pthm-cable/biome/components"

// Series is a read-only copy of the rolling population counts, oldest first.
type Series struct {
	Plants     []int
	Herbivores []int
	Carnivores []int
}

// Len returns the number of samples in the series.
func (s Series) Len() int {
	return len(s.Plants)
}

// Counts holds one population sample indexed by kind.
type Counts [components.NumKinds]int

// Total returns the number of organisms across all kinds.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// History keeps the most recent population samples per kind.
type History struct {
	size   int
	series [components.NumKinds][]int
}

// NewHistory creates a history capped at size samples per kind.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	h := &History{size: size}
	for k := range h.series {
		h.series[k] = make([]int, 0, size)
	}
	return h
}

// Append adds one sample per kind, dropping the oldest beyond the cap.
func (h *History) Append(c Counts) {
	for k, n := range c {
		s := append(h.series[k], n)
		if len(s) > h.size {
			s = append(s[:0], s[len(s)-h.size:]...)
		}
		h.series[k] = s
	}
}

// Len returns the number of samples held.
func (h *History) Len() int {
	return len(h.series[components.KindPlant])
}

// Latest returns the most recent sample.
func (h *History) Latest() (Counts, bool) {
	var c Counts
	if h.Len() == 0 {
		return c, false
	}
	for k, s := range h.series {
		c[k] = s[len(s)-1]
	}
	return c, true
}

// Series returns a copy of the held samples.
func (h *History) Series() Series {
	return Series{
		Plants:     append([]int(nil), h.series[components.KindPlant]...),
		Herbivores: append([]int(nil), h.series[components.KindHerbivore]...),
		Carnivores: append([]int(nil), h.series[components.KindCarnivore]...),
	}
}
