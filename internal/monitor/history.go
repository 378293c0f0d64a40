package monitor

import "sync"

// DefaultHistorySize is the default number of samples retained per series.
const DefaultHistorySize = 60

// Series recorded by the dashboard once per good frame.
const (
	SeriesAbnormalities = "abnormalities"
	SeriesWriters       = "writers"
	SeriesReaders       = "readers"
)

// History keeps recent samples of named series in ring buffers for the
// header sparkline. It is safe for concurrent use.
type History struct {
	mu     sync.RWMutex
	size   int
	series map[string]*ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a history with the given per-series capacity.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:   size,
		series: make(map[string]*ringBuffer),
	}
}

// Push appends a sample to the named series.
func (h *History) Push(name string, value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf, ok := h.series[name]
	if !ok {
		buf = newRingBuffer(h.size)
		h.series[name] = buf
	}
	buf.push(value)
}

// Last returns up to count of the newest samples, oldest first.
func (h *History) Last(name string, count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.series[name]
	if !ok {
		return nil
	}
	return buf.getLast(count)
}

// Count returns how many samples the named series holds.
func (h *History) Count(name string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.series[name]
	if !ok {
		return 0
	}
	return buf.count
}

// Clear drops every series.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.series = make(map[string]*ringBuffer)
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order.
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)
	// head is the next write slot; the newest value sits at head-1.
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}
