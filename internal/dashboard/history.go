package dashboard

// DefaultHistorySize is how many productivity samples the sparkline keeps.
const DefaultHistorySize = 120

// History is a fixed-size ring of productivity samples taken from status
// polls. It is owned by the model and only touched from Update.
type History struct {
	data  []float64
	head  int
	count int
}

// NewHistory creates a history with room for size samples.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{data: make([]float64, size)}
}

// Push appends a sample, overwriting the oldest once full.
func (h *History) Push(v float64) {
	h.data[h.head] = v
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

// Len returns the number of stored samples.
func (h *History) Len() int {
	return h.count
}

// Slice returns the samples in chronological order.
func (h *History) Slice() []float64 {
	if h.count == 0 {
		return nil
	}
	out := make([]float64, h.count)
	start := (h.head - h.count + len(h.data)) % len(h.data)
	for i := 0; i < h.count; i++ {
		out[i] = h.data[(start+i)%len(h.data)]
	}
	return out
}

// Latest returns the newest sample and whether one exists.
func (h *History) Latest() (float64, bool) {
	if h.count == 0 {
		return 0, false
	}
	return h.data[(h.head-1+len(h.data))%len(h.data)], true
}
