package debugui

import "time"

// frameHistory is a fixed ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	index   int
}

func newFrameHistory(size int) *frameHistory {
	if size < 1 {
		size = 1
	}
	return &frameHistory{samples: make([]float32, size)}
}

func (h *frameHistory) add(dt time.Duration) {
	h.samples[h.index] = float32(dt.Seconds() * 1000.0)
	h.index = (h.index + 1) % len(h.samples)
}

func (h *frameHistory) average() float32 {
	var total float32
	for _, s := range h.samples {
		total += s
	}
	return total / float32(len(h.samples))
}
