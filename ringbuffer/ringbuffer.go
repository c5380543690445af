// Package ringbuffer implements the fixed-capacity, lock-free
// single-producer/single-consumer sample queue that bridges the
// sample generator (producer thread) to the host's real-time audio
// callback (consumer thread), per spec.md §4.6/§5. Both Write and Read
// are wait-free on the steady path: no locks, no allocation.
package ringbuffer

import "sync/atomic"

// RingBuffer is safe for exactly one concurrent writer and one
// concurrent reader; it is not safe for multiple writers or multiple
// readers.
type RingBuffer struct {
	buf  []float32
	cap  uint64
	head atomic.Uint64 // next slot the consumer will read
	tail atomic.Uint64 // next slot the producer will write
}

// New returns a RingBuffer with room for capacity samples.
func New(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{
		buf: make([]float32, capacity),
		cap: uint64(capacity),
	}
}

// Write copies as many of samples as fit into the buffer, returning
// the count actually written. It never blocks: when full it simply
// returns less than len(samples); the caller (the producer) decides
// whether to drop the remainder or back off and retry.
func (r *RingBuffer) Write(samples []float32) int {
	head := r.head.Load()
	tail := r.tail.Load()
	free := r.cap - (tail - head)
	n := uint64(len(samples))
	if n > free {
		n = free
	}
	for i := uint64(0); i < n; i++ {
		r.buf[(tail+i)%r.cap] = samples[i]
	}
	r.tail.Store(tail + n)
	return int(n)
}

// Read copies as many samples as are available into out, returning
// the count actually read. It never blocks: an underrun (not enough
// samples available) yields fewer samples than requested, never
// silence padding — callers that need exact-length buffers are
// responsible for zero-filling the remainder themselves.
func (r *RingBuffer) Read(out []float32) int {
	head := r.head.Load()
	tail := r.tail.Load()
	available := tail - head
	n := uint64(len(out))
	if n > available {
		n = available
	}
	for i := uint64(0); i < n; i++ {
		out[i] = r.buf[(head+i)%r.cap]
	}
	r.head.Store(head + n)
	return int(n)
}

// FillPercentage returns the fraction of capacity currently occupied,
// for visualization.
func (r *RingBuffer) FillPercentage() float32 {
	head := r.head.Load()
	tail := r.tail.Load()
	return float32(tail-head) / float32(r.cap)
}
