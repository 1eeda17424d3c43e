package viewer

// Scheduler runs a callback on the next display refresh
type Scheduler interface {
	RequestFrame(fn func())
}

// FrameQueue is a Scheduler driven by an outer loop calling Flush once per refresh.
// Callbacks requested while flushing wait for the next Flush.
type FrameQueue struct {
	pending []func()
	running []func()
}

// NewFrameQueue creates an empty queue
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame queues fn for the next Flush
func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Pending returns the number of callbacks waiting for the next Flush
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Flush runs the callbacks queued before this call and returns how many ran
func (q *FrameQueue) Flush() int {
	q.running, q.pending = q.pending, q.running[:0]
	for i, fn := range q.running {
		fn()
		q.running[i] = nil
	}
	return len(q.running)
}
