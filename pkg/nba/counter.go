package nba

import "sync/atomic"

// Counter counts external call attempts, including retries. The pipeline
// owns one per run and passes it to the client explicitly so tests can
// isolate their own counts.
type Counter struct {
	n atomic.Int64
}

// NewCounter returns a counter starting at zero.
func NewCounter() *Counter {
	return &Counter{}
}

// Increment adds one attempted call.
func (c *Counter) Increment() {
	c.n.Add(1)
}

// Total returns the number of attempted calls so far.
func (c *Counter) Total() int64 {
	return c.n.Load()
}
