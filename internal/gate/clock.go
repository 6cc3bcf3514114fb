package gate

import "sync/atomic"

// Clock is the monotonic logical clock that orders verdicts.
//
// Verdicts are stamped with a strictly increasing seq rather than wall
// time, so a journal replays in decision order even when evaluation times
// in the proposals go backwards.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first seq is 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose first seq is last+1.
// Used to resume after the last journaled verdict.
func NewClockAt(last int64) *Clock {
	c := &Clock{}
	c.seq.Store(last)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Reserve returns n consecutive seqs starting at the returned value.
func (c *Clock) Reserve(n int) int64 {
	return c.seq.Add(int64(n)) - int64(n) + 1
}

// Current returns the last issued seq without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
