package dots

import (
	"sync"
	"time"
)

type request struct {
	id FrameID
	fn func()
}

// queue holds pending frame requests in submission order.
type queue struct {
	mu      sync.Mutex
	next    FrameID
	pending []request
}

func (q *queue) RequestFrame(fn func()) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, request{id: q.next, fn: fn})
	return q.next
}

func (q *queue) CancelFrame(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of requests waiting for a frame.
func (q *queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// run executes the requests that were pending when it was called. Requests
// made by the callbacks themselves wait for the next call.
func (q *queue) run() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, r := range batch {
		r.fn()
	}
	return len(batch)
}

// ManualScheduler advances only when Step is called. Hosts with their own
// tick (a game loop, a renderer that needs N frames) drive it directly.
type ManualScheduler struct {
	queue
}

// NewManualScheduler returns an idle scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Step runs one frame's worth of callbacks and reports how many ran.
func (s *ManualScheduler) Step() int {
	return s.run()
}

// TickerScheduler runs frame callbacks on its own goroutine, one batch per
// tick.
type TickerScheduler struct {
	queue

	ticker *time.Ticker
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

// NewTickerScheduler starts a scheduler ticking fps times per second.
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	s := &TickerScheduler{
		ticker: time.NewTicker(time.Second / time.Duration(fps)),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *TickerScheduler) loop() {
	defer close(s.exited)
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.run()
		}
	}
}

// Close stops the ticker and waits for an in-flight batch to finish.
// Pending requests are dropped.
func (s *TickerScheduler) Close() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
	<-s.exited

	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}
