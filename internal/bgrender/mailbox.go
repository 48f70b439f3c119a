package bgrender

import (
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// mailbox is an unbounded FIFO. Senders never block; receive blocks until a
// value arrives or the mailbox is closed and drained.
type mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  *linkedlistqueue.Queue
	closed bool
}

func newMailbox() *mailbox {
	m := &mailbox{queue: linkedlistqueue.New()}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// send appends v. It reports false if the mailbox is closed.
func (m *mailbox) send(v any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	m.queue.Enqueue(v)
	m.cond.Signal()
	return true
}

// receive blocks for the next value. It reports false once the mailbox is
// closed and empty.
func (m *mailbox) receive() (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.queue.Empty() && !m.closed {
		m.cond.Wait()
	}
	return m.queue.Dequeue()
}

// tryReceive returns the next value without waiting.
func (m *mailbox) tryReceive() (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Dequeue()
}

func (m *mailbox) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Size()
}

// close stops further sends. Queued values can still be received.
func (m *mailbox) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.cond.Broadcast()
}
