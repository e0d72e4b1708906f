package engine

import (
	"sync"
	"time"
)

type EventKind string

const (
	EventLevelUp EventKind = "level_up"
	EventReward  EventKind = "reward"
)

// SourceTask marks the reward event of a completed task.
const SourceTask = "task"

// Event is a deferred presentation message. It carries copies of the values
// that caused it; consumers never read engine state through it.
type Event struct {
	Kind   EventKind
	Level  int
	XP     int
	Stat   StatKey
	Source string
}

// Notifier is a fire-and-forget deferred event queue. Publish never blocks:
// each event waits on its own one-shot timer and is then offered to a
// buffered channel, dropping it if the buffer is full. Close cancels every
// pending event, so nothing is delivered after teardown.
type Notifier struct {
	clock Clock

	mu      sync.Mutex
	next    uint64
	pending map[uint64]Timer
	closed  bool
	events  chan Event
}

func NewNotifier(clock Clock, buffer int) *Notifier {
	if clock == nil {
		clock = RealClock{}
	}
	if buffer < 1 {
		buffer = 1
	}
	return &Notifier{
		clock:   clock,
		pending: map[uint64]Timer{},
		events:  make(chan Event, buffer),
	}
}

// Events is closed by Close.
func (n *Notifier) Events() <-chan Event {
	return n.events
}

func (n *Notifier) Publish(ev Event, delay time.Duration) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.next++
	id := n.next
	n.pending[id] = n.clock.AfterFunc(delay, func() { n.deliver(id, ev) })
}

func (n *Notifier) deliver(id uint64, ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	delete(n.pending, id)
	select {
	case n.events <- ev:
	default:
	}
}

// PendingCount reports events armed but not yet delivered.
func (n *Notifier) PendingCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pending)
}

func (n *Notifier) Close() {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for id, t := range n.pending {
		t.Stop()
		delete(n.pending, id)
	}
	close(n.events)
}
