package dinoblast

import (
	"sort"
	"time"

	"github.com/vovakirdan/dinoblast/internal/core"
)

// eventKind identifies a delayed simulation event.
type eventKind int

const (
	eventChainHit  eventKind = iota // Damage a dino caught in a blast
	eventBurstShot                  // One bullet of a boss burst
	eventDeathDrop                  // One boss death drop roll
)

// event is a delayed action. Targets are referenced by ID so a stale
// event resolves to a no-op.
type event struct {
	due    time.Duration
	seq    uint64
	kind   eventKind
	target EntityID
	pos    core.Vec
}

// Scheduler fires events after a delay measured in simulation time.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue []event // Sorted by (due, seq)
}

// After schedules an event d from now.
func (s *Scheduler) After(d time.Duration, e event) {
	if d < 0 {
		d = 0
	}
	s.seq++
	e.due = s.now + d
	e.seq = s.seq
	i := sort.Search(len(s.queue), func(i int) bool {
		q := s.queue[i]
		return q.due > e.due || (q.due == e.due && q.seq > e.seq)
	})
	s.queue = append(s.queue, event{})
	copy(s.queue[i+1:], s.queue[i:])
	s.queue[i] = e
}

// Advance moves time forward and returns the events now due, in order.
func (s *Scheduler) Advance(dt time.Duration) []event {
	s.now += dt
	n := 0
	for n < len(s.queue) && s.queue[n].due <= s.now {
		n++
	}
	if n == 0 {
		return nil
	}
	due := make([]event, n)
	copy(due, s.queue[:n])
	s.queue = append(s.queue[:0], s.queue[n:]...)
	return due
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Clear drops every pending event.
func (s *Scheduler) Clear() {
	s.queue = s.queue[:0]
}
