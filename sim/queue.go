package sim

import "container/heap"

// queuedEvent pairs an Event with its insertion sequence number.
// The sequence lives here rather than on Event so events stay plain values.
type queuedEvent struct {
	ev  Event
	seq uint64
}

// EventQueue is a priority queue of events with deterministic ordering.
// Ordering: timestamp → kind priority → insertion order.
//
// Thread-safety: NOT thread-safe. Must be used from a single goroutine.
type EventQueue struct {
	events  []queuedEvent
	nextSeq uint64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{
		events: make([]queuedEvent, 0),
	}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Less implements heap.Interface with deterministic ordering
func (q *EventQueue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]

	if ei.ev.timestamp != ej.ev.timestamp {
		return ei.ev.timestamp < ej.ev.timestamp
	}

	priI, priJ := kindPriority[ei.ev.kind], kindPriority[ej.ev.kind]
	if priI != priJ {
		return priI < priJ
	}

	return ei.seq < ej.seq
}

// Swap implements heap.Interface
func (q *EventQueue) Swap(i, j int) {
	q.events[i], q.events[j] = q.events[j], q.events[i]
}

// Push implements heap.Interface. Use Schedule instead.
func (q *EventQueue) Push(x any) {
	q.events = append(q.events, x.(queuedEvent))
}

// Pop implements heap.Interface. Use PopNext instead.
func (q *EventQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	q.events = old[0 : n-1]
	return item
}

// Schedule adds an event to the queue.
func (q *EventQueue) Schedule(ev Event) {
	heap.Push(q, queuedEvent{ev: ev, seq: q.nextSeq})
	q.nextSeq++
}

// PopNext removes and returns the earliest event.
// The boolean is false when the queue is empty.
func (q *EventQueue) PopNext() (Event, bool) {
	if q.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(q).(queuedEvent).ev, true
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if q.Len() == 0 {
		return Event{}, false
	}
	return q.events[0].ev, true
}

// IsEmpty reports whether no events remain.
func (q *EventQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Clear drops all pending events and restarts the insertion sequence.
func (q *EventQueue) Clear() {
	q.events = q.events[:0]
	q.nextSeq = 0
}

// Count returns the number of pending events of the given kind.
func (q *EventQueue) Count(kind EventKind) int {
	n := 0
	for _, qe := range q.events {
		if qe.ev.kind == kind {
			n++
		}
	}
	return n
}
