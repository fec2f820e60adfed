package game

// BeatQueue holds the beat events of a session that have not been consumed yet.
// It is built from a time sorted list and only ever shrinks from the front.
type BeatQueue struct {
	events []BeatEvent
	head   int
}

func NewBeatQueue(events []BeatEvent) *BeatQueue {
	es := make([]BeatEvent, len(events))
	copy(es, events)
	return &BeatQueue{events: es}
}

func (q *BeatQueue) Peek() (BeatEvent, bool) {
	if q.IsEmpty() {
		return BeatEvent{}, false
	}
	return q.events[q.head], true
}

func (q *BeatQueue) PopFront() (BeatEvent, bool) {
	e, ok := q.Peek()
	if ok {
		q.head++
	}
	return e, ok
}

func (q *BeatQueue) Len() int {
	return len(q.events) - q.head
}

func (q *BeatQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Upcoming returns up to n events from the front without consuming them.
// The slice shares storage with the queue and must not be modified.
func (q *BeatQueue) Upcoming(n int) []BeatEvent {
	rest := q.events[q.head:]
	if n >= 0 && n < len(rest) {
		return rest[:n]
	}
	return rest
}

// Consumed is the number of events popped so far.
func (q *BeatQueue) Consumed() int {
	return q.head
}
