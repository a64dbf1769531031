package model

// PremoveQueue is the ordered list of moves staged ahead of turn on one
// board. The room serializes all access, so the queue itself needs no lock.
type PremoveQueue struct {
	entries []Premove
}

func NewPremoveQueue() *PremoveQueue {
	return &PremoveQueue{entries: []Premove{}}
}

func (q *PremoveQueue) Push(pm Premove) {
	q.entries = append(q.entries, pm)
}

func (q *PremoveQueue) Head() (Premove, bool) {
	if len(q.entries) == 0 {
		return Premove{}, false
	}
	return q.entries[0], true
}

func (q *PremoveQueue) Pop() (Premove, bool) {
	head, ok := q.Head()
	if !ok {
		return Premove{}, false
	}
	q.entries = q.entries[1:]
	return head, true
}

func (q *PremoveQueue) Clear() {
	q.entries = q.entries[:0]
}

func (q *PremoveQueue) Len() int {
	return len(q.entries)
}

// Entries returns a copy safe to hold across later queue mutations.
func (q *PremoveQueue) Entries() []Premove {
	out := make([]Premove, len(q.entries))
	copy(out, q.entries)
	return out
}
