package model

// Pocket holds the droppable reserve for one color on one board. Zero counts
// are removed outright so "absent" and "zero" read identically.
type Pocket map[PieceKind]int

func NewPocket() Pocket {
	return make(Pocket)
}

func (p Pocket) Count(kind PieceKind) int {
	return p[kind]
}

func (p Pocket) Add(kind PieceKind) {
	if kind == PromotedQueen {
		panic("model: promoted queen can never enter a pocket")
	}
	p[kind]++
}

// Remove takes one unit of kind out of the pocket. Removing from an absent
// slot is a no-op so replica pockets cannot go negative.
func (p Pocket) Remove(kind PieceKind) {
	if p[kind] <= 1 {
		delete(p, kind)
		return
	}
	p[kind]--
}

func (p Pocket) Clone() Pocket {
	clone := make(Pocket, len(p))
	for kind, count := range p {
		clone[kind] = count
	}
	return clone
}
