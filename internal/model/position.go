package model

// Position identifies either a board square or a pocket slot. Board squares
// use X (file) and Y (row) with row 0 as black's back rank and row 7 as
// white's. A pocket slot names the reserve of one piece kind for one color;
// X and Y are meaningless for pocket positions.
type Position struct {
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Pocket bool      `json:"pocket,omitempty"`
	Kind   PieceKind `json:"kind,omitempty"`
	Color  Color     `json:"color,omitempty"`
}

func Sq(x, y int) Position {
	return Position{X: x, Y: y}
}

func PocketSlot(color Color, kind PieceKind) Position {
	return Position{Pocket: true, Kind: kind, Color: color}
}

func (p Position) onBoard() bool {
	return !p.Pocket && p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func (p Position) sameSquare(o Position) bool {
	return !p.Pocket && !o.Pocket && p.X == o.X && p.Y == o.Y
}
