package model

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// Team identifies which side of the room a seat plays for. It is always
// derived from color and board orientation, never stored.
type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

func (t Team) Other() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

func TeamFor(color Color, flipped bool) Team {
	if (color == White) != flipped {
		return TeamRed
	}
	return TeamBlue
}

type PieceKind string

const (
	King   PieceKind = "king"
	Queen  PieceKind = "queen"
	Rook   PieceKind = "rook"
	Bishop PieceKind = "bishop"
	Knight PieceKind = "knight"
	Pawn   PieceKind = "pawn"

	// PromotedQueen is a queen created by pawn promotion. It moves exactly
	// like a queen but returns to a pocket as a pawn when captured.
	PromotedQueen PieceKind = "promotedQueen"
)

type Piece struct {
	Kind  PieceKind `json:"kind"`
	Color Color     `json:"color"`
}

// capturedKind is what the capturing side's partner pocket receives when
// this piece is taken off the board.
func (p Piece) capturedKind() PieceKind {
	if p.Kind == PromotedQueen {
		return Pawn
	}
	return p.Kind
}
