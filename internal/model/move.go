package model

// Move is a board move, or a drop when From is a pocket slot.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) IsDrop() bool {
	return m.From.Pocket
}

// Premove is a move a player staged before it is legally their turn. It is
// validated loosely when queued and strictly re-validated when it fires.
type Premove struct {
	Move  Move  `json:"move"`
	Color Color `json:"color"`
}

// MovePayload is the wire shape of a move or premove request from a client.
type MovePayload struct {
	Match int  `json:"match"`
	Move  Move `json:"move"`
}
