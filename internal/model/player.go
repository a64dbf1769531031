package model

// Player is one seated participant. Connections live in the room's registry;
// the core only needs identity and readiness.
type Player struct {
	ID    string `json:"id"`
	Color Color  `json:"color"`
	Ready bool   `json:"ready"`
}

func copyPlayer(p *Player) *Player {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
