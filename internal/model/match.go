package model

import "time"

// Match wraps one board with its two seats, clock pair and premove queue.
// Flipped is fixed at creation: it determines visual seating and, combined
// with a seat's color, the seat's team. It never gates move legality.
type Match struct {
	Board    *BoardState   `json:"board"`
	White    *Player       `json:"white"`
	Black    *Player       `json:"black"`
	Clock    *Clock        `json:"clock"`
	Premoves *PremoveQueue `json:"-"`
	Flipped  bool          `json:"flipped"`
}

func NewMatch(flipped bool, initial time.Duration, now time.Time) *Match {
	return &Match{
		Board:    NewBoardState(),
		Clock:    NewClock(initial, now),
		Premoves: NewPremoveQueue(),
		Flipped:  flipped,
	}
}

// UpdateTime charges elapsed time to whichever color has the turn. Call it
// before reading a clock for display or evaluating a timeout.
func (m *Match) UpdateTime(now time.Time) {
	m.Clock.UpdateTime(now, m.Board.Turn)
}

func (m *Match) Player(color Color) *Player {
	if color == White {
		return m.White
	}
	return m.Black
}

// Seat fills the first free seat and returns the color taken, or false when
// both seats are occupied.
func (m *Match) Seat(playerID string) (Color, bool) {
	if m.White == nil {
		m.White = &Player{ID: playerID, Color: White}
		return White, true
	}
	if m.Black == nil {
		m.Black = &Player{ID: playerID, Color: Black}
		return Black, true
	}
	return "", false
}

func (m *Match) Seated() bool {
	return m.White != nil && m.Black != nil
}

func (m *Match) AllReady() bool {
	return m.Seated() && m.White.Ready && m.Black.Ready
}

// Reset starts a fresh board and clock for a new playing cycle. Seats stay;
// ready flags and premoves do not.
func (m *Match) Reset(initial time.Duration, now time.Time) {
	m.Board = NewBoardState()
	m.Clock = NewClock(initial, now)
	m.Premoves.Clear()
	if m.White != nil {
		m.White.Ready = false
	}
	if m.Black != nil {
		m.Black.Ready = false
	}
}
