package model

import "time"

// Game is the fixed, ordered set of linked boards forming one coordinated
// room. It owns every cross-board effect: captured material feeding the
// opposing team's shared pockets, drop consumption mirrored onto replica
// pockets, premove auto-fire and the room-wide timeout scan.
//
// Matches are owned by index; side effects iterate sibling indices instead
// of holding back-references. The caller serializes all access.
type Game struct {
	Matches []*Match `json:"matches"`
}

// NewGame builds one match per flipped flag, all sharing the same starting
// clock. The board set never changes afterwards except through Reset.
func NewGame(flipped []bool, initial time.Duration, now time.Time) *Game {
	g := &Game{Matches: make([]*Match, 0, len(flipped))}
	for _, f := range flipped {
		g.Matches = append(g.Matches, NewMatch(f, initial, now))
	}
	return g
}

func (g *Game) match(idx int) (*Match, bool) {
	if idx < 0 || idx >= len(g.Matches) {
		return nil, false
	}
	return g.Matches[idx], true
}

// DoMove applies a strict move on one board and propagates its side effects
// to the sibling boards, then lets any staged premoves fire. A bad index or
// an illegal move is a no-effect false, never a panic.
func (g *Game) DoMove(idx int, move Move, now time.Time) (*Piece, bool) {
	m, ok := g.match(idx)
	if !ok {
		return nil, false
	}
	if !m.Board.IsLegal(move, false) {
		return nil, false
	}
	captured := g.apply(idx, move, now)
	g.firePremoves(idx, now)
	return captured, true
}

// apply executes one already-validated strict move and routes its side
// effects. A capture credits the exact (kind, color) pair to every OTHER
// board with a DIFFERENT orientation: captured material feeds the opposing
// team's shared reserve. A drop deducts the same unit from every other board
// with the SAME orientation, keeping the replicas of one logical team pocket
// numerically consistent.
func (g *Game) apply(idx int, move Move, now time.Time) *Piece {
	m := g.Matches[idx]
	m.UpdateTime(now)
	captured := m.Board.DoMove(move, false)
	if captured != nil {
		for i, other := range g.Matches {
			if i == idx || other.Flipped == m.Flipped {
				continue
			}
			other.Board.pocket(captured.Color).Add(captured.Kind)
		}
	}
	if move.IsDrop() {
		for i, other := range g.Matches {
			if i == idx || other.Flipped != m.Flipped {
				continue
			}
			other.Board.pocket(move.From.Color).Remove(move.From.Kind)
		}
	}
	return captured
}

// firePremoves runs the head of the board's premove queue for as long as the
// head's owner holds the turn. Each head is re-validated strictly; a head
// that fails discards the ENTIRE remaining queue for the match, not just the
// invalid entry.
func (g *Game) firePremoves(idx int, now time.Time) {
	m := g.Matches[idx]
	for {
		head, ok := m.Premoves.Head()
		if !ok || head.Color != m.Board.Turn {
			return
		}
		m.Premoves.Pop()
		if !m.Board.IsLegal(head.Move, false) {
			m.Premoves.Clear()
			return
		}
		g.apply(idx, head.Move, now)
	}
}

// QueuePremove stages a move for color on one board. It is validated in
// relaxed mode against the speculative position with all earlier premoves
// replayed, so players can chain premoves.
func (g *Game) QueuePremove(idx int, move Move, color Color) bool {
	m, ok := g.match(idx)
	if !ok {
		return false
	}
	final := g.GetFinalChess(idx)
	if !final.IsLegal(move, true) {
		return false
	}
	m.Premoves.Push(Premove{Move: move, Color: color})
	return true
}

func (g *Game) ClearPremoves(idx int) {
	if m, ok := g.match(idx); ok {
		m.Premoves.Clear()
	}
}

// GetFinalChess returns a clone of one board with its queued premoves
// replayed in relaxed mode on top: the speculative position a premoving
// player sees. Real state is never touched.
func (g *Game) GetFinalChess(idx int) *BoardState {
	m, ok := g.match(idx)
	if !ok {
		return nil
	}
	final := m.Board.Clone()
	for _, pm := range m.Premoves.Entries() {
		final.DoMove(pm.Move, true)
	}
	return final
}

// TimeoutResult names the first seat room-wide whose clock ran out.
type TimeoutResult struct {
	MatchIndex int     `json:"match"`
	Color      Color   `json:"color"`
	Team       Team    `json:"team"`
	Player     *Player `json:"player"`
}

// CheckTimeout updates every clock and reports the globally minimum clock
// value at or below zero, or nil when no flag has fallen. Ties resolve to
// the lowest board index.
func (g *Game) CheckTimeout(now time.Time) *TimeoutResult {
	for _, m := range g.Matches {
		m.UpdateTime(now)
	}
	var worst *TimeoutResult
	var min int64
	for i, m := range g.Matches {
		for _, color := range []Color{White, Black} {
			left := m.Clock.Remaining(color)
			if left > 0 {
				continue
			}
			if worst == nil || left < min {
				min = left
				worst = &TimeoutResult{
					MatchIndex: i,
					Color:      color,
					Team:       TeamFor(color, m.Flipped),
					Player:     m.Player(color),
				}
			}
		}
	}
	return worst
}

// Checkmated scans all boards and reports the first side to move that is
// mated, or false.
func (g *Game) Checkmated() (int, Color, bool) {
	for i, m := range g.Matches {
		if m.Board.IsCheckmate() {
			return i, m.Board.Turn, true
		}
	}
	return 0, "", false
}

// Reset begins a fresh cycle: new boards, full clocks, empty premove queues.
func (g *Game) Reset(initial time.Duration, now time.Time) {
	for _, m := range g.Matches {
		m.Reset(initial, now)
	}
}
