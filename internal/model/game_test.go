package model

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestGame(flipped ...bool) *Game {
	return NewGame(flipped, 5*time.Minute, t0)
}

func mv(fx, fy, tx, ty int) Move {
	return Move{From: Sq(fx, fy), To: Sq(tx, ty)}
}

func doMove(t *testing.T, g *Game, idx int, m Move) *Piece {
	t.Helper()
	captured, ok := g.DoMove(idx, m, t0)
	if !ok {
		t.Fatalf("move %+v on match %d unexpectedly rejected", m, idx)
	}
	return captured
}

func TestCaptureFeedsOppositeOrientationPockets(t *testing.T) {
	g := newTestGame(false, true, false)

	doMove(t, g, 0, mv(4, 6, 4, 4)) // e4
	doMove(t, g, 0, mv(3, 1, 3, 3)) // d5
	captured := doMove(t, g, 0, mv(4, 4, 3, 3))
	if captured == nil || captured.Kind != Pawn || captured.Color != Black {
		t.Fatalf("expected a captured black pawn, got %+v", captured)
	}

	if got := g.Matches[1].Board.BlackPocket.Count(Pawn); got != 1 {
		t.Fatalf("opposite-orientation board must receive the pawn, got %d", got)
	}
	if g.Matches[0].Board.BlackPocket.Count(Pawn) != 0 {
		t.Fatalf("the capturing board must not pocket its own capture")
	}
	if g.Matches[2].Board.BlackPocket.Count(Pawn) != 0 {
		t.Fatalf("a same-orientation sibling must not receive the pawn")
	}
}

func TestDropDeductsFromSameOrientationSiblings(t *testing.T) {
	g := newTestGame(false, true, false)
	g.Matches[0].Board.BlackPocket.Add(Pawn)
	g.Matches[2].Board.BlackPocket.Add(Pawn)

	doMove(t, g, 0, mv(4, 6, 4, 4)) // white moves so black holds the turn
	drop := Move{From: PocketSlot(Black, Pawn), To: Sq(0, 4)}
	doMove(t, g, 0, drop)

	if g.Matches[0].Board.BlackPocket.Count(Pawn) != 0 {
		t.Fatalf("the dropping board must consume its own pocket unit")
	}
	if g.Matches[2].Board.BlackPocket.Count(Pawn) != 0 {
		t.Fatalf("the same-orientation sibling must mirror the deduction")
	}
	if len(g.Matches[1].Board.BlackPocket) != 0 {
		t.Fatalf("an opposite-orientation board must be untouched by the drop")
	}
}

func TestPremoveFiresWhenTurnArrives(t *testing.T) {
	g := newTestGame(false, true)

	if !g.QueuePremove(0, mv(4, 1, 4, 3), Black) {
		t.Fatalf("expected the premove to queue")
	}
	if g.Matches[0].Board.Board[3][4] != nil {
		t.Fatalf("queuing must not touch the real board")
	}

	doMove(t, g, 0, mv(6, 7, 5, 5)) // Nf3

	if p := g.Matches[0].Board.Board[3][4]; p == nil || p.Kind != Pawn || p.Color != Black {
		t.Fatalf("expected the staged e5 to have fired, got %+v", p)
	}
	if g.Matches[0].Board.Turn != White {
		t.Fatalf("a fired premove must advance the turn back to white")
	}
	if g.Matches[0].Premoves.Len() != 0 {
		t.Fatalf("a fired premove must leave the queue")
	}
}

func TestInvalidPremoveHeadDiscardsWholeQueue(t *testing.T) {
	g := newTestGame(false, true)

	// passes relaxed validation (paths are not checked) but the c7 pawn
	// blocks it strictly
	if !g.QueuePremove(0, mv(3, 0, 0, 3), Black) {
		t.Fatalf("expected the blocked queen premove to queue in relaxed mode")
	}
	if !g.QueuePremove(0, mv(0, 1, 0, 2), Black) {
		t.Fatalf("expected the follow-up premove to queue")
	}
	if g.Matches[0].Premoves.Len() != 2 {
		t.Fatalf("expected two staged premoves")
	}

	doMove(t, g, 0, mv(4, 6, 4, 4)) // e4 hands the turn to black

	if g.Matches[0].Premoves.Len() != 0 {
		t.Fatalf("an invalid head must discard the entire queue, %d left", g.Matches[0].Premoves.Len())
	}
	if p := g.Matches[0].Board.Board[0][3]; p == nil || p.Kind != Queen {
		t.Fatalf("the rejected premove must leave the board untouched")
	}
	if g.Matches[0].Board.Turn != Black {
		t.Fatalf("black keeps the turn after the queue is discarded")
	}
}

func TestPremoveFiresOnePerTurn(t *testing.T) {
	g := newTestGame(false, true)

	g.QueuePremove(0, mv(4, 1, 4, 3), Black) // e5
	g.QueuePremove(0, mv(4, 3, 4, 4), Black) // then e4, chained

	doMove(t, g, 0, mv(3, 6, 3, 4)) // d4 fires the first entry only
	if g.Matches[0].Premoves.Len() != 1 {
		t.Fatalf("only the head may fire per turn, %d left", g.Matches[0].Premoves.Len())
	}
	if g.Matches[0].Board.Board[3][4] == nil {
		t.Fatalf("expected the black pawn on e5")
	}

	doMove(t, g, 0, mv(0, 6, 0, 5)) // a3 fires the second entry
	if g.Matches[0].Premoves.Len() != 0 {
		t.Fatalf("the chained entry must fire on the next turn")
	}
	if p := g.Matches[0].Board.Board[4][4]; p == nil || p.Color != Black {
		t.Fatalf("expected the black pawn advanced to e4, got %+v", p)
	}
}

func TestChainedPremovesValidateAgainstSpeculativeBoard(t *testing.T) {
	g := newTestGame(false)

	// the pawn only stands on e5 once the first staged move is replayed,
	// so the second entry validates against the speculative board
	if g.QueuePremove(0, mv(4, 3, 4, 4), Black) {
		t.Fatalf("there is no pawn on e5 yet; the premove must be rejected")
	}
	if !g.QueuePremove(0, mv(4, 1, 4, 3), Black) {
		t.Fatalf("expected e5 to queue")
	}
	if !g.QueuePremove(0, mv(4, 3, 4, 4), Black) {
		t.Fatalf("expected the chained pawn advance to queue")
	}
	// a move with no geometry to its name is rejected even relaxed
	if g.QueuePremove(0, mv(6, 0, 6, 2), Black) {
		t.Fatalf("a knight has no straight-line move, even premoved")
	}
}

func TestGetFinalChessDoesNotMutate(t *testing.T) {
	g := newTestGame(false)
	g.QueuePremove(0, mv(4, 1, 4, 3), Black)

	final := g.GetFinalChess(0)
	if final.Board[3][4] == nil {
		t.Fatalf("the speculative board must include the staged move")
	}
	if final.Turn != White {
		t.Fatalf("relaxed replay must not advance the speculative turn")
	}
	if g.Matches[0].Board.Board[1][4] == nil {
		t.Fatalf("the real board must be untouched")
	}
}

func TestCheckTimeoutReportsGlobalMinimum(t *testing.T) {
	g := newTestGame(false, true)

	if res := g.CheckTimeout(t0); res != nil {
		t.Fatalf("no flag has fallen yet, got %+v", res)
	}

	g.Matches[0].Clock.Black = -100
	g.Matches[1].Clock.White = -250
	res := g.CheckTimeout(t0)
	if res == nil {
		t.Fatalf("expected a timeout result")
	}
	if res.MatchIndex != 1 || res.Color != White {
		t.Fatalf("expected the deepest overrun to win, got match %d %s", res.MatchIndex, res.Color)
	}
	if res.Team != TeamBlue {
		t.Fatalf("white on a flipped board plays blue, got %s", res.Team)
	}
}

func TestCheckTimeoutTieGoesToLowestIndex(t *testing.T) {
	g := newTestGame(false, true)
	g.Matches[0].Clock.White = 0
	g.Matches[1].Clock.White = 0

	res := g.CheckTimeout(t0)
	if res == nil || res.MatchIndex != 0 {
		t.Fatalf("equal overruns must resolve to the lowest index, got %+v", res)
	}
}

func TestCheckTimeoutChargesActiveColor(t *testing.T) {
	g := newTestGame(false)
	later := t0.Add(2 * time.Second)

	g.CheckTimeout(later)
	c := g.Matches[0].Clock
	if c.White != 5*60*1000-2000 {
		t.Fatalf("white holds the turn and must be charged, got %d", c.White)
	}
	if c.Black != 5*60*1000 {
		t.Fatalf("black must not be charged off-turn, got %d", c.Black)
	}

	// re-anchored: a second call at the same instant charges nothing
	g.CheckTimeout(later)
	if g.Matches[0].Clock.White != 5*60*1000-2000 {
		t.Fatalf("repeated updates at the same instant must be free")
	}
}

func TestDoMoveRejectsBadIndexAndIllegalMove(t *testing.T) {
	g := newTestGame(false)
	if _, ok := g.DoMove(5, mv(4, 6, 4, 4), t0); ok {
		t.Fatalf("an out-of-range match index must be rejected")
	}
	if _, ok := g.DoMove(0, mv(4, 1, 4, 3), t0); ok {
		t.Fatalf("a move by the side not on turn must be rejected")
	}
	if g.GetFinalChess(5) != nil {
		t.Fatalf("an out-of-range speculative board must be nil")
	}
}

func TestCheckmatedScansAllBoards(t *testing.T) {
	g := newTestGame(false, true)
	if _, _, mated := g.Checkmated(); mated {
		t.Fatalf("fresh boards have no mate")
	}

	doMove(t, g, 1, mv(5, 6, 5, 5)) // f3
	doMove(t, g, 1, mv(4, 1, 4, 3)) // e5
	doMove(t, g, 1, mv(6, 6, 6, 4)) // g4
	doMove(t, g, 1, mv(3, 0, 7, 4)) // Qh4#

	idx, color, mated := g.Checkmated()
	if !mated || idx != 1 || color != White {
		t.Fatalf("expected white mated on match 1, got idx=%d color=%s mated=%v", idx, color, mated)
	}
}

func TestResetStartsFreshCycle(t *testing.T) {
	g := newTestGame(false, true)
	doMove(t, g, 0, mv(4, 6, 4, 4))
	g.QueuePremove(1, mv(4, 1, 4, 3), Black)
	g.Matches[0].Clock.White = 1234

	g.Reset(3*time.Minute, t0)
	for i, m := range g.Matches {
		if m.Board.Board[6][4] == nil || m.Board.Turn != White {
			t.Fatalf("match %d board must be back at the start", i)
		}
		if m.Clock.White != 3*60*1000 || m.Clock.Black != 3*60*1000 {
			t.Fatalf("match %d clock must be refilled", i)
		}
		if m.Premoves.Len() != 0 {
			t.Fatalf("match %d premoves must be cleared", i)
		}
	}
}
