package model

import "testing"

func TestPocketRemoveDeletesZeroEntries(t *testing.T) {
	p := NewPocket()
	p.Add(Knight)
	p.Add(Knight)
	p.Remove(Knight)
	if p.Count(Knight) != 1 {
		t.Fatalf("expected one knight left, got %d", p.Count(Knight))
	}
	p.Remove(Knight)
	if _, ok := p[Knight]; ok {
		t.Fatalf("a count reaching zero must delete the entry")
	}
	// removing an absent kind is a no-op, never a negative count
	p.Remove(Rook)
	if len(p) != 0 {
		t.Fatalf("expected an empty pocket, got %v", p)
	}
}

func TestPocketRejectsPromotedQueen(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("a promoted queen must never enter a pocket")
		}
	}()
	NewPocket().Add(PromotedQueen)
}

func TestPocketCloneIsIndependent(t *testing.T) {
	p := NewPocket()
	p.Add(Bishop)
	clone := p.Clone()
	clone.Add(Bishop)
	if p.Count(Bishop) != 1 {
		t.Fatalf("mutating the clone must not touch the original")
	}
}
