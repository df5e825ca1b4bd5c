package application

import (
	"testing"

	"gleaner/bot/domain"
)

func fullBot(pos, base *domain.Position) domain.Bot {
	b := bot(1, "me", pos)
	b.Diamonds = 5
	b.InventorySize = 5
	b.Base = base
	return b
}

func isDirection(d domain.Direction) bool {
	return d >= domain.North && d <= domain.West
}

// Scenario A
func TestGreedyController_FullInventoryHeadsToBase(t *testing.T) {
	c := NewGreedyController(newRand())
	b := board(fullBot(at(0, 0), at(2, 0)))

	got, ok := c.Decide(b, "me")
	if !ok {
		t.Fatal("expected a decision")
	}
	want := domain.Decision{Direction: domain.East, Target: domain.TargetBase}
	if got != want {
		t.Errorf("Decide = %v, want %v", got, want)
	}
}

// Scenario B
func TestGreedyController_FullAtBaseNudgesRandomly(t *testing.T) {
	c := NewGreedyController(newRand())
	b := board(fullBot(at(0, 0), at(0, 0)))

	for range 20 {
		got, ok := c.Decide(b, "me")
		if !ok {
			t.Fatal("expected a decision")
		}
		if got.Target != domain.TargetRandom || !isDirection(got.Direction) {
			t.Fatalf("Decide = %v, want random step", got)
		}
	}
}

func TestGreedyController_FullWithoutBaseIdles(t *testing.T) {
	c := NewGreedyController(newRand())
	b := board(fullBot(at(0, 0), nil), item(10, 1, at(1, 0)))

	if got, ok := c.Decide(b, "me"); ok {
		t.Errorf("Decide = %v, want no decision", got)
	}
}

func TestGreedyController_OverfullStillReturnsToBase(t *testing.T) {
	c := NewGreedyController(newRand())
	me := fullBot(at(3, 3), at(3, 0))
	me.Diamonds = 6
	got, ok := c.Decide(board(me), "me")
	if !ok || got.Direction != domain.North || got.Target != domain.TargetBase {
		t.Errorf("Decide = %v, %v; want NORTH->base", got, ok)
	}
}

// Scenario C
func TestGreedyController_ClaimsReachableItem(t *testing.T) {
	c := NewGreedyController(newRand())
	b := board(bot(1, "me", at(0, 0)), item(10, 3, at(1, 0)))

	got, ok := c.Decide(b, "me")
	if !ok {
		t.Fatal("expected a decision")
	}
	want := domain.Decision{Direction: domain.East, Target: 10}
	if got != want {
		t.Errorf("Decide = %v, want %v", got, want)
	}
}

// Scenario D
func TestGreedyController_TiedRivalDoesNotContest(t *testing.T) {
	c := NewGreedyController(newRand())
	b := board(bot(1, "me", at(0, 0)), bot(2, "rival", at(0, 1)), item(10, 3, at(1, 0)))

	got, ok := c.Decide(b, "me")
	if !ok || got != (domain.Decision{Direction: domain.East, Target: 10}) {
		t.Errorf("Decide = %v, %v; want EAST->10", got, ok)
	}
}

// Scenario E
func TestGreedyController_ItemUnderBotFallsBackToRandom(t *testing.T) {
	c := NewGreedyController(newRand())
	b := board(bot(1, "me", at(0, 0)), item(10, 10, at(0, 0)))

	got, ok := c.Decide(b, "me")
	if !ok {
		t.Fatal("expected a decision")
	}
	if got.Target != domain.TargetRandom || !isDirection(got.Direction) {
		t.Errorf("Decide = %v, want random step", got)
	}
}

func TestGreedyController_ContestedItemIsStillTakenAsFallback(t *testing.T) {
	c := NewGreedyController(newRand())
	b := board(
		bot(1, "me", at(0, 0)),
		bot(2, "rival", at(4, 0)),
		item(10, 1, at(3, 0)),
	)
	got, ok := c.Decide(b, "me")
	if !ok || got != (domain.Decision{Direction: domain.East, Target: 10}) {
		t.Errorf("Decide = %v, %v; want EAST->10", got, ok)
	}
}

func TestGreedyController_PrefersUncontestedItem(t *testing.T) {
	c := NewGreedyController(newRand())
	b := board(
		bot(1, "me", at(0, 0)),
		bot(2, "rival", at(4, 0)),
		item(10, 5, at(3, 0)), // 高得点だが競合
		item(11, 1, at(0, 3)),
	)
	got, ok := c.Decide(b, "me")
	if !ok || got != (domain.Decision{Direction: domain.South, Target: 11}) {
		t.Errorf("Decide = %v, %v; want SOUTH->11", got, ok)
	}
}

// Scenario F
func TestGreedyController_EnclosedByTeleporters(t *testing.T) {
	enclosure := []domain.GameObject{
		teleporter(20, at(0, -1)),
		teleporter(21, at(0, 1)),
		teleporter(22, at(1, 0)),
		teleporter(23, at(-1, 0)),
	}

	t.Run("random walk idles", func(t *testing.T) {
		c := NewGreedyController(newRand())
		b := board(append([]domain.GameObject{bot(1, "me", at(0, 0))}, enclosure...)...)
		if got, ok := c.Decide(b, "me"); ok {
			t.Errorf("Decide = %v, want no decision", got)
		}
	})

	t.Run("base nudge still moves", func(t *testing.T) {
		c := NewGreedyController(newRand())
		b := board(append([]domain.GameObject{fullBot(at(0, 0), at(0, 0))}, enclosure...)...)
		got, ok := c.Decide(b, "me")
		if !ok || !isDirection(got.Direction) || got.Target != domain.TargetRandom {
			t.Errorf("Decide = %v, %v; want a random step", got, ok)
		}
	})

	t.Run("heading to base through teleporters", func(t *testing.T) {
		c := NewGreedyController(newRand())
		b := board(append([]domain.GameObject{fullBot(at(0, 0), at(3, 0))}, enclosure...)...)
		got, ok := c.Decide(b, "me")
		if !ok || !isDirection(got.Direction) || got.Target != domain.TargetBase {
			t.Errorf("Decide = %v, %v; want a step tagged base", got, ok)
		}
	})
}

func TestGreedyController_SelfMissing(t *testing.T) {
	c := NewGreedyController(newRand())
	tests := []struct {
		name string
		b    *domain.Board
	}{
		{"not on board", board(bot(2, "other", at(0, 0)), item(10, 1, at(1, 0)))},
		{"no position", board(bot(1, "me", nil), item(10, 1, at(1, 0)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := c.Decide(tt.b, "me"); ok {
				t.Errorf("Decide = %v, want no decision", got)
			}
		})
	}
}

func TestGreedyController_DeterministicBranches(t *testing.T) {
	boards := map[string]*domain.Board{
		"base": board(fullBot(at(4, 4), at(0, 1))),
		"item": board(bot(1, "me", at(2, 2)), item(10, 2, at(5, 1)), item(11, 1, at(2, 6))),
		"fallback": board(
			bot(1, "me", at(0, 0)),
			bot(2, "rival", at(5, 5)),
			item(10, 1, at(5, 4)),
		),
	}
	for name, b := range boards {
		t.Run(name, func(t *testing.T) {
			first, ok := NewGreedyController(newRand()).Decide(b, "me")
			if !ok {
				t.Fatal("expected a decision")
			}
			for i := range 10 {
				c := NewGreedyController(newRandSeed(uint64(i)))
				got, ok := c.Decide(b, "me")
				if !ok || got != first {
					t.Fatalf("Decide = %v, %v; want %v on every call", got, ok, first)
				}
			}
		})
	}
}

func TestGreedyController_DoesNotMutateBoard(t *testing.T) {
	c := NewGreedyController(newRand())
	b := board(bot(1, "me", at(0, 0)), item(10, 3, at(1, 0)), teleporter(20, at(0, 1)))
	before := len(b.Objects)
	c.Decide(b, "me")
	if len(b.Objects) != before {
		t.Fatalf("objects changed: %d -> %d", before, len(b.Objects))
	}
	if p, _ := b.Objects[0].Location(); p != (domain.Position{X: 0, Y: 0}) {
		t.Errorf("bot position changed to %v", p)
	}
}
