package domain

import "time"

// Feature はボードに設定されたサーバー側機能とその設定です。
type Feature struct {
	Name   string
	Config map[string]any
}

// Board は1tick分の盤面スナップショットです。判断処理からは読み取り専用として扱います。
type Board struct {
	ID                       int
	Width                    int
	Height                   int
	MinimumDelayBetweenMoves time.Duration
	Features                 []Feature
	Objects                  []GameObject
}

// Bots はボードの並び順のままボットを返します。
func (b *Board) Bots() []Bot {
	var out []Bot
	for _, o := range b.Objects {
		if bot, ok := o.(Bot); ok {
			out = append(out, bot)
		}
	}
	return out
}

func (b *Board) Collectibles() []Collectible {
	var out []Collectible
	for _, o := range b.Objects {
		if c, ok := o.(Collectible); ok {
			out = append(out, c)
		}
	}
	return out
}

// FindBot は名前が一致する最初のボットを探します。
func (b *Board) FindBot(name string) (Bot, bool) {
	for _, o := range b.Objects {
		if bot, ok := o.(Bot); ok && bot.Name == name {
			return bot, true
		}
	}
	return Bot{}, false
}

// TeleporterPositions は座標を持つテレポーターの位置集合です。
func (b *Board) TeleporterPositions() PositionSet {
	s := make(PositionSet)
	for _, o := range b.Objects {
		t, ok := o.(Teleporter)
		if !ok {
			continue
		}
		if p, ok := t.Location(); ok {
			s[p] = struct{}{}
		}
	}
	return s
}

// Contains は p が盤面の範囲内かを返します。
func (b *Board) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// IsValidMove は p から d に動いた先が盤面内かを返します。
func (b *Board) IsValidMove(p Position, d Direction) bool {
	if d < North || d > West {
		return false
	}
	return b.Contains(d.Step(p))
}
