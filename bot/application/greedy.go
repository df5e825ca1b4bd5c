package application

import (
	"gleaner/bot/domain"
)

// GreedyController は毎tick盤面だけから行動を決める貪欲法のボットAIです。
// tick間で状態を持ちません。乱数源だけを外から注入します。
type GreedyController struct {
	rng domain.Rand
}

var _ BotController = (*GreedyController)(nil)

func NewGreedyController(rng domain.Rand) *GreedyController {
	return &GreedyController{rng: rng}
}

// Decide は次の優先順で行動を決めます。
//
//  0. 所持数が上限に達していればベースへ戻る (ベース上ならランダムに1歩)
//  1. 他ボットより近い (同距離を含む) アイテムの中で最高スコアのもの
//  2. 競合を無視した最高スコアのアイテム
//  3. テレポーターを避けたランダムな1歩
//
// 自分が盤面にいない、座標が無い、ベースが不明のまま満杯、四方がテレポーター、のいずれかで false を返します。
func (g *GreedyController) Decide(board *domain.Board, name string) (domain.Decision, bool) {
	self, ok := board.FindBot(name)
	if !ok {
		return domain.Decision{}, false
	}
	pos, ok := self.Location()
	if !ok {
		return domain.Decision{}, false
	}

	inventory := self.Inventory()
	capacity := self.Capacity()
	avoid := board.TeleporterPositions()

	if inventory >= capacity {
		return g.returnToBase(pos, self.Base, avoid)
	}

	q := ItemQuery{
		Inventory:     inventory,
		Capacity:      capacity,
		Avoid:         avoid,
		PreferClosest: true,
		Self:          self.Name,
	}
	if d, ok := FindBestItem(board, pos, q, g.rng); ok {
		return d, true
	}

	q.PreferClosest = false
	q.Self = ""
	if d, ok := FindBestItem(board, pos, q, g.rng); ok {
		return d, true
	}

	dir, ok := domain.RandomDirection(pos, avoid, g.rng)
	if !ok {
		return domain.Decision{}, false
	}
	return domain.Decision{Direction: dir, Target: domain.TargetRandom}, true
}

func (g *GreedyController) returnToBase(pos domain.Position, base *domain.Position, avoid domain.PositionSet) (domain.Decision, bool) {
	if base == nil {
		return domain.Decision{}, false
	}
	if domain.Equal(pos, *base) {
		// ベース上で満杯のままなら荷下ろしのきっかけとして1歩動く
		return domain.Decision{
			Direction: domain.DirectionTowards(pos, pos, avoid, g.rng),
			Target:    domain.TargetRandom,
		}, true
	}
	return domain.Decision{
		Direction: domain.DirectionTowards(pos, *base, avoid, g.rng),
		Target:    domain.TargetBase,
	}, true
}
