package application

import "gleaner/bot/domain"

// ItemQuery はアイテム探索の条件です。
type ItemQuery struct {
	Inventory int
	Capacity  int
	Avoid     domain.PositionSet
	// PreferClosest が true のとき、自分より厳密に近い他ボットがいるアイテムを除外します。
	// 他ボットの判別に Self (自分の名前) を使います。
	PreferClosest bool
	Self          string
}

// FindBestItem は points/(距離+1) が最大のアイテムを探し、その方向とIDを返します。
// 同点の場合はボード上で先に現れたものを選びます。
func FindBestItem(board *domain.Board, from domain.Position, q ItemQuery, rng domain.Rand) (domain.Decision, bool) {
	if q.PreferClosest && q.Self == "" {
		return domain.Decision{}, false
	}

	var rivals []domain.Position
	if q.PreferClosest {
		rivals = rivalPositions(board, q.Self)
	}

	var (
		found     bool
		bestScore float64
		bestPos   domain.Position
		bestID    domain.ObjectID
	)
	for _, o := range board.Objects {
		item, ok := o.(domain.Collectible)
		if !ok {
			continue
		}
		pos, ok := item.Location()
		if !ok || item.Points <= 0 {
			continue
		}
		if q.Inventory+item.Points > q.Capacity {
			continue
		}
		if domain.Equal(pos, from) {
			continue
		}

		dist := domain.Distance(from, pos)
		if q.PreferClosest && contested(rivals, pos, dist) {
			continue
		}

		score := float64(item.Points) / float64(dist+1)
		if !found || score > bestScore {
			found = true
			bestScore = score
			bestPos = pos
			bestID = item.ObjectID()
		}
	}
	if !found {
		return domain.Decision{}, false
	}

	return domain.Decision{
		Direction: domain.DirectionTowards(from, bestPos, q.Avoid, rng),
		Target:    bestID,
	}, true
}

// rivalPositions は self 以外で座標を持つボットの位置を返します。
func rivalPositions(board *domain.Board, self string) []domain.Position {
	var out []domain.Position
	for _, bot := range board.Bots() {
		if bot.Name == self {
			continue
		}
		if p, ok := bot.Location(); ok {
			out = append(out, p)
		}
	}
	return out
}

// contested は item に自分 (距離 dist) より厳密に近いボットがいるかを返します。同距離は競合とみなしません。
func contested(rivals []domain.Position, item domain.Position, dist int) bool {
	for _, r := range rivals {
		if domain.Distance(r, item) < dist {
			return true
		}
	}
	return false
}
