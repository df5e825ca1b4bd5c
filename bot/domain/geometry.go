package domain

// Rand は方向のランダム選択に使う乱数源です。*rand.Rand (math/rand/v2) が満たします。
type Rand interface {
	IntN(n int) int
}

// 候補の列挙順。シード固定時の再現性はこの順序に依存する。
var (
	fallbackOrder   = [4]Direction{East, West, South, North}
	randomStepOrder = [4]Direction{North, South, West, East}
)

// Distance はマンハッタン距離です。
func Distance(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func Equal(a, b Position) bool {
	return a.Equal(b)
}

func IsBlocked(p Position, avoid PositionSet) bool {
	return avoid.Contains(p)
}

// DirectionTowards は start から goal に近づく方向を返します。
// 差の絶対値が大きい軸を先に試し (同値なら横軸)、塞がっていればもう一方の軸を試します。
// どちらも使えなければ避ける座標以外から一様ランダムに選び、それも無ければ4方向すべてから選びます。
// 必ずいずれかの方向を返します。
func DirectionTowards(start, goal Position, avoid PositionSet, rng Rand) Direction {
	dx := goal.X - start.X
	dy := goal.Y - start.Y

	horizontal := func() (Direction, bool) {
		switch {
		case dx > 0:
			return East, !IsBlocked(East.Step(start), avoid)
		case dx < 0:
			return West, !IsBlocked(West.Step(start), avoid)
		}
		return 0, false
	}
	vertical := func() (Direction, bool) {
		switch {
		case dy > 0:
			return South, !IsBlocked(South.Step(start), avoid)
		case dy < 0:
			return North, !IsBlocked(North.Step(start), avoid)
		}
		return 0, false
	}

	primary, secondary := horizontal, vertical
	if abs(dx) < abs(dy) {
		primary, secondary = vertical, horizontal
	}
	if d, ok := primary(); ok {
		return d
	}
	if d, ok := secondary(); ok {
		return d
	}

	candidates := openDirections(start, avoid, fallbackOrder)
	if len(candidates) == 0 {
		candidates = fallbackOrder[:]
	}
	return candidates[rng.IntN(len(candidates))]
}

// RandomDirection は避ける座標に入らない方向を一様ランダムに選びます。
// 4方向すべてが塞がっている場合は false を返します。
func RandomDirection(from Position, avoid PositionSet, rng Rand) (Direction, bool) {
	candidates := openDirections(from, avoid, randomStepOrder)
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.IntN(len(candidates))], true
}

func openDirections(from Position, avoid PositionSet, order [4]Direction) []Direction {
	out := make([]Direction, 0, len(order))
	for _, d := range order {
		if !IsBlocked(d.Step(from), avoid) {
			out = append(out, d)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
