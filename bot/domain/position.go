package domain

// Position は盤面上のマス目の座標です。値型として扱い、== で比較できます。
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Equal は座標が一致するかを返します。
func (p Position) Equal(o Position) bool {
	return p.X == o.X && p.Y == o.Y
}

// PositionSet は移動先として避ける座標の集合です。
type PositionSet map[Position]struct{}

func NewPositionSet(ps ...Position) PositionSet {
	s := make(PositionSet, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

// Contains は nil の集合に対しても false を返します。
func (s PositionSet) Contains(p Position) bool {
	_, ok := s[p]
	return ok
}

// Direction は1tickで移動できる4方向です。北は y-1 です。
type Direction uint8

const (
	North Direction = iota + 1
	South
	East
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "NORTH"
	case South:
		return "SOUTH"
	case East:
		return "EAST"
	case West:
		return "WEST"
	default:
		return "UNKNOWN"
	}
}

// Step は p から d 方向に1マス進んだ座標を返します。
func (d Direction) Step(p Position) Position {
	switch d {
	case North:
		return Position{X: p.X, Y: p.Y - 1}
	case South:
		return Position{X: p.X, Y: p.Y + 1}
	case East:
		return Position{X: p.X + 1, Y: p.Y}
	case West:
		return Position{X: p.X - 1, Y: p.Y}
	default:
		return p
	}
}

// ParseDirection はワイヤ上の方向名を Direction に変換します。
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "NORTH":
		return North, true
	case "SOUTH":
		return South, true
	case "EAST":
		return East, true
	case "WEST":
		return West, true
	default:
		return 0, false
	}
}
