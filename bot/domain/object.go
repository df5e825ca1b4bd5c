package domain

import "time"

// ObjectID はゲームオブジェクトの識別子です。
type ObjectID int

// 移動の目的を表す予約済みのターゲットID。アイテムIDは正の値のみ。
const (
	TargetBase   ObjectID = -1
	TargetRandom ObjectID = -2
)

// サーバーが値を省略したときの既定値。サーバー側の初期設定に合わせている。
const (
	DefaultInventory     = 0
	DefaultInventorySize = 5
)

// GameObject は盤面上のオブジェクトの直和型です。
// 実装は Bot, Collectible, Teleporter, Other のみです。
type GameObject interface {
	ObjectID() ObjectID
	// Location は座標を持たないオブジェクトに対して false を返します。
	Location() (Position, bool)
	isGameObject()
}

// Placement は全オブジェクト共通の識別子と座標です。
type Placement struct {
	ID       ObjectID
	Position *Position
}

func (p Placement) ObjectID() ObjectID { return p.ID }

func (p Placement) Location() (Position, bool) {
	if p.Position == nil {
		return Position{}, false
	}
	return *p.Position, true
}

func (Placement) isGameObject() {}

// Bot は盤面上のボットです。Name は盤面内で一意です。
type Bot struct {
	Placement
	Name             string
	Diamonds         int
	InventorySize    int
	Score            int
	Base             *Position
	CanTackle        bool
	MillisecondsLeft int
	TimeJoined       time.Time
}

// Inventory は所持数です。
func (b Bot) Inventory() int {
	if b.Diamonds <= 0 {
		return DefaultInventory
	}
	return b.Diamonds
}

// Capacity は未設定 (0以下) の場合 DefaultInventorySize を返します。
func (b Bot) Capacity() int {
	if b.InventorySize <= 0 {
		return DefaultInventorySize
	}
	return b.InventorySize
}

// Collectible は拾えるアイテムです。Points が正でないものは対象外です。
type Collectible struct {
	Placement
	Points int
}

// Teleporter は常に移動先から除外されるマスです。
type Teleporter struct {
	Placement
	PairID string
}

// Other はボットの判断に関与しないオブジェクト (ベース、ボタンなど) です。
type Other struct {
	Placement
	Kind string
}

var (
	_ GameObject = Bot{}
	_ GameObject = Collectible{}
	_ GameObject = Teleporter{}
	_ GameObject = Other{}
)
