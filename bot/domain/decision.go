package domain

import "fmt"

// Decision は1tickの行動です。Target は TargetBase, TargetRandom またはアイテムIDです。
type Decision struct {
	Direction Direction
	Target    ObjectID
}

// DecisionKind はログや観戦フィード向けの行動分類です。
type DecisionKind string

const (
	KindBase   DecisionKind = "base"
	KindItem   DecisionKind = "item"
	KindRandom DecisionKind = "random"
	KindIdle   DecisionKind = "idle"
)

func (d Decision) Kind() DecisionKind {
	switch d.Target {
	case TargetBase:
		return KindBase
	case TargetRandom:
		return KindRandom
	default:
		return KindItem
	}
}

func (d Decision) String() string {
	return fmt.Sprintf("%s->%d", d.Direction, d.Target)
}
