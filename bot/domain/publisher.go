package domain

import (
	"context"
	"time"
)

//go:generate go tool mockgen -destination=./mocks/publisher_mock.go -package=mocks . Publisher

// TickEvent は1tickの判断結果です。観戦フィードに配信されます。
type TickEvent struct {
	Bot       string       `json:"bot"`
	BoardID   int          `json:"board"`
	Tick      int          `json:"tick"`
	Position  Position     `json:"position"`
	Direction string       `json:"direction,omitempty"`
	Target    ObjectID     `json:"target"`
	Kind      DecisionKind `json:"kind"`
	At        time.Time    `json:"at"`
}

// Publisher はtickイベントの配信先です。
type Publisher interface {
	Publish(ctx context.Context, event TickEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, TickEvent) {}

// NopPublisher は何も配信しない Publisher を返します。
func NewNopPublisher() Publisher {
	return nopPublisher{}
}
