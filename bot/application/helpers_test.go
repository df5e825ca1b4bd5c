package application

import (
	"math/rand/v2"

	"gleaner/bot/domain"
)

func at(x, y int) *domain.Position {
	return &domain.Position{X: x, Y: y}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func bot(id domain.ObjectID, name string, pos *domain.Position) domain.Bot {
	return domain.Bot{Placement: domain.Placement{ID: id, Position: pos}, Name: name}
}

func item(id domain.ObjectID, points int, pos *domain.Position) domain.Collectible {
	return domain.Collectible{Placement: domain.Placement{ID: id, Position: pos}, Points: points}
}

func teleporter(id domain.ObjectID, pos *domain.Position) domain.Teleporter {
	return domain.Teleporter{Placement: domain.Placement{ID: id, Position: pos}}
}

func board(objects ...domain.GameObject) *domain.Board {
	return &domain.Board{ID: 1, Width: 15, Height: 15, Objects: objects}
}

func newRandSeed(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}
