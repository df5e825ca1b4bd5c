package adapterhttp

import (
	"time"

	"gleaner/bot/domain"
)

const (
	typeBot        = "BotGameObject"
	typeDiamond    = "DiamondGameObject"
	typeTeleporter = "TeleportGameObject"
)

type wirePosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p *wirePosition) toDomain() *domain.Position {
	if p == nil {
		return nil
	}
	return &domain.Position{X: p.X, Y: p.Y}
}

type wireProperties struct {
	Points           int           `json:"points"`
	PairID           string        `json:"pairId"`
	Diamonds         int           `json:"diamonds"`
	Score            int           `json:"score"`
	Name             string        `json:"name"`
	InventorySize    int           `json:"inventorySize"`
	CanTackle        bool          `json:"canTackle"`
	MillisecondsLeft int           `json:"millisecondsLeft"`
	TimeJoined       string        `json:"timeJoined"`
	Base             *wirePosition `json:"base"`
}

type wireGameObject struct {
	ID         int             `json:"id"`
	Position   *wirePosition   `json:"position"`
	Type       string          `json:"type"`
	Properties *wireProperties `json:"properties"`
}

func (o wireGameObject) toDomain() domain.GameObject {
	placement := domain.Placement{ID: domain.ObjectID(o.ID), Position: o.Position.toDomain()}
	props := o.Properties
	if props == nil {
		props = &wireProperties{}
	}

	switch o.Type {
	case typeBot:
		joined, _ := time.Parse(time.RFC3339, props.TimeJoined)
		return domain.Bot{
			Placement:        placement,
			Name:             props.Name,
			Diamonds:         props.Diamonds,
			InventorySize:    props.InventorySize,
			Score:            props.Score,
			Base:             props.Base.toDomain(),
			CanTackle:        props.CanTackle,
			MillisecondsLeft: props.MillisecondsLeft,
			TimeJoined:       joined,
		}
	case typeDiamond:
		return domain.Collectible{Placement: placement, Points: props.Points}
	case typeTeleporter:
		return domain.Teleporter{Placement: placement, PairID: props.PairID}
	default:
		return domain.Other{Placement: placement, Kind: o.Type}
	}
}

type wireFeature struct {
	Name   string         `json:"name"`
	Config map[string]any `json:"config"`
}

type wireBoard struct {
	ID                       int              `json:"id"`
	Width                    int              `json:"width"`
	Height                   int              `json:"height"`
	Features                 []wireFeature    `json:"features"`
	MinimumDelayBetweenMoves int              `json:"minimumDelayBetweenMoves"`
	GameObjects              []wireGameObject `json:"gameObjects"`
}

func (b wireBoard) toDomain() *domain.Board {
	board := &domain.Board{
		ID:                       b.ID,
		Width:                    b.Width,
		Height:                   b.Height,
		MinimumDelayBetweenMoves: time.Duration(b.MinimumDelayBetweenMoves) * time.Millisecond,
		Features:                 make([]domain.Feature, 0, len(b.Features)),
		Objects:                  make([]domain.GameObject, 0, len(b.GameObjects)),
	}
	for _, f := range b.Features {
		board.Features = append(board.Features, domain.Feature{Name: f.Name, Config: f.Config})
	}
	for _, o := range b.GameObjects {
		board.Objects = append(board.Objects, o.toDomain())
	}
	return board
}

type wireBot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type recoverRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Team     string `json:"team"`
}

type joinRequest struct {
	PreferredBoardID int `json:"preferredBoardId"`
}

type moveRequest struct {
	Direction string `json:"direction"`
}
