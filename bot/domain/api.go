package domain

import (
	"context"
	"errors"
)

//go:generate go tool mockgen -destination=./mocks/game_api_mock.go -package=mocks . GameAPI

var (
	// ErrNotFound は要求したボットやボードがサーバーに存在しない場合に返されるエラーです。
	ErrNotFound = errors.New("not found")
	// ErrRejected はサーバーがリクエストを恒久的に拒否した場合に返されるエラーです。
	ErrRejected = errors.New("request rejected by server")
)

// Account はボット登録に使う資格情報です。
type Account struct {
	Name     string
	Email    string
	Password string
	Team     string
}

// Registration はサーバー上のボット登録情報です。Token は以降の操作の認証に使います。
type Registration struct {
	Token string
	Name  string
	Email string
}

// GameAPI はゲームサーバーとのI/O境界です。
type GameAPI interface {
	Recover(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, account Account) (Registration, error)
	ListBoards(ctx context.Context) ([]Board, error)
	GetBoard(ctx context.Context, boardID int) (*Board, error)
	Join(ctx context.Context, token string, boardID int) error
	Move(ctx context.Context, token string, direction Direction) (*Board, error)
}
