package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gleaner/bot/domain"
)

var (
	// ErrLoginFailed は既存ボットの復旧と新規登録の両方に失敗した場合に返されるエラーです。
	ErrLoginFailed = errors.New("runner: could not recover or register bot")
	// ErrNoBoards はサーバーに参加可能なボードが無い場合に返されるエラーです。
	ErrNoBoards = errors.New("runner: no boards available")
	// ErrJoinFailed はボードへの参加に失敗した場合に返されるエラーです。
	ErrJoinFailed = errors.New("runner: failed to join board")
)

// RunnerConfig は Runner の依存と設定です。Publisher, Tracer, Logger は省略できます。
type RunnerConfig struct {
	API        domain.GameAPI
	Controller BotController
	Account    domain.Account
	// BoardID が0またはサーバーに存在しない場合、最初のボードに参加します。
	BoardID   int
	Publisher domain.Publisher
	Tracer    trace.Tracer
	Logger    *slog.Logger
}

// Runner は1体のボットのログインから試合終了までのポーリングループです。
type Runner struct {
	api        domain.GameAPI
	controller BotController
	account    domain.Account
	boardID    int
	publisher  domain.Publisher
	tracer     trace.Tracer
	logger     *slog.Logger
}

func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.API == nil || cfg.Controller == nil || cfg.Account.Name == "" {
		return nil, fmt.Errorf("runner: missing dependencies: api=%v controller=%v name=%q", cfg.API, cfg.Controller, cfg.Account.Name)
	}
	r := &Runner{
		api:        cfg.API,
		controller: cfg.Controller,
		account:    cfg.Account,
		boardID:    cfg.BoardID,
		publisher:  cfg.Publisher,
		tracer:     cfg.Tracer,
		logger:     cfg.Logger,
	}
	if r.publisher == nil {
		r.publisher = domain.NewNopPublisher()
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer("gleaner/bot/application")
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With("bot", cfg.Account.Name, "run", uuid.NewString())
	return r, nil
}

// Run はログイン、ボード参加、試合を順に行います。
// 試合終了 (ボットが盤面から消えた、移動が拒否された) とキャンセルでは nil を返します。
func (r *Runner) Run(ctx context.Context) error {
	token, err := r.Login(ctx)
	if err != nil {
		return err
	}
	board, err := r.Enter(ctx, token)
	if err != nil {
		return err
	}
	return r.Play(ctx, token, board)
}

// Login は既存ボットを復旧し、できなければ新規登録してトークンを返します。
func (r *Runner) Login(ctx context.Context) (string, error) {
	token, err := r.api.Recover(ctx, r.account.Email, r.account.Password)
	if err == nil && token != "" {
		r.logger.InfoContext(ctx, "bot recovered", "token", token)
		return token, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	r.logger.DebugContext(ctx, "recover failed, registering", "err", err)

	reg, err := r.api.Register(ctx, r.account)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	r.logger.InfoContext(ctx, "bot registered", "token", reg.Token)
	return reg.Token, nil
}

// Enter はボードを選び、まだ参加していなければ参加して最新の盤面を返します。
func (r *Runner) Enter(ctx context.Context, token string) (*domain.Board, error) {
	boards, err := r.api.ListBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	if len(boards) == 0 {
		return nil, ErrNoBoards
	}

	boardID := boards[0].ID
	if r.boardID != 0 {
		found := false
		for _, b := range boards {
			if b.ID == r.boardID {
				boardID, found = b.ID, true
				break
			}
		}
		if !found {
			r.logger.WarnContext(ctx, "preferred board not listed, using first", "preferred", r.boardID, "board", boardID)
		}
	}

	board, err := r.api.GetBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("get board %d: %w", boardID, err)
	}
	if _, ok := board.FindBot(r.account.Name); ok {
		r.logger.InfoContext(ctx, "bot already on board", "board", boardID)
	} else {
		if err := r.api.Join(ctx, token, boardID); err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrJoinFailed, boardID, err)
		}
		r.logger.InfoContext(ctx, "bot joined board", "board", boardID)
	}

	board, err = r.api.GetBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("get board %d: %w", boardID, err)
	}
	return board, nil
}

// Play は盤面からボットが消えるか移動が拒否されるまで、1tickごとに判断と移動を繰り返します。
func (r *Runner) Play(ctx context.Context, token string, board *domain.Board) error {
	for tick := 1; ; tick++ {
		if ctx.Err() != nil {
			return nil
		}
		if _, ok := board.FindBot(r.account.Name); !ok {
			r.logger.InfoContext(ctx, "bot no longer on board, game over", "tick", tick)
			return nil
		}

		next, err := r.step(ctx, token, board, tick)
		switch {
		case errors.Is(err, domain.ErrRejected):
			r.logger.InfoContext(ctx, "move rejected, game over", "tick", tick, "err", err)
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("tick %d: %w", tick, err)
		}
		board = next

		if !sleepContext(ctx, board.MinimumDelayBetweenMoves) {
			return nil
		}
	}
}

// step は1tick分の判断と送信を行い、次の盤面を返します。
// 行動が無いtickは移動せずに盤面を取り直します。
func (r *Runner) step(ctx context.Context, token string, board *domain.Board, tick int) (*domain.Board, error) {
	ctx, span := r.tracer.Start(ctx, "bot.tick", trace.WithAttributes(
		attribute.String("bot.name", r.account.Name),
		attribute.Int("board.id", board.ID),
		attribute.Int("bot.tick", tick),
	))
	defer span.End()

	event := domain.TickEvent{
		Bot:     r.account.Name,
		BoardID: board.ID,
		Tick:    tick,
		At:      time.Now(),
	}
	self, _ := board.FindBot(r.account.Name)
	pos, placed := self.Location()
	event.Position = pos

	decision, ok := r.controller.Decide(board, r.account.Name)
	if !ok {
		event.Kind = domain.KindIdle
		event.Target = domain.TargetRandom
		r.publisher.Publish(ctx, event)
		r.logger.DebugContext(ctx, "no move, idle", "tick", tick)
		return r.api.GetBoard(ctx, board.ID)
	}

	event.Direction = decision.Direction.String()
	event.Target = decision.Target
	event.Kind = decision.Kind()
	span.SetAttributes(
		attribute.String("bot.direction", event.Direction),
		attribute.Int("bot.target", int(decision.Target)),
	)
	if placed && board.Width > 0 && board.Height > 0 && !board.IsValidMove(pos, decision.Direction) {
		r.logger.WarnContext(ctx, "move leaves the board", "position", pos, "direction", event.Direction)
	}
	r.publisher.Publish(ctx, event)
	r.logger.InfoContext(ctx, "move", "tick", tick, "direction", event.Direction, "target", decision.Target, "kind", event.Kind)

	next, err := r.api.Move(ctx, token, decision.Direction)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "move failed")
		return nil, err
	}
	if next == nil {
		return nil, fmt.Errorf("%w: empty board after move", domain.ErrRejected)
	}
	return next, nil
}

// sleepContext は d だけ待ちます。キャンセルされた場合は false を返します。
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
