package observer

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gleaner/bot/domain"
)

var (
	// ErrBackpressure は書き込みチャネルが満杯の場合に返されるエラーです。
	ErrBackpressure = errors.New("write channel is full, apply backpressure")
	// ErrIdle は pong が idle timeout を超えて届かなかった場合に返されるエラーです。
	ErrIdle = errors.New("viewer idle")
	// ErrInitializationFailed は Viewer の初期化に失敗した場合に返されるエラーです。
	ErrInitializationFailed = errors.New("failed to initialize viewer")
)

const (
	defaultPingInterval = 10 * time.Second
	defaultIdleTimeout  = 30 * time.Second
	writeBuffer         = 256
)

// Viewer は観戦者1接続ぶんのエンドポイントです。
type Viewer struct {
	id        uuid.UUID
	name      string
	transport domain.Transport
	hub       *Hub
	logger    *slog.Logger

	pingInterval time.Duration
	idleTimeout  time.Duration

	writeCh  chan []byte
	lastPong atomic.Int64
	closed   atomic.Bool
}

type ViewerOption func(*Viewer)

// WithHeartbeat は ping 間隔と、pong が途絶えてから切断するまでの時間を設定します。
func WithHeartbeat(pingInterval, idleTimeout time.Duration) ViewerOption {
	return func(v *Viewer) {
		v.pingInterval = pingInterval
		v.idleTimeout = idleTimeout
	}
}

func WithViewerLogger(l *slog.Logger) ViewerOption {
	return func(v *Viewer) { v.logger = l }
}

func NewViewer(name string, transport domain.Transport, hub *Hub, opts ...ViewerOption) (*Viewer, error) {
	if transport == nil || hub == nil {
		return nil, ErrInitializationFailed
	}
	v := &Viewer{
		id:           uuid.New(),
		name:         name,
		transport:    transport,
		hub:          hub,
		logger:       slog.Default(),
		pingInterval: defaultPingInterval,
		idleTimeout:  defaultIdleTimeout,
		writeCh:      make(chan []byte, writeBuffer),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With("viewer", v.id, "name", name)
	v.lastPong.Store(time.Now().UnixNano())
	return v, nil
}

func (v *Viewer) ID() uuid.UUID { return v.id }

// Run は接続が切れるか ctx がキャンセルされるまで配信を続けます。
// 観戦者側からの切断と ctx のキャンセルは正常終了として nil を返します。
func (v *Viewer) Run(ctx context.Context) error {
	msgCh := v.hub.Subscribe(v.id)
	defer v.hub.Unsubscribe(v.id)
	defer v.close()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return v.readLoop(ctx)
	})
	eg.Go(func() error {
		return v.writeLoop(ctx)
	})
	eg.Go(func() error {
		return v.heartbeatLoop(ctx)
	})
	eg.Go(func() error {
		return v.subscribeLoop(ctx, msgCh)
	})

	err := eg.Wait()
	if errors.Is(err, context.Canceled) || isNormalClosure(err) {
		return nil
	}
	return err
}

// Send は data を書き込みキューに積みます。
func (v *Viewer) Send(data []byte) error {
	select {
	case v.writeCh <- data:
		return nil
	default:
		return ErrBackpressure
	}
}

// readLoop は観戦者からのフレームを読み捨てます。pong の処理にも読み込みが必要です。
func (v *Viewer) readLoop(ctx context.Context) error {
	for {
		if _, err := v.transport.Read(ctx); err != nil {
			return err
		}
		v.touch()
	}
}

func (v *Viewer) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data := <-v.writeCh:
			if err := v.transport.Write(ctx, data); err != nil {
				return err
			}
		}
	}
}

func (v *Viewer) heartbeatLoop(ctx context.Context) error {
	ticker := time.NewTicker(v.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, v.pingInterval)
			err := v.transport.Ping(pingCtx)
			cancel()
			if err == nil {
				v.touch()
				v.logger.DebugContext(ctx, "heartbeat: pong received")
				continue
			}
			v.logger.WarnContext(ctx, "heartbeat: ping failed", "err", err)
			if time.Since(time.Unix(0, v.lastPong.Load())) > v.idleTimeout {
				return ErrIdle
			}
		}
	}
}

// subscribeLoop は Hub からのイベントを writeCh に転送します。
func (v *Viewer) subscribeLoop(ctx context.Context, msgCh <-chan []byte) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data, ok := <-msgCh:
			if !ok {
				return nil
			}
			if err := v.Send(data); err != nil {
				v.logger.WarnContext(ctx, "subscribeLoop: writeCh full, message dropped")
			}
		}
	}
}

func (v *Viewer) touch() {
	v.lastPong.Store(time.Now().UnixNano())
}

func (v *Viewer) close() {
	if !v.closed.CompareAndSwap(false, true) {
		return
	}
	_ = v.transport.Close(int32(websocket.StatusNormalClosure), "")
}

func isNormalClosure(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}
