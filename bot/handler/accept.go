package handler

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	adapterwebsocket "gleaner/bot/adapter/websocket"
	"gleaner/bot/observer"
)

const anonymousViewer = "anonymous"

type AcceptHandler struct {
	hub    *observer.Hub
	secret []byte
	logger *slog.Logger
}

// NewAcceptHandler は観戦用WebSocketを受け付けるハンドラを返します。
// secret が空でなければ ?token= の検証を要求します。
func NewAcceptHandler(hub *observer.Hub, secret []byte, logger *slog.Logger) *AcceptHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AcceptHandler{hub: hub, secret: secret, logger: logger}
}

func (h *AcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := anonymousViewer
	if len(h.secret) > 0 {
		viewer, err := observer.VerifyViewerToken(h.secret, r.URL.Query().Get("token"))
		if err != nil {
			h.logger.WarnContext(ctx, "rejected viewer", "remote", r.RemoteAddr, "err", err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		name = viewer
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // 開発用: Origin チェックをスキップ
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to accept", "err", err)
		return
	}

	viewer, err := observer.NewViewer(name, adapterwebsocket.NewTransportFrom(conn), h.hub, observer.WithViewerLogger(h.logger))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create viewer", "err", err)
		_ = conn.Close(websocket.StatusInternalError, "")
		return
	}
	h.logger.DebugContext(ctx, "accepted viewer", "viewer", viewer.ID(), "name", name)
	if err := viewer.Run(ctx); err != nil {
		h.logger.WarnContext(ctx, "viewer disconnected", "viewer", viewer.ID(), "err", err)
		return
	}
	h.logger.DebugContext(ctx, "viewer closed", "viewer", viewer.ID())
}
