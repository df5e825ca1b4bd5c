package bot

import (
	"log/slog"
	"net/http"

	"gleaner/bot/handler"
	"gleaner/bot/observer"
)

func Route(hub *observer.Hub, secret []byte, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /ws", handler.NewAcceptHandler(hub, secret, logger))
	mux.Handle("GET /health", handler.NewHealthHandler())
	return mux
}
