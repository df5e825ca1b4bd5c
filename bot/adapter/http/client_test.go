package adapterhttp_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	adapterhttp "gleaner/bot/adapter/http"
	"gleaner/bot/domain"
)

const boardJSON = `{
  "id": 1, "width": 15, "height": 15, "minimumDelayBetweenMoves": 100,
  "features": [{"name": "DiamondButtonProvider", "config": {"count": 1}}],
  "gameObjects": [
    {"id": 10, "position": {"x": 2, "y": 3}, "type": "BotGameObject",
     "properties": {"name": "CBot", "diamonds": 2, "inventorySize": 5, "score": 7,
                    "base": {"x": 0, "y": 0}, "timeJoined": "2024-01-02T03:04:05Z"}},
    {"id": 11, "position": {"x": 5, "y": 5}, "type": "DiamondGameObject", "properties": {"points": 2}},
    {"id": 12, "position": {"x": 7, "y": 1}, "type": "TeleportGameObject", "properties": {"pairId": "13"}},
    {"id": 14, "position": {"x": 9, "y": 9}, "type": "DiamondButtonGameObject"}
  ]
}`

func newClient(t *testing.T, h http.HandlerFunc) *adapterhttp.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return adapterhttp.NewClient(srv.URL,
		adapterhttp.WithHTTPClient(srv.Client()),
		adapterhttp.WithRetry(3, time.Millisecond),
	)
}

func TestClient_Recover(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr error
	}{
		{name: "created", status: http.StatusCreated, body: `{"id":"tok-1"}`, want: "tok-1"},
		{name: "enveloped", status: http.StatusCreated, body: `{"data":{"id":"tok-2"}}`, want: "tok-2"},
		{name: "not found", status: http.StatusNotFound, body: `{"message":"no"}`, wantErr: domain.ErrNotFound},
		{name: "missing id", status: http.StatusCreated, body: `{}`, wantErr: domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/bots/recover" {
					t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
				}
				var req map[string]string
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decode request: %v", err)
				}
				if req["email"] != "a@b.c" || req["password"] != "pw" {
					t.Errorf("unexpected body: %v", req)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			got, err := c.Recover(context.Background(), "a@b.c", "pw")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_Register(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bots" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["team"] != "etimo" || req["name"] != "CBot" {
			t.Errorf("unexpected body: %v", req)
		}
		_, _ = io.WriteString(w, `{"data":{"id":"tok","name":"CBot","email":"a@b.c"}}`)
	})

	reg, err := c.Register(context.Background(), domain.Account{Name: "CBot", Email: "a@b.c", Password: "pw", Team: "etimo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg != (domain.Registration{Token: "tok", Name: "CBot", Email: "a@b.c"}) {
		t.Fatalf("unexpected registration: %+v", reg)
	}
}

func TestClient_RegisterRejected(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"name taken"}`)
	})

	_, err := c.Register(context.Background(), domain.Account{Name: "CBot"})
	if !errors.Is(err, domain.ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
}

func TestClient_GetBoardDecodesObjects(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/boards/1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, boardJSON)
	})

	b, err := c.GetBoard(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != 1 || b.Width != 15 || b.MinimumDelayBetweenMoves != 100*time.Millisecond {
		t.Fatalf("unexpected board header: %+v", b)
	}
	if len(b.Objects) != 4 {
		t.Fatalf("objects = %d, want 4", len(b.Objects))
	}

	me, ok := b.FindBot("CBot")
	if !ok {
		t.Fatal("bot not found")
	}
	if me.Diamonds != 2 || me.Base == nil || *me.Base != (domain.Position{}) {
		t.Fatalf("unexpected bot: %+v", me)
	}
	if !me.TimeJoined.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("timeJoined = %v", me.TimeJoined)
	}
	if items := b.Collectibles(); len(items) != 1 || items[0].Points != 2 {
		t.Fatalf("unexpected collectibles: %+v", items)
	}
	if tps := b.TeleporterPositions(); len(tps) != 1 || !tps.Contains(domain.Position{X: 7, Y: 1}) {
		t.Fatalf("unexpected teleporters: %+v", tps)
	}
	if other, ok := b.Objects[3].(domain.Other); !ok || other.Kind != "DiamondButtonGameObject" {
		t.Fatalf("unexpected fallback object: %#v", b.Objects[3])
	}
}

func TestClient_GetBoardNotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetBoard(context.Background(), 9)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestClient_ListBoards(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[`+boardJSON+`,{"id":2,"width":10,"height":10}]`)
	})

	boards, err := c.ListBoards(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boards) != 2 || boards[0].ID != 1 || boards[1].ID != 2 {
		t.Fatalf("unexpected boards: %+v", boards)
	}
}

func TestClient_JoinAndMove(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch r.URL.EscapedPath() {
		case "/bots/tok%2F1/join":
			if req["preferredBoardId"] != float64(3) {
				t.Errorf("unexpected join body: %v", req)
			}
		case "/bots/tok%2F1/move":
			if req["direction"] != "EAST" {
				t.Errorf("unexpected move body: %v", req)
			}
			_, _ = io.WriteString(w, boardJSON)
		default:
			t.Errorf("unexpected path: %s", r.URL.EscapedPath())
		}
	})

	ctx := context.Background()
	if err := c.Join(ctx, "tok/1", 3); err != nil {
		t.Fatalf("join: %v", err)
	}
	b, err := c.Move(ctx, "tok/1", domain.East)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if b.ID != 1 {
		t.Fatalf("unexpected board: %+v", b)
	}
}

func TestClient_MoveRejected(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"message":"game over"}`)
	})

	_, err := c.Move(context.Background(), "tok", domain.North)
	if !errors.Is(err, domain.ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, boardJSON)
	})

	if _, err := c.GetBoard(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
}

func TestClient_GivesUpAfterMaxTries(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := c.ListBoards(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
}
