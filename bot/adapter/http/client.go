package adapterhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gleaner/bot/domain"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultMaxTries      = 3
	defaultRetryInterval = 200 * time.Millisecond
	maxErrorBody         = 256
)

// Client はゲームサーバーのJSON APIを叩く domain.GameAPI 実装です。
type Client struct {
	baseURL       string
	http          *http.Client
	maxTries      uint
	retryInterval time.Duration
	logger        *slog.Logger
}

var _ domain.GameAPI = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient は計装済みのデフォルトクライアントを差し替えます。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRetry は一時的な失敗 (通信エラーと5xx) の再試行回数と初回間隔を設定します。
func WithRetry(maxTries uint, initialInterval time.Duration) Option {
	return func(c *Client) {
		c.maxTries = max(maxTries, 1)
		c.retryInterval = initialInterval
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxTries:      defaultMaxTries,
		retryInterval: defaultRetryInterval,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Recover(ctx context.Context, email, password string) (string, error) {
	res, err := c.do(ctx, http.MethodPost, "/bots/recover", recoverRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	if res.status != http.StatusCreated {
		return "", fmt.Errorf("%w: recover returned status %d", domain.ErrNotFound, res.status)
	}
	var bot wireBot
	if err := json.Unmarshal(res.body, &bot); err != nil {
		return "", fmt.Errorf("decode recover response: %w", err)
	}
	if bot.ID == "" {
		return "", fmt.Errorf("%w: recover returned no id", domain.ErrNotFound)
	}
	return bot.ID, nil
}

func (c *Client) Register(ctx context.Context, account domain.Account) (domain.Registration, error) {
	path := "/bots"
	res, err := c.do(ctx, http.MethodPost, path, registerRequest{
		Email:    account.Email,
		Name:     account.Name,
		Password: account.Password,
		Team:     account.Team,
	})
	if err != nil {
		return domain.Registration{}, err
	}
	if res.status != http.StatusOK {
		return domain.Registration{}, rejected(http.MethodPost, path, res)
	}
	var bot wireBot
	if err := json.Unmarshal(res.body, &bot); err != nil {
		return domain.Registration{}, fmt.Errorf("decode register response: %w", err)
	}
	return domain.Registration{Token: bot.ID, Name: bot.Name, Email: bot.Email}, nil
}

func (c *Client) ListBoards(ctx context.Context) ([]domain.Board, error) {
	path := "/boards"
	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, rejected(http.MethodGet, path, res)
	}
	var boards []wireBoard
	if err := json.Unmarshal(res.body, &boards); err != nil {
		return nil, fmt.Errorf("decode boards: %w", err)
	}
	out := make([]domain.Board, 0, len(boards))
	for _, b := range boards {
		out = append(out, *b.toDomain())
	}
	return out, nil
}

func (c *Client) GetBoard(ctx context.Context, boardID int) (*domain.Board, error) {
	path := "/boards/" + strconv.Itoa(boardID)
	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	switch res.status {
	case http.StatusOK:
		return decodeBoard(res.body)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: board %d", domain.ErrNotFound, boardID)
	default:
		return nil, rejected(http.MethodGet, path, res)
	}
}

func (c *Client) Join(ctx context.Context, token string, boardID int) error {
	path := "/bots/" + url.PathEscape(token) + "/join"
	res, err := c.do(ctx, http.MethodPost, path, joinRequest{PreferredBoardID: boardID})
	if err != nil {
		return err
	}
	if res.status != http.StatusOK {
		return rejected(http.MethodPost, path, res)
	}
	return nil
}

func (c *Client) Move(ctx context.Context, token string, direction domain.Direction) (*domain.Board, error) {
	path := "/bots/" + url.PathEscape(token) + "/move"
	res, err := c.do(ctx, http.MethodPost, path, moveRequest{Direction: direction.String()})
	if err != nil {
		return nil, err
	}
	if res.status != http.StatusOK {
		return nil, rejected(http.MethodPost, path, res)
	}
	return decodeBoard(res.body)
}

type response struct {
	status int
	body   json.RawMessage
}

// do はJSONリクエストを1つ送ります。通信エラーと5xxは再試行し、それ以外のステータスはボディを展開して呼び出し元へ返します。
func (c *Client) do(ctx context.Context, method, path string, payload any) (response, error) {
	var data []byte
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return response{}, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
	}

	op := func() (response, error) {
		var body io.Reader
		if data != nil {
			body = bytes.NewReader(data)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return response{}, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		c.logger.DebugContext(ctx, ">>> "+method+" "+path, "body", string(data))

		res, err := c.http.Do(req)
		if err != nil {
			return response{}, err
		}
		defer res.Body.Close()
		raw, err := io.ReadAll(res.Body)
		if err != nil {
			return response{}, fmt.Errorf("read %s %s: %w", method, path, err)
		}
		c.logger.DebugContext(ctx, "<<< "+strconv.Itoa(res.StatusCode), "path", path)

		if res.StatusCode >= http.StatusInternalServerError {
			return response{}, fmt.Errorf("%s %s: server error %d: %s", method, path, res.StatusCode, truncate(raw))
		}
		return response{status: res.StatusCode, body: unwrap(raw)}, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	return backoff.Retry(ctx, op, backoff.WithBackOff(b), backoff.WithMaxTries(c.maxTries))
}

func decodeBoard(raw json.RawMessage) (*domain.Board, error) {
	var b wireBoard
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	return b.toDomain(), nil
}

// unwrap は {"data": ...} 形式の応答から中身を取り出します。data が空ならボディをそのまま返します。
func unwrap(raw []byte) json.RawMessage {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || isEmptyJSON(env.Data) {
		return raw
	}
	return env.Data
}

func isEmptyJSON(v json.RawMessage) bool {
	switch string(bytes.TrimSpace(v)) {
	case "", "null", "{}", "[]", `""`, "0", "false":
		return true
	}
	return false
}

func rejected(method, path string, res response) error {
	return fmt.Errorf("%w: %s %s: status %d: %s", domain.ErrRejected, method, path, res.status, truncate(res.body))
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
