package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"gleaner/utils"
)

// ErrInvalidConfig は設定値が不正な場合に返されるエラーです。
var ErrInvalidConfig = errors.New("invalid config")

// Config はボットクライアント1プロセスぶんの設定です。
type Config struct {
	Email    string
	Password string
	Name     string
	Team     string
	BaseURL  string
	BoardID  int
	Bots     int
	Seed     uint64

	HTTPTimeout time.Duration
	HTTPRetries int

	ObserverAddr     string
	ObserverSecret   string
	ObserverTokenTTL time.Duration

	OTLPEndpoint string
	LogLevel     slog.Level
}

// Load は環境変数を既定値としてフラグを解釈します。フラグが環境変数より優先されます。
func Load(args []string) (Config, error) {
	var (
		cfg      Config
		seed     int
		logLevel string
	)
	fs := flag.NewFlagSet("gleaner", flag.ContinueOnError)
	fs.StringVar(&cfg.Email, "email", utils.GetEnvDefault("BOT_EMAIL", "bot@student.itera.ac.id"), "bot account email")
	fs.StringVar(&cfg.Password, "password", utils.GetEnvDefault("BOT_PASSWORD", "123456"), "bot account password")
	fs.StringVar(&cfg.Name, "name", utils.GetEnvDefault("BOT_NAME", "CBot"), "bot display name")
	fs.StringVar(&cfg.Team, "team", utils.GetEnvDefault("BOT_TEAM", "etimo"), "team name used on registration")
	fs.StringVar(&cfg.BaseURL, "url", utils.GetEnvDefault("BOT_URL", "http://localhost:3000/api"), "game server API base URL")
	fs.IntVar(&cfg.BoardID, "board", utils.GetEnvInt("BOARD_ID", 1), "preferred board id")
	fs.IntVar(&cfg.Bots, "bots", utils.GetEnvInt("BOT_COUNT", 1), "number of bots to run")
	fs.IntVar(&seed, "seed", utils.GetEnvInt("BOT_SEED", 0), "random seed (0 = time based)")
	fs.DurationVar(&cfg.HTTPTimeout, "http-timeout", utils.GetEnvDuration("HTTP_TIMEOUT", 10*time.Second), "per request timeout")
	fs.IntVar(&cfg.HTTPRetries, "http-retries", utils.GetEnvInt("HTTP_RETRIES", 3), "max tries for transient HTTP failures")
	fs.StringVar(&cfg.ObserverAddr, "observer", utils.GetEnvDefault("OBSERVER_ADDR", "localhost:9090"), "observer listen address (empty disables)")
	fs.StringVar(&cfg.ObserverSecret, "observer-secret", utils.GetEnvDefault("OBSERVER_SECRET", ""), "HS256 secret for viewer tokens (empty = open)")
	fs.DurationVar(&cfg.ObserverTokenTTL, "observer-token-ttl", 0, "print a viewer token valid for this long at startup")
	fs.StringVar(&cfg.OTLPEndpoint, "otlp", utils.GetEnvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""), "OTLP gRPC endpoint (empty disables export)")
	fs.StringVar(&logLevel, "log-level", utils.GetEnvDefault("LOG_LEVEL", "info"), "debug|info|warn|error")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if seed < 0 {
		return Config{}, fmt.Errorf("%w: seed must not be negative", ErrInvalidConfig)
	}
	cfg.Seed = uint64(seed)
	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("%w: log level %q", ErrInvalidConfig, logLevel)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		errs = append(errs, fmt.Errorf("email %q", c.Email))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("url %q", c.BaseURL))
	}
	if c.Bots < 1 {
		errs = append(errs, fmt.Errorf("bots must be at least 1, got %d", c.Bots))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout))
	}
	if c.HTTPRetries < 1 {
		errs = append(errs, fmt.Errorf("http retries must be at least 1, got %d", c.HTTPRetries))
	}
	if c.ObserverTokenTTL > 0 && c.ObserverSecret == "" {
		errs = append(errs, errors.New("observer-token-ttl requires an observer secret"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// BotAccount は i 番目のボットの名前とメールアドレスを返します。
// 0 番目は設定そのまま、以降は name に番号を付け、メールは local+i@domain にします。
func (c Config) BotAccount(i int) (name, email string) {
	if i == 0 {
		return c.Name, c.Email
	}
	name = fmt.Sprintf("%s%d", c.Name, i)
	local, domain, ok := strings.Cut(c.Email, "@")
	if !ok {
		return name, c.Email
	}
	return name, fmt.Sprintf("%s+%d@%s", local, i, domain)
}
