package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"gleaner/bot"
	adapterhttp "gleaner/bot/adapter/http"
	"gleaner/bot/application"
	"gleaner/bot/config"
	"gleaner/bot/domain"
	"gleaner/bot/observer"
	"gleaner/bot/telemetry"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("gleaner exited", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: "gleaner",
		Endpoint:    cfg.OTLPEndpoint,
		Level:       cfg.LogLevel,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "err", err)
		}
	}()
	logger := tel.Logger

	hub := observer.NewHub(0, logger)
	var publisher domain.Publisher = domain.NewNopPublisher()

	eg, ctx := errgroup.WithContext(ctx)

	if cfg.ObserverAddr != "" {
		publisher = hub
		secret := []byte(cfg.ObserverSecret)
		if cfg.ObserverTokenTTL > 0 {
			token, err := observer.IssueViewerToken(secret, "cli", cfg.ObserverTokenTTL)
			if err != nil {
				return err
			}
			fmt.Printf("viewer token (valid %s): %s\n", cfg.ObserverTokenTTL, token)
		}

		s := bot.NewServer(cfg.ObserverAddr, bot.Route(hub, secret, logger))
		eg.Go(func() error {
			logger.InfoContext(ctx, "observer listening", "addr", s.Addr())
			if err := s.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("observer: %w", err)
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.Shutdown(shutdownCtx); err != nil {
				logger.ErrorContext(ctx, "graceful shutdown failed", "error", err)
				if err := s.Close(); err != nil {
					logger.ErrorContext(ctx, "forced close failed", "error", err)
				}
			}
			return nil
		})
	}

	api := adapterhttp.NewClient(cfg.BaseURL,
		adapterhttp.WithTimeout(cfg.HTTPTimeout),
		adapterhttp.WithRetry(uint(cfg.HTTPRetries), 200*time.Millisecond),
		adapterhttp.WithLogger(logger),
	)
	tracer := tel.Tracer("gleaner/bot/application")

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.InfoContext(ctx, "starting bots", "count", cfg.Bots, "server", cfg.BaseURL, "board", cfg.BoardID, "seed", seed)

	// 全ボットの終了でオブザーバも止める
	botsDone := make(chan struct{})
	var bots errgroup.Group
	for i := range cfg.Bots {
		name, email := cfg.BotAccount(i)
		runner, err := application.NewRunner(application.RunnerConfig{
			API:        api,
			Controller: application.NewGreedyController(rand.New(rand.NewPCG(seed, uint64(i)))),
			Account: domain.Account{
				Name:     name,
				Email:    email,
				Password: cfg.Password,
				Team:     cfg.Team,
			},
			BoardID:   cfg.BoardID,
			Publisher: publisher,
			Tracer:    tracer,
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		bots.Go(func() error {
			if err := runner.Run(ctx); err != nil {
				return fmt.Errorf("bot %s: %w", name, err)
			}
			logger.InfoContext(ctx, "bot finished", "bot", name)
			return nil
		})
	}
	eg.Go(func() error {
		defer close(botsDone)
		return bots.Wait()
	})
	eg.Go(func() error {
		select {
		case <-botsDone:
			stop()
		case <-ctx.Done():
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	logger.Info("all bots stopped")
	return nil
}
