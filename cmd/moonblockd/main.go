package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/randomtoy/moonblock-go/internal/adapters/http"
	"github.com/randomtoy/moonblock-go/internal/adapters/llm/chatapi"
	"github.com/randomtoy/moonblock-go/internal/adapters/memory"
	"github.com/randomtoy/moonblock-go/internal/adapters/rng"
	"github.com/randomtoy/moonblock-go/internal/adapters/textbank"
	"github.com/randomtoy/moonblock-go/internal/app"
	"github.com/randomtoy/moonblock-go/internal/config"
	"github.com/randomtoy/moonblock-go/internal/domain"
	"github.com/randomtoy/moonblock-go/internal/ports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	bank, err := textbank.Load()
	if err != nil {
		logger.Error("failed to load fallback texts", "error", err)
		os.Exit(1)
	}

	var teller ports.FortuneTeller
	if cfg.ServiceConfigured() {
		teller = chatapi.NewClient(
			&http.Client{Timeout: cfg.FinalCardTimeout},
			cfg.LLMAPIKey,
			cfg.LLMBaseURL,
			cfg.LLMModel,
			cfg.LLMTemperature,
			logger,
		)
	} else {
		logger.Warn("LLM_API_KEY not set, serving fallback texts only")
	}

	timing := cfg.Timing()
	oracle := app.NewOracle(teller, bank, rng.Std{}, timing, logger)
	seq := app.NewSequencer(oracle, domain.NewThrowGenerator(rng.Std{}), timing, logger)
	desk := app.NewComplaintDesk(memory.NewComplaintStore(), app.SystemClock{})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(oracle, seq, desk, app.SystemClock{}, cfg.ClockOutHour)
	handler.Register(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "llm", cfg.ServiceConfigured())
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := e.Shutdown(shutdownCtx)
		seq.Close()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
