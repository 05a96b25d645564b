// Command elyubot runs the La Union local-products assistant: an HTTP API,
// a terminal REPL, a full-screen TUI client, or a Telegram bot, all backed
// by the same rule-based dialogue engine.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"elyubot/internal/api"
	"elyubot/internal/catalog"
	"elyubot/internal/channels"
	"elyubot/internal/chat"
	"elyubot/internal/config"
	"elyubot/internal/lexicon"
	"elyubot/internal/llm"
	"elyubot/internal/session"
	"elyubot/internal/tui"

	_ "elyubot/internal/channels/cli"
	_ "elyubot/internal/channels/telegram"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	root := &cobra.Command{
		Use:   "elyubot",
		Short: "Local products assistant for La Union",
		Long:  "ElyuBot answers questions about La Union local products, stores, and towns from an exported data snapshot.",
	}
	root.AddCommand(serveCmd(), replCmd(), tuiCmd(), telegramCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds everything a subcommand needs.
type app struct {
	catalog *catalog.Catalog
	service *chat.Service
	logger  *zap.Logger
}

// newApp wires the shared stack: logger, catalog snapshot, slot-memory store,
// optional generative fallback, and the chat service on top.
func newApp(ctx context.Context) (*app, error) {
	config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cat, err := catalog.Load(config.CatalogPath())
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	norm := lexicon.Default()

	var sessions session.Store
	if addr := config.RedisAddr(); addr != "" {
		client, err := session.DialRedis(ctx, addr, config.RedisPassword(), config.RedisDB())
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		sessions = session.NewRedisStore(client, config.SessionTTL())
		logger.Info("slot memory in redis", zap.String("addr", addr))
	} else {
		sessions = session.NewMemoryStore()
	}

	var opts []chat.ServiceOption
	if model := config.OllamaModel(); model != "" {
		gen, err := llm.NewOllamaGenerator(model, config.OllamaURL(), logger,
			llm.WithTimeout(config.GenerateTimeout()))
		if err != nil {
			return nil, fmt.Errorf("init generator: %w", err)
		}
		opts = append(opts, chat.WithGenerator(gen))
		logger.Info("generative fallback enabled", zap.String("model", model))
	}

	return &app{
		catalog: cat,
		service: chat.NewService(cat, norm, sessions, logger, opts...),
		logger:  logger,
	}, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			router := api.NewRouter(a.catalog, a.service, a.logger, api.Options{
				RateLimitRPS:   config.RateLimitRPS(),
				RateLimitBurst: config.RateLimitBurst(),
			})
			srv := &http.Server{
				Addr:         config.ServerAddr(),
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Chat on stdin/stdout",
		RunE:  runChannel("cli"),
	}
}

func telegramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "telegram",
		Short: "Run the Telegram bot",
		RunE:  runChannel("telegram"),
	}
}

func runChannel(id string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		ch, err := channels.Get(id)
		if err != nil {
			return err
		}
		return ch.Start(ctx, a.service)
	}
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Chat in a full-screen terminal client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			return tui.Run(a.service)
		},
	}
}
