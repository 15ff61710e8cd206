// Package server wires the support chat backend together: the store, the
// assistant gateway, the business services and the HTTP and gRPC listeners.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/supportchat/internal/logging"
	"github.com/dmitrijs2005/supportchat/internal/server/assistant"
	"github.com/dmitrijs2005/supportchat/internal/server/config"
	"github.com/dmitrijs2005/supportchat/internal/server/httpapi"
	"github.com/dmitrijs2005/supportchat/internal/server/metrics"
	"github.com/dmitrijs2005/supportchat/internal/server/objectstore"
	"github.com/dmitrijs2005/supportchat/internal/server/prompt"
	"github.com/dmitrijs2005/supportchat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/supportchat/internal/server/services"

	gs "github.com/dmitrijs2005/supportchat/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

// Test seams.
var (
	openRepositories = repomanager.New

	newGateway = func(ctx context.Context, c assistant.GeminiConfig, l logging.Logger) (assistant.Gateway, error) {
		return assistant.NewGeminiGateway(ctx, c, l)
	}

	newObjectStore = objectstore.NewS3Store
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	handler http.Handler
}

// NewApp connects to the store, loads the FAQ corpus and builds the services
// and the HTTP handler. The store is closed again if anything later fails.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := openRepositories(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := build(ctx, c, logger, repos)
	if err != nil {
		if cerr := repos.Close(ctx); cerr != nil {
			logger.Error(ctx, "failed to close store", "error", cerr)
		}
		return nil, err
	}

	return app, nil
}

func build(ctx context.Context, c *config.Config, logger logging.Logger, repos repomanager.RepositoryManager) (*App, error) {
	var store *objectstore.S3Store
	if c.ObjectStorageEnabled() || strings.HasPrefix(c.FAQSource, "s3://") {
		s, err := newObjectStore(ctx, objectstore.Config{
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Bucket:    c.S3Bucket,
		})
		if err != nil {
			return nil, fmt.Errorf("object storage init error: %w", err)
		}
		store = s
	}

	var objects prompt.ObjectReader
	if store != nil {
		objects = store
	}
	faq, err := prompt.LoadCorpus(ctx, c.FAQSource, objects)
	if err != nil {
		return nil, fmt.Errorf("faq corpus: %w", err)
	}

	gw, err := newGateway(ctx, assistant.GeminiConfig{
		APIKey:  c.GeminiAPIKey,
		Model:   c.GeminiModel,
		BaseURL: c.GeminiBaseURL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("assistant init error: %w", err)
	}

	m := metrics.New()
	log := services.NewMessageLog(repos.Messages())
	accounts := services.NewUserService(repos.Users(), c, logger)
	chat := services.NewChatService(log, faq, gw, m, logger)

	var exports services.TranscriptStore
	if store != nil && c.ObjectStorageEnabled() {
		exports = store
	}
	transcripts := services.NewTranscriptService(log, exports, logger)

	h := httpapi.NewHandler(accounts, chat, transcripts, m, logger, httpapi.Options{
		AllowedOrigins:       c.CORSAllowedOrigins,
		AllowUnscopedHistory: c.AllowUnscopedHistory,
	})

	return &App{config: c, logger: logger, repos: repos, handler: h.Routes()}, nil
}

// Handler returns the HTTP API.
func (app *App) Handler() http.Handler {
	return app.handler
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	lis, err := net.Listen("tcp", app.config.HTTPAddr)
	if err != nil {
		app.logger.Error(ctx, "http listen failed", "addr", app.config.HTTPAddr, "error", err)
		cancelFunc()
		return
	}
	app.serveHTTP(ctx, cancelFunc, lis)
}

func (app *App) serveHTTP(ctx context.Context, cancelFunc context.CancelFunc, lis net.Listener) {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown failed", "error", err)
		}
	}()

	app.logger.Info(ctx, "http server listening", "addr", lis.Addr().String())
	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "http server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.GRPCAddr, app.logger, app.repos)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a termination signal arrives or a
// listener fails, then closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.GRPCAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.repos.Close(context.WithoutCancel(ctx)); err != nil {
		app.logger.Error(ctx, "failed to close store", "error", err)
	}
	app.logger.Info(ctx, "app stopped")
}
