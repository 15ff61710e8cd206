// Package httpapi serves the JSON API used by the chat widget: signup and
// login, chat messages and chat history, plus health and metrics endpoints.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/supportchat/internal/logging"
	"github.com/dmitrijs2005/supportchat/internal/server/metrics"
	"github.com/dmitrijs2005/supportchat/internal/server/models"
	"github.com/dmitrijs2005/supportchat/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Accounts is the account side of the API.
type Accounts interface {
	TokenParser
	Signup(ctx context.Context, username, password string) (*services.Session, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
}

// Chat runs chat turns and reads history.
type Chat interface {
	Send(ctx context.Context, userID, text string) (string, error)
	History(ctx context.Context, userID string) ([]*models.ChatMessage, error)
}

// Transcripts exports a user's history to object storage.
type Transcripts interface {
	Export(ctx context.Context, userID string) (*services.TranscriptExport, error)
}

// Options tune the router.
type Options struct {
	AllowedOrigins []string
	// AllowUnscopedHistory lets GET /api/chat/history without a user return
	// every stored message.
	AllowUnscopedHistory bool
}

type Handler struct {
	accounts    Accounts
	chat        Chat
	transcripts Transcripts
	metrics     *metrics.Metrics
	logger      logging.Logger
	opts        Options
}

func NewHandler(a Accounts, c Chat, t Transcripts, m *metrics.Metrics, l logging.Logger, opts Options) *Handler {
	return &Handler{
		accounts:    a,
		chat:        c,
		transcripts: t,
		metrics:     m,
		logger:      l.With("module", "http"),
		opts:        opts,
	}
}

// Routes builds the chi router with the middleware stack and all endpoints.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(instrument(h.metrics))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	origins := h.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.health)
	r.Handle("/metrics", h.metrics.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
		r.With(requireAuth(h.accounts, h.logger)).Get("/me", h.me)
	})

	r.Route("/api/chat", func(r chi.Router) {
		r.Use(optionalAuth(h.accounts))
		r.Post("/message", h.sendMessage)
		r.Get("/history", h.history)
		r.With(requireAuth(h.accounts, h.logger)).Post("/history/export", h.exportHistory)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}
