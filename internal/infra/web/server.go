package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"heart-risk-assistant/internal/infra/markdown"
	"heart-risk-assistant/internal/usecase"
)

// Server is the HTTP surface: assessment submission, the rendered view,
// the chat endpoint and operational routes. Session scoping rides on a
// cookie; everything else is delegated to the use cases.
type Server struct {
	assessUC   usecase.AssessmentUseCase
	chatUC     usecase.ChatUseCase
	sanitizer  *markdown.Sanitizer
	cookieName string
	cookieTTL  time.Duration
	log        *zerolog.Logger
}

func NewServer(
	assessUC usecase.AssessmentUseCase,
	chatUC usecase.ChatUseCase,
	sanitizer *markdown.Sanitizer,
	cookieName string,
	cookieTTL time.Duration,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		assessUC:   assessUC,
		chatUC:     chatUC,
		sanitizer:  sanitizer,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
		log:        logger,
	}
}

// Router builds the chi routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.traceContext)
	r.Use(s.requestLog)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleView)
	r.Post("/", s.handleSubmit)
	r.Post("/chat", s.handleChat)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// sessionID returns the caller's session ID, minting a cookie on first
// contact. The cookie expiry mirrors the store TTL.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
