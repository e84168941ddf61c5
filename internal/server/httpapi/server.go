// Package httpapi exposes the REST surface of the microblog server: auth
// endpoints, the posts resource, and a health check, behind CORS, rate
// limiting, and bearer-token authentication middleware.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/avolkov/microblog/internal/logging"
	"github.com/avolkov/microblog/internal/server/auth"
	"github.com/avolkov/microblog/internal/server/config"
	"github.com/avolkov/microblog/internal/server/models"
)

// UserService is the identity surface the handlers need.
type UserService interface {
	Register(ctx context.Context, email, username, password string) (*models.User, []string, error)
	Login(ctx context.Context, email, password string) (*models.User, []string, error)
}

// PostService is the posts surface the handlers need.
type PostService interface {
	List(ctx context.Context, skip, take int) ([]*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, title, content, author, fallbackAuthor string) (*models.Post, error)
	Update(ctx context.Context, id int64, title, content, author string) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

// TokenService issues tokens after register/login and verifies bearer tokens
// on inbound requests.
type TokenService interface {
	Issue(user *models.User, roles []string) (string, time.Time, error)
	Parse(tokenString string) (*auth.Claims, error)
}

type Server struct {
	address string
	logger  logging.Logger
	users   UserService
	posts   PostService
	tokens  TokenService
	cfg     *config.Config
}

func NewServer(cfg *config.Config, l logging.Logger, us UserService, ps PostService, ts TokenService) *Server {
	return &Server{
		address: cfg.EndpointAddrHTTP,
		logger:  l.With("module", "http_server"),
		users:   us,
		posts:   ps,
		tokens:  ts,
		cfg:     cfg,
	}
}

// Router assembles the middleware chain and the route table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(httprate.LimitByIP(s.cfg.RateLimitRequests, s.cfg.RateLimitWindow))
	r.Use(cors.Handler(s.corsOptions()))
	r.Use(securityHeaders)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", s.handleListPosts)
		r.Get("/{id}", s.handleGetPost)
		r.With(s.requireAuth).Post("/", s.handleCreatePost)
		r.With(s.requireAuth).Put("/{id}", s.handleUpdatePost)
		r.With(s.requireAuth).Delete("/{id}", s.handleDeletePost)
	})

	return r
}

// corsOptions builds the CORS policy from the configured origin list. An
// empty list allows any origin (dev fallback).
func (s *Server) corsOptions() cors.Options {
	origins := []string{"*"}
	if s.cfg.CORSAllowedOrigins != "" {
		origins = origins[:0]
		for _, o := range strings.Split(s.cfg.CORSAllowedOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
