package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/config"
	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/layout"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/widget"
)

const shutdownTimeout = 5 * time.Second

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server previews the forms of a config store in the browser.
type Server struct {
	store    *config.Store
	renderer *layout.Renderer
	logger   *zap.Logger
	router   chi.Router
}

// New builds a server over store, rendering pages with renderer.
func New(store *config.Store, renderer *layout.Renderer, opts ...Option) (*Server, error) {
	if store == nil {
		return nil, errors.New("server: config store is required")
	}
	if renderer == nil {
		return nil, errors.New("server: layout renderer is required")
	}
	s := &Server{store: store, renderer: renderer, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("preview server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", s.handleIndex)
	r.Route("/forms/{name}", func(r chi.Router) {
		r.Get("/", s.handleForm)
		r.Post("/", s.handleSubmit)
		r.Get("/definition", s.handleDefinition)
	})
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	items := make([]string, 0, len(s.store.Forms()))
	for _, name := range s.store.Forms() {
		link := html.Tag("a", html.Encode(name), html.Attributes{"href": "/forms/" + name})
		items = append(items, html.Tag("li", link, nil))
	}
	body := html.Tag("h1", "Forms", nil) + "\n" + html.Tag("ul", "\n"+strings.Join(items, "\n")+"\n", nil)
	writeHTML(w, http.StatusOK, "<!DOCTYPE html>\n"+html.Tag("body", "\n"+body+"\n", nil))
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	def, ok := s.definition(w, r)
	if !ok {
		return
	}
	s.renderPage(w, r, def, nil, http.StatusOK)
}

// handleSubmit loads the posted values into the model and renders the form
// again with them.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	def, ok := s.definition(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid form payload", err)
		return
	}
	form := def.Model()
	loaded, err := form.Load(r.PostForm)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid form payload", err)
		return
	}
	s.logger.Debug("form submitted",
		zap.String("form", def.Name),
		zap.Bool("loaded", loaded),
		zap.Strings("keys", postedKeys(r)),
	)
	s.renderPage(w, r, def, form, http.StatusOK)
}

func (s *Server) handleDefinition(w http.ResponseWriter, r *http.Request) {
	def, ok := s.definition(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(def); err != nil {
		s.logger.Warn("encode definition", zap.String("form", def.Name), zap.Error(err))
	}
}

func (s *Server) definition(w http.ResponseWriter, r *http.Request) (config.FormDefinition, bool) {
	name := chi.URLParam(r, "name")
	def, ok := s.store.Form(name)
	if !ok {
		s.fail(w, r, http.StatusNotFound, fmt.Sprintf("form %q not found", name), nil)
		return config.FormDefinition{}, false
	}
	query := r.URL.Query()
	if theme := strings.TrimSpace(query.Get("theme")); theme != "" {
		def.Theme = theme
		def.Variant = strings.TrimSpace(query.Get("variant"))
	}
	return def, true
}

// renderPage renders def with form, or with its default model when form is
// nil. Submitted values a widget cannot represent are client errors.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, def config.FormDefinition, form model.FormModel, status int) {
	out, err := s.renderer.Page(r.Context(), def, form)
	if err != nil {
		var valueErr *widget.ValueError
		if form != nil && errors.As(err, &valueErr) {
			s.fail(w, r, http.StatusBadRequest, fmt.Sprintf("invalid value for %q", valueErr.Attribute), err)
			return
		}
		s.fail(w, r, http.StatusInternalServerError, "render failed", err)
		return
	}
	writeHTML(w, status, out)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error(message, fields...)
	} else {
		s.logger.Debug(message, fields...)
	}
	http.Error(w, message, status)
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func postedKeys(r *http.Request) []string {
	keys := make([]string, 0, len(r.PostForm))
	for key := range r.PostForm {
		keys = append(keys, key)
	}
	return keys
}
