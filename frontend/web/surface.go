package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/furisto/ask/backend/dialog"
)

const (
	DefaultAddress        = "127.0.0.1:0"
	DefaultReconnectGrace = 3 * time.Second
	DefaultErrorDisplay   = 3 * time.Second
	DefaultConnectTimeout = 2 * time.Minute

	shutdownTimeout = 5 * time.Second
)

//go:embed static/index.html
var page []byte

// Opener shows a URL to the user, usually by launching a browser.
type Opener interface {
	Open(ctx context.Context, url string) error
}

type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) Open(ctx context.Context, url string) error {
	return f(ctx, url)
}

type SurfaceOption func(*Surface)

func WithAddress(address string) SurfaceOption {
	return func(s *Surface) {
		s.address = address
	}
}

// WithOpener sets how the question page is shown. A nil opener only logs the
// URL.
func WithOpener(opener Opener) SurfaceOption {
	return func(s *Surface) {
		s.opener = opener
	}
}

func WithLogger(logger *slog.Logger) SurfaceOption {
	return func(s *Surface) {
		s.logger = logger
	}
}

func WithReconnectGrace(grace time.Duration) SurfaceOption {
	return func(s *Surface) {
		s.grace = grace
	}
}

// WithConnectTimeout bounds how long the page may stay unopened. The dialog
// fails when no tab connects in time; zero waits for the caller's context.
func WithConnectTimeout(timeout time.Duration) SurfaceOption {
	return func(s *Surface) {
		s.connectTimeout = timeout
	}
}

func WithErrorDisplay(d time.Duration) SurfaceOption {
	return func(s *Surface) {
		s.errorDisplay = d
	}
}

// Surface shows questions as a modal page in the browser. Each question gets
// its own short lived server on a random path.
type Surface struct {
	address        string
	opener         Opener
	logger         *slog.Logger
	grace          time.Duration
	errorDisplay   time.Duration
	connectTimeout time.Duration
}

func NewSurface(opts ...SurfaceOption) *Surface {
	s := &Surface{
		address:        DefaultAddress,
		logger:         slog.Default(),
		grace:          DefaultReconnectGrace,
		errorDisplay:   DefaultErrorDisplay,
		connectTimeout: DefaultConnectTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Surface) Present(ctx context.Context, d *dialog.Dialog) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}

	id := uuid.NewString()
	url := fmt.Sprintf("http://%s/q/%s", listener.Addr(), id)
	logger := s.logger.With("url", url)
	sess := newSession(d, logger, s.grace, s.errorDisplay)

	server := &http.Server{
		Handler:           newRouter(id, sess),
		ReadHeaderTimeout: 10 * time.Second,
	}

	presentCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(presentCtx)
	g.Go(func() error {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("question page server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-d.Done():
		case <-sess.abandoned:
			logger.Info("question page closed without an answer")
			d.Close()
		case <-sess.unopened:
			logger.Warn("question page was never opened", "timeout", s.connectTimeout)
			d.Fail(fmt.Sprintf("question page was never opened within %s", s.connectTimeout))
		case <-gctx.Done():
		}

		sess.finish(shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	logger.Info("question page ready")
	sess.expectClient(s.connectTimeout)

	var openErr error
	if s.opener != nil {
		if openErr = s.opener.Open(presentCtx, url); openErr != nil {
			cancel()
		}
	}

	err = g.Wait()
	switch {
	case openErr != nil:
		return fmt.Errorf("failed to show question page: %w", openErr)
	case ctx.Err() != nil:
		return ctx.Err()
	}

	return err
}

func newRouter(id string, sess *session) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/q/{id}", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if chi.URLParam(req, "id") != id {
					http.NotFound(w, req)
					return
				}
				next.ServeHTTP(w, req)
			})
		})

		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
			_, _ = w.Write(page)
		})
		r.Get("/ws", sess.handleSocket)
	})

	return r
}

var _ dialog.Surface = (*Surface)(nil)
