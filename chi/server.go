// Package chi serves a generated documentation tree over HTTP using the
// go-chi router.
package chi

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/knowdoc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultAddr is the fixed local endpoint the content server binds to.
const DefaultAddr = "127.0.0.1:8000"

// Ensure Server implements knowdoc.ContentServer at compile time.
var _ knowdoc.ContentServer = (*Server)(nil)

// Server serves a DocTree in a background goroutine.
type Server struct {
	addr   string
	logger *slog.Logger

	mu  sync.Mutex
	srv *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address. Defaults to DefaultAddr.
// Use "127.0.0.1:0" for an ephemeral port.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithLogger logs every request at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new Server.
func NewServer(opts ...Option) *Server {
	s := &Server{addr: DefaultAddr}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start binds the listener and serves root until Close is called.
// The listener is bound before Start returns.
func (s *Server) Start(root knowdoc.DocTree) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return "", knowdoc.Errorf(knowdoc.EINVALID, "content server already started")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", knowdoc.WrapError(knowdoc.EINTERNAL, err, "cannot listen on %s", s.addr)
	}

	s.srv = &http.Server{
		Handler:           NewHandler(root, s.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func(srv *http.Server) {
		_ = srv.Serve(ln)
	}(s.srv)

	return "http://" + ln.Addr().String(), nil
}

// Close stops the server and closes its listener.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv == nil {
		return nil
	}
	err := s.srv.Close()
	s.srv = nil
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// NewHandler returns a handler mapping request paths onto files under root.
// Existing files readable as UTF-8 text are served with 200, other existing
// paths (directories, binary files) with 500, and everything else, including
// paths that would leave root, with 404. Only GET is served.
func NewHandler(root knowdoc.DocTree, logger *slog.Logger) http.Handler {
	base := string(root)
	if resolved, err := filepath.EvalSymlinks(base); err == nil {
		base = resolved
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if logger != nil {
		r.Use(requestLogger(logger))
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		full, ok := resolvePath(base, req.URL.Path)
		if !ok {
			notFound(w, req)
			return
		}

		data, err := os.ReadFile(full)
		if err != nil || !utf8.Valid(data) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("500 Internal Server Error"))
			return
		}
		_, _ = w.Write(data)
	})
	return r
}

// resolvePath maps a URL path onto an existing filesystem path inside root.
// It reports false when the path does not exist or resolves outside root.
func resolvePath(root, urlPath string) (string, bool) {
	full := filepath.Join(root, filepath.FromSlash(path.Clean("/"+urlPath)))

	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		return "", false
	}
	if !within(root, resolved) {
		return "", false
	}
	return resolved, true
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("404 Not Found"))
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			begin := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("serve",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
			)
		})
	}
}
