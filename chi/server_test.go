package chi_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/knowdoc"
	"github.com/fwojciec/knowdoc/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDocTree creates a small generated-doc tree:
//
//	alpha/all.html
//	alpha/struct.Foo.html
//	alpha/logo.bin (not UTF-8)
//	static.files/
func newDocTree(t *testing.T) knowdoc.DocTree {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "alpha"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "static.files"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha", "all.html"), []byte("<a href=\"struct.Foo.html\">Foo</a>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha", "struct.Foo.html"), []byte("<div id=\"main-content\">Foo</div>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha", "logo.bin"), []byte{0xff, 0xfe, 0xfd}, 0644))
	return knowdoc.DocTree(root)
}

func get(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	t.Parallel()

	t.Run("serves existing files with 200", func(t *testing.T) {
		t.Parallel()

		h := chi.NewHandler(newDocTree(t), nil)

		rec := get(t, h, http.MethodGet, "/alpha/struct.Foo.html")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `<div id="main-content">Foo</div>`, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/")
	})

	t.Run("responds 404 for missing files", func(t *testing.T) {
		t.Parallel()

		h := chi.NewHandler(newDocTree(t), nil)

		rec := get(t, h, http.MethodGet, "/alpha/missing.html")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "404 Not Found", rec.Body.String())
	})

	t.Run("responds 500 for paths that cannot be read as text", func(t *testing.T) {
		t.Parallel()

		h := chi.NewHandler(newDocTree(t), nil)

		assert.Equal(t, http.StatusInternalServerError, get(t, h, http.MethodGet, "/alpha/logo.bin").Code)
		assert.Equal(t, http.StatusInternalServerError, get(t, h, http.MethodGet, "/static.files/").Code)
	})

	t.Run("does not serve paths outside the tree", func(t *testing.T) {
		t.Parallel()

		parent := t.TempDir()
		root := filepath.Join(parent, "doc")
		require.NoError(t, os.MkdirAll(root, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("secret"), 0644))
		h := chi.NewHandler(knowdoc.DocTree(root), nil)

		rec := get(t, h, http.MethodGet, "/../secret.txt")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret")
	})

	t.Run("does not follow symlinks out of the tree", func(t *testing.T) {
		t.Parallel()

		outside := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("secret"), 0644))
		root := newDocTree(t)
		if err := os.Symlink(filepath.Join(outside, "secret.txt"), filepath.Join(string(root), "alpha", "link.txt")); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
		h := chi.NewHandler(root, nil)

		rec := get(t, h, http.MethodGet, "/alpha/link.txt")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("serves only GET", func(t *testing.T) {
		t.Parallel()

		h := chi.NewHandler(newDocTree(t), nil)

		rec := get(t, h, http.MethodPost, "/alpha/struct.Foo.html")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("logs requests when a logger is set", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		h := chi.NewHandler(newDocTree(t), logger)

		get(t, h, http.MethodGet, "/alpha/all.html")

		output := buf.String()
		assert.Contains(t, output, "serve")
		assert.Contains(t, output, "path=/alpha/all.html")
		assert.Contains(t, output, "status=200")
	})
}

func TestServer_Start(t *testing.T) {
	t.Parallel()

	t.Run("accepts connections as soon as Start returns", func(t *testing.T) {
		t.Parallel()

		s := chi.NewServer(chi.WithAddr("127.0.0.1:0"))
		baseURL, err := s.Start(newDocTree(t))
		require.NoError(t, err)
		defer s.Close()

		resp, err := http.Get(baseURL + "/alpha/all.html")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "struct.Foo.html")
	})

	t.Run("refuses to start twice", func(t *testing.T) {
		t.Parallel()

		s := chi.NewServer(chi.WithAddr("127.0.0.1:0"))
		_, err := s.Start(newDocTree(t))
		require.NoError(t, err)
		defer s.Close()

		_, err = s.Start(newDocTree(t))

		require.Error(t, err)
		assert.Equal(t, knowdoc.EINVALID, knowdoc.ErrorCode(err))
	})

	t.Run("fails when the address is taken", func(t *testing.T) {
		t.Parallel()

		first := chi.NewServer(chi.WithAddr("127.0.0.1:0"))
		baseURL, err := first.Start(newDocTree(t))
		require.NoError(t, err)
		defer first.Close()

		second := chi.NewServer(chi.WithAddr(baseURL[len("http://"):]))
		_, err = second.Start(newDocTree(t))

		require.Error(t, err)
	})

	t.Run("can be restarted after Close", func(t *testing.T) {
		t.Parallel()

		s := chi.NewServer(chi.WithAddr("127.0.0.1:0"))
		_, err := s.Start(newDocTree(t))
		require.NoError(t, err)
		require.NoError(t, s.Close())

		baseURL, err := s.Start(newDocTree(t))
		require.NoError(t, err)
		defer s.Close()

		resp, err := http.Get(baseURL + "/alpha/all.html")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("close without start is a no-op", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, chi.NewServer().Close())
	})
}
