package summarizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPSummarizer(t *testing.T) {
	t.Run("returns remote summary", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"summary":"a short summary"}`))
		}))
		defer srv.Close()

		s := &HTTPSummarizer{endpoint: srv.URL, client: srv.Client()}
		got, err := s.Summarize(context.Background(), "long article body")
		assert.NoError(t, err)
		assert.Equal(t, "a short summary", got)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		s := &HTTPSummarizer{endpoint: srv.URL, client: srv.Client()}
		_, err := s.Summarize(context.Background(), "text")
		assert.Error(t, err)
	})

	t.Run("empty summary is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"summary":"  "}`))
		}))
		defer srv.Close()

		s := &HTTPSummarizer{endpoint: srv.URL, client: srv.Client()}
		_, err := s.Summarize(context.Background(), "text")
		assert.Error(t, err)
	})

	t.Run("missing endpoint is an error", func(t *testing.T) {
		s := &HTTPSummarizer{endpoint: "", client: http.DefaultClient}
		_, err := s.Summarize(context.Background(), "text")
		assert.Error(t, err)
	})
}

func TestFallback(t *testing.T) {
	t.Run("short text passes through normalized", func(t *testing.T) {
		assert.Equal(t, "a b c", Fallback("  a\n b \t c ", 100))
	})

	t.Run("long text is truncated with ellipsis", func(t *testing.T) {
		got := Fallback("one two three four five", 7)
		assert.Equal(t, "one two…", got)
	})
}
