package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentPreservesFlusher(t *testing.T) {
	mux := http.NewServeMux()
	var sawFlusher bool
	mux.HandleFunc("GET /stream", func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		sawFlusher = ok
		if ok {
			w.WriteHeader(http.StatusOK)
			f.Flush()
		}
	})

	rec := httptest.NewRecorder()
	instrument(mux).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))

	require.True(t, sawFlusher)
	assert.True(t, rec.Flushed)
}
