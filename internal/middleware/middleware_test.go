package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption-insights/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_EchoesChiID(t *testing.T) {
	h := chimw.RequestID(RequestID(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(HeaderRequestID))
}

func TestLogging_LevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Warn, Format: logger.FormatJSON, Output: &buf})

	ok := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Zero(t, buf.Len(), "2xx se loguea en debug")

	notFound := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	notFound.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/9/engagement", nil))

	require.NotZero(t, buf.Len())
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"path":"/users/9/engagement"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
