package web

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_RespondJSON(t *testing.T) {
	testCases := []struct {
		name         string
		status       int
		payload      any
		expectedCode int
		expectedBody string
		expectedType string
	}{
		{
			name:         "object payload",
			status:       http.StatusOK,
			payload:      map[string]int{"id": 1},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1}`,
			expectedType: contentTypeJSON,
		},
		{
			name:         "nil payload",
			status:       http.StatusNoContent,
			payload:      nil,
			expectedCode: http.StatusNoContent,
			expectedBody: "",
			expectedType: "",
		},
		{
			name:         "unencodable payload",
			status:       http.StatusOK,
			payload:      math.Inf(1),
			expectedCode: http.StatusInternalServerError,
			expectedBody: "Internal Server Error\n",
			expectedType: "text/plain; charset=utf-8",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			rr := httptest.NewRecorder()
			// when
			RespondJSON(rr, discardLogger(), tc.status, tc.payload)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.Equal(t, tc.expectedBody, rr.Body.String())
			assert.Equal(t, tc.expectedType, rr.Header().Get("Content-Type"))
		})
	}
}

func Test_RespondText(t *testing.T) {
	// given
	rr := httptest.NewRecorder()

	// when
	RespondText(rr, http.StatusNotFound, "Product not found")

	// then
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Product not found", rr.Body.String())
	assert.Equal(t, contentTypeText, rr.Header().Get("Content-Type"))
}

func Test_PathInt64(t *testing.T) {
	testCases := []struct {
		name      string
		value     string
		expected  int64
		expectErr bool
	}{
		{name: "number", value: "42", expected: 42},
		{name: "negative", value: "-7", expected: -7},
		{name: "letters", value: "abc", expectErr: true},
		{name: "empty", value: "", expectErr: true},
		{name: "decimal", value: "1.5", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.SetPathValue("id", tc.value)

			got, err := PathInt64(req, "id")

			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func Test_RequestIDInjector(t *testing.T) {
	var seen string
	handler := RequestIDInjector(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = middleware.GetReqID(r.Context())
	}))

	t.Run("generates id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
	})

	t.Run("reuses incoming id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		handler.ServeHTTP(rr, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
	})
}

func Test_Recoverer(t *testing.T) {
	// given
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := Recoverer(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	// when
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	// then
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), "Panic recovered")
}

func Test_StructuredLogger(t *testing.T) {
	// given
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	// when
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products", nil))

	// then
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/api/products"`)
}
