package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type mockResultRepo struct {
	mock.Mock
}

func (that *mockResultRepo) LoadAll(ctx context.Context) ([]entity.GameResult, error) {
	args := that.Called(ctx)

	results, _ := args.Get(0).([]entity.GameResult)
	return results, args.Error(1)
}

func newTestRouter(t *testing.T, repo *mockResultRepo) http.Handler {
	t.Helper()

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tictactoe_test_total",
		Help: "Test counter.",
	}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRouter(NewHandlers(logger, repo), registry)
}

func serve(handler http.Handler, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

	return recorder
}

func TestPing(t *testing.T) {
	recorder := serve(newTestRouter(t, &mockResultRepo{}), "/ping")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestHistoryHandler(t *testing.T) {
	t.Run("Returns results as JSON", func(t *testing.T) {
		// Given: two stored results
		repo := &mockResultRepo{}
		repo.On("LoadAll", mock.Anything).Return([]entity.GameResult{
			{PlayedAt: time.UnixMilli(1715941800000).UTC(), Outcome: "Player X won"},
			{PlayedAt: time.UnixMilli(1715941900000).UTC(), Outcome: entity.OutcomeTie},
		}, nil).Once()

		// When: requesting the history
		recorder := serve(newTestRouter(t, repo), "/history")

		// Then: both come back in order
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var body []map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, []map[string]string{
			{"played_at": "2024-05-17T10:30:00Z", "outcome": "Player X won"},
			{"played_at": "2024-05-17T10:31:40Z", "outcome": "Tie"},
		}, body)
		repo.AssertExpectations(t)
	})

	t.Run("Empty history is an empty array", func(t *testing.T) {
		repo := &mockResultRepo{}
		repo.On("LoadAll", mock.Anything).Return([]entity.GameResult{}, nil).Once()

		recorder := serve(newTestRouter(t, repo), "/history")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, "[]", recorder.Body.String())
	})

	t.Run("Storage failure is a server error", func(t *testing.T) {
		repo := &mockResultRepo{}
		repo.On("LoadAll", mock.Anything).Return(nil, errors.New("boom")).Once()

		recorder := serve(newTestRouter(t, repo), "/history")

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestMetricsRoute(t *testing.T) {
	recorder := serve(newTestRouter(t, &mockResultRepo{}), "/metrics")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "tictactoe_test_total 0")
}

func TestUnknownRoute(t *testing.T) {
	recorder := serve(newTestRouter(t, &mockResultRepo{}), "/game")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
