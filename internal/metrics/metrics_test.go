package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-registry-api/internal/model"
)

type fakeStats struct {
	stats model.TaskStats
	err   error
}

func (f fakeStats) Stats(ctx context.Context) (model.TaskStats, error) {
	return f.stats, f.err
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_TaskGauges(t *testing.T) {
	m := New("test", fakeStats{stats: model.TaskStats{Total: 3, Completed: 1}})

	body := scrape(t, m)

	assert.Contains(t, body, "test_tasks_stored 3")
	assert.Contains(t, body, "test_tasks_completed 1")
	assert.Contains(t, body, "go_goroutines")

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "test_tasks_stored")
	assert.Contains(t, names, "test_tasks_completed")
}

func TestMetrics_TaskGaugesOnError(t *testing.T) {
	m := New("test", fakeStats{err: errors.New("boom")})

	assert.Contains(t, scrape(t, m), "test_tasks_stored 0")
}

func TestMetrics_Middleware(t *testing.T) {
	m := New("test", nil)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/tasks/{task_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/tasks/1", "/tasks/2", "/"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	body := scrape(t, m)
	assert.Contains(t, body, `test_http_requests_total{method="GET",route="/tasks/{task_id}",status="404"} 2`)
	assert.Contains(t, body, `test_http_requests_total{method="GET",route="/",status="200"} 1`)
	assert.Contains(t, body, `test_http_request_duration_seconds_count{method="GET",route="/"} 1`)
	assert.NotContains(t, body, "test_tasks_stored")
}
