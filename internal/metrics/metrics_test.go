package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/replant/internal/core"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestSessionsGauge(t *testing.T) {
	m := New()
	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()

	out := scrape(t, m)
	assert.Contains(t, out, "replant_sessions_active 1")
	assert.Contains(t, out, "replant_sessions_total 2")
}

func TestLevelCleared(t *testing.T) {
	m := New()
	m.LevelCleared(core.ClearedLevel{PackID: "classic", Moves: 10, Pushes: 4, Duration: 12 * time.Second})
	m.LevelCleared(core.ClearedLevel{PackID: "classic", Moves: 2, Pushes: 1, Duration: 3 * time.Second})

	out := scrape(t, m)
	assert.Contains(t, out, `replant_levels_cleared_total{pack="classic"} 2`)
	assert.Contains(t, out, `replant_moves_total{pack="classic"} 12`)
	assert.Contains(t, out, `replant_pushes_total{pack="classic"} 5`)
	assert.Contains(t, out, `replant_level_duration_seconds_count{pack="classic"} 2`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionStarted()
		m.SessionEnded()
		m.LevelCleared(core.ClearedLevel{PackID: "classic"})
	})
}

func TestHandlerServesTextFormat(t *testing.T) {
	m := New()
	out := scrape(t, m)
	assert.True(t, strings.Contains(out, "# HELP replant_sessions_active"))
}
