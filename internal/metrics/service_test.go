package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncMatchesRecorded()
	s.IncScoresRecomputed(5)
	s.AddPromotions(2)
	s.AddDemotions(2)
	s.IncTransitionErrors()
	s.ObserveLadderRunDuration(0.02)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.MatchesRecorded))
	assert.Equal(t, 5.0, testutil.ToFloat64(s.ScoresRecomputed))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.Promotions))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.TransitionErrors))

	rr := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ladder_promotions_total 2")
	assert.Contains(t, string(body), "ladder_run_duration_seconds_count 1")
}
