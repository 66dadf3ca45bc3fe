package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrsl/wfx/pkg/score"
)

func analysis(t *testing.T, text string) *score.Analysis {
	t.Helper()
	p, err := score.LoadProfile(score.ProfileWeighted, "")
	require.NoError(t, err)
	a, err := p.Analyze(text)
	require.NoError(t, err)
	return a
}

func TestObserveAnalysis(t *testing.T) {
	m := New()

	m.ObserveAnalysis(analysis(t, "knowledge management system for documentation with RAG search"), time.Millisecond)
	m.ObserveAnalysis(analysis(t, "agent"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyses.WithLabelValues("weighted", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recommended.WithLabelValues("Archon-main")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.recommended))
	assert.Equal(t, 1, testutil.CollectAndCount(m.topMatch))
}

func TestObserveRejected(t *testing.T) {
	m := New()
	m.ObserveRejected("coarse")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues("coarse", OutcomeRejected)))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRejected("weighted")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `wfx_analyses_total{outcome="rejected",profile="weighted"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
