package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveInterpolation(t *testing.T) {
	before := testutil.ToFloat64(InterpolationsTotal.WithLabelValues("SDS", "ok"))

	ObserveInterpolation("SDS", "ok", 3*time.Millisecond)
	ObserveInterpolation("SDS", "ok", time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(InterpolationsTotal.WithLabelValues("SDS", "ok")))
}

func TestHandler(t *testing.T) {
	ReferencePoints.Set(42)
	ObserveInterpolation("SD1", "missing", time.Microsecond)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "seismic_reference_points 42")
	assert.Contains(t, string(body), `seismic_interpolations_total{outcome="missing",prefix="SD1"}`)
	assert.Contains(t, string(body), "seismic_interpolation_duration_seconds_bucket")
}
