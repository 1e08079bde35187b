//go:build unit

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slot-swapper/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts proposals by outcome", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		c := metrics.NewCollector(reg)

		c.RecordProposal("created")
		c.RecordProposal("created")
		c.RecordProposal("slot_locked")

		expected := `
# HELP slotswapper_swap_proposals_total Swap proposals by outcome.
# TYPE slotswapper_swap_proposals_total counter
slotswapper_swap_proposals_total{outcome="created"} 2
slotswapper_swap_proposals_total{outcome="slot_locked"} 1
`
		err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "slotswapper_swap_proposals_total")
		assert.NoError(t, err)
	})

	t.Run("counts cache traffic by scope", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		c := metrics.NewCollector(reg)

		c.RecordCacheHit("offered")
		c.RecordCacheMiss("offered")
		c.RecordCacheMiss("offered")
		c.RecordCacheError("get")
		c.RecordInvalidation("slots")

		count, err := testutil.GatherAndCount(reg,
			"slotswapper_cache_hits_total",
			"slotswapper_cache_misses_total",
			"slotswapper_cache_errors_total",
			"slotswapper_cache_invalidations_total",
		)
		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("registering twice panics", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		metrics.NewCollector(reg)
		assert.Panics(t, func() { metrics.NewCollector(reg) })
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	c.RecordResponse("accepted")

	srv := httptest.NewServer(metrics.Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `slotswapper_swap_responses_total{outcome="accepted"} 1`)
}
