package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordSignal("BTC", "fallback")
	r.RecordSignal("BTC", "fallback")
	r.RecordUpstreamError("chat", "timeout")
	r.RecordProxyRequest(401)
	r.ObserveUpstream("price", 120*time.Millisecond)
	r.ObserveFieldsExtracted(5)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.signalsTotal.WithLabelValues("BTC", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.upstreamErrors.WithLabelValues("chat", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.proxyRequests.WithLabelValues("401")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["traxor_upstream_duration_seconds"])
	assert.True(t, names["traxor_parser_fields_extracted"])
}

func TestRegisteringTwiceOnOneRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
