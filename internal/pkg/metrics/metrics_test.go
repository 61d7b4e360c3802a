package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRPC("pah", "hub_getValues", time.Now(), nil)
	m.ObserveRPC("pah", "hub_getValues", time.Now(), errors.New("down"))
	m.ChainFailure("kusama", "balance")
	m.SetConnectedChains(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues("pah", "hub_getValues", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues("pah", "hub_getValues", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.chainFailures.WithLabelValues("kusama", "balance")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.connectedChains))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRPC("a", "b", time.Now(), nil)
		m.ChainFailure("a", "connect")
		m.SetConnectedChains(1)
	})
}
