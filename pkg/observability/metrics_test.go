package observability_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/nodegraph/pkg/collection"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/effect"
	"github.com/aretw0/nodegraph/pkg/observability"
	"github.com/aretw0/nodegraph/pkg/restore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	c := collection.New(collection.WithHooks(m.Hooks()))

	read := effect.New("fr.inria.built-in.Read", "Read1")
	blur := effect.New("net.sf.cimg.CImgBlur", "Blur1")
	c.AddNode(read)
	c.AddNode(blur)
	c.RemoveNode(blur)
	c.ClearNodes(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodesAdded.WithLabelValues("fr.inria.built-in.Read")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodesAdded.WithLabelValues("net.sf.cimg.CImgBlur")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodesRemoved.WithLabelValues("net.sf.cimg.CImgBlur")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Clears.WithLabelValues(domain.TopLevelLabel)))
}

func TestMetrics_Restore(t *testing.T) {
	m := observability.NewMetrics()

	m.ObserveAnomaly(restore.Anomaly{Kind: restore.AnomalyPluginNotFound})
	m.ObserveAnomaly(restore.Anomaly{Kind: restore.AnomalyPluginNotFound})
	m.ObserveAnomaly(restore.Anomaly{Kind: restore.AnomalyUnresolvedLink})

	start := time.Now()
	m.ObserveRestore(&restore.Result{}, nil, start)
	m.ObserveRestore(&restore.Result{Anomalies: []restore.Anomaly{{Kind: restore.AnomalyCreateFailed}}}, nil, start)
	m.ObserveRestore(nil, context.Canceled, start)
	m.ObserveRestore(nil, errors.New("boom"), start)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Anomalies.WithLabelValues("plugin_not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Anomalies.WithLabelValues("unresolved_link")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Restores.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Restores.WithLabelValues("degraded")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Restores.WithLabelValues("error")))

	expected := `
# HELP nodegraph_restore_anomalies_total Problems met while restoring graphs
# TYPE nodegraph_restore_anomalies_total counter
nodegraph_restore_anomalies_total{kind="plugin_not_found"} 2
nodegraph_restore_anomalies_total{kind="unresolved_link"} 1
`
	err := testutil.GatherAndCompare(m.Gatherer(), strings.NewReader(expected), "nodegraph_restore_anomalies_total")
	assert.NoError(t, err)
}

func TestMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(observability.WithRegistry(reg))

	assert.Panics(t, func() {
		observability.NewMetrics(observability.WithRegistry(reg))
	}, "registering twice on one registry must fail loudly")

	// A private registry never collides.
	assert.NotPanics(t, func() {
		observability.NewMetrics()
		observability.NewMetrics()
	})
}
