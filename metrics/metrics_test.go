// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	metricFamilies, err := Gatherer().Gather()
	require.NoError(t, err)

	families := make(map[string]*dto.MetricFamily)
	for _, mf := range metricFamilies {
		families[mf.GetName()] = mf
	}
	return families
}

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	CounterVec("count1", []string{"kind"}).AddWithLabel(1, map[string]string{"kind": "stack"})
	Gauge("gauge1").Set(3)
	HistogramVec("hist1", []string{"zeroOrOne"}, nil).
		ObserveWithLabels(1, map[string]string{"thisIsNonsense": "butDoesntBreak"})

	require.Empty(t, gather(t))
	require.NoError(t, WriteTextfile(filepath.Join(t.TempDir(), "noop.prom")))
}

func TestPromMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()
	InitializePrometheusMetrics()
	t.Cleanup(func() { metrics = defaultNoopMetrics() })

	countVec := CounterVec("countVec1", []string{"zeroOrOne"})
	gauge := Gauge("gauge1")

	totalCountVec := 0
	for i, n := 0, rand.Intn(100)+2; i < n; i++ {
		countVec.AddWithLabel(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		totalCountVec += i
	}

	histTotal := 0
	for i, n := 0, rand.Intn(100)+2; i < n; i++ {
		HistogramVec("hist2", []string{"zeroOrOne"}, BucketHTTPReqs).
			ObserveWithLabels(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		histTotal += i
	}
	gauge.Set(7)
	Gauge("gauge1").Add(1)

	families := gather(t)

	sumCountVec := families["pox_stacker_countVec1"].Metric[0].GetCounter().GetValue() +
		families["pox_stacker_countVec1"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(totalCountVec), sumCountVec)

	sumHistVec := families["pox_stacker_hist2"].Metric[0].GetHistogram().GetSampleSum() +
		families["pox_stacker_hist2"].Metric[1].GetHistogram().GetSampleSum()
	require.Equal(t, float64(histTotal), sumHistVec)

	require.Equal(t, float64(8), families["pox_stacker_gauge1"].Metric[0].GetGauge().GetValue())

	// the dedicated registry carries no runtime collectors
	for name := range families {
		require.Regexp(t, "^pox_stacker_", name)
	}

	path := filepath.Join(t.TempDir(), "stacker.prom")
	require.NoError(t, WriteTextfile(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "pox_stacker_gauge1 8")
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()
	t.Cleanup(func() { metrics = defaultNoopMetrics() })

	for _, a := range []any{
		Gauge("noopGauge"),
		CounterVec("noopCounter", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	// after initialization, newly created metrics become of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}

func TestWriteTextfileError(t *testing.T) {
	require.Error(t, WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom")))
}
