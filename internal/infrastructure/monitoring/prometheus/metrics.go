package prometheus

import (
	"time"
)

// MCSMetrics holds the metrics of comparison and reaction analysis.
type MCSMetrics struct {
	SearchesTotal        CounterVec
	SearchTruncatedTotal CounterVec
	SearchDuration       HistogramVec
	CompatGraphNodes     HistogramVec
	MappingSize          HistogramVec
	BondChangesTotal     CounterVec
	BatchPairsTotal      CounterVec
	HTTPRequestsTotal    CounterVec
	HTTPRequestDuration  HistogramVec
	ErrorsTotal          CounterVec
}

// Default Buckets
var (
	DefaultSearchDurationBuckets = []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5}
	DefaultGraphSizeBuckets      = []float64{1, 10, 50, 100, 500, 1000, 5000, 10000}
	DefaultMappingSizeBuckets    = []float64{0, 1, 2, 5, 10, 20, 50, 100}
	DefaultHTTPDurationBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
)

// NewMCSMetrics registers every metric on collector.
func NewMCSMetrics(collector MetricsCollector) *MCSMetrics {
	return &MCSMetrics{
		SearchesTotal: collector.RegisterCounter("searches_total",
			"Comparisons run, by requested algorithm and the strategy that answered.", "algorithm", "strategy"),
		SearchTruncatedTotal: collector.RegisterCounter("search_truncated_total",
			"Comparisons whose search ran out of iteration budget.", "algorithm"),
		SearchDuration: collector.RegisterHistogram("search_duration_seconds",
			"Wall time of one comparison.", DefaultSearchDurationBuckets, "strategy"),
		CompatGraphNodes: collector.RegisterHistogram("compat_graph_nodes",
			"Nodes of the compatibility graph built per comparison.", DefaultGraphSizeBuckets),
		MappingSize: collector.RegisterHistogram("mapping_size",
			"Atoms in the best mapping per comparison.", DefaultMappingSizeBuckets),
		BondChangesTotal: collector.RegisterCounter("bond_changes_total",
			"Bond changes classified in analysed reactions.", "kind"),
		BatchPairsTotal: collector.RegisterCounter("batch_pairs_total",
			"Batch pairs by outcome.", "outcome"),
		HTTPRequestsTotal: collector.RegisterCounter("http_requests_total",
			"HTTP requests by route and status.", "method", "route", "status"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds",
			"HTTP request latency.", DefaultHTTPDurationBuckets, "method", "route"),
		ErrorsTotal: collector.RegisterCounter("errors_total",
			"Errors by component and error code.", "component", "error_type"),
	}
}

// NewNoopMCSMetrics returns metrics that discard every update.
func NewNoopMCSMetrics() *MCSMetrics {
	return NewMCSMetrics(NewNoopCollector())
}

// RecordSearch records one finished comparison.
func RecordSearch(m *MCSMetrics, algorithm, strategy string, truncated bool, graphNodes, mapped int, duration time.Duration) {
	m.SearchesTotal.WithLabelValues(algorithm, strategy).Inc()
	if truncated {
		m.SearchTruncatedTotal.WithLabelValues(algorithm).Inc()
	}
	m.SearchDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if graphNodes > 0 {
		m.CompatGraphNodes.WithLabelValues().Observe(float64(graphNodes))
	}
	m.MappingSize.WithLabelValues().Observe(float64(mapped))
}

// RecordBondChanges adds count changes of kind.
func RecordBondChanges(m *MCSMetrics, kind string, count int) {
	if count > 0 {
		m.BondChangesTotal.WithLabelValues(kind).Add(float64(count))
	}
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(m *MCSMetrics, method, route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordError counts an error of a component.
func RecordError(m *MCSMetrics, component, errorType string) {
	m.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

//Personal.AI order the ending
