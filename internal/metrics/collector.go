package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "smarthaul"

// Collector exposes a Registry to Prometheus. Host gauges are left to the
// process collector so scrapes never block on the OS.
type Collector struct {
	registry *Registry

	calls       *prometheus.Desc
	avgResponse *prometheus.Desc
	errorRate   *prometheus.Desc
	queries     *prometheus.Desc
	cacheHits   *prometheus.Desc
	cacheMisses *prometheus.Desc
	uptime      *prometheus.Desc
}

func NewCollector(r *Registry) *Collector {
	return &Collector{
		registry: r,
		calls: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "api", "calls_total"),
			"Total number of API calls handled.", nil, nil),
		avgResponse: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "api", "avg_response_seconds"),
			"Running mean of API response time in seconds.", nil, nil),
		errorRate: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "api", "error_rate"),
			"Share of API calls answered with status >= 400.", nil, nil),
		queries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "db", "queries_total"),
			"Total number of database queries issued.", nil, nil),
		cacheHits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hits_total"),
			"Total number of cache hits.", nil, nil),
		cacheMisses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "misses_total"),
			"Total number of cache misses.", nil, nil),
		uptime: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "uptime_seconds"),
			"Seconds since the metrics registry was created.", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.calls
	ch <- c.avgResponse
	ch <- c.errorRate
	ch <- c.queries
	ch <- c.cacheHits
	ch <- c.cacheMisses
	ch <- c.uptime
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.registry.Counters()
	ch <- prometheus.MustNewConstMetric(c.calls, prometheus.CounterValue, float64(s.Calls))
	ch <- prometheus.MustNewConstMetric(c.avgResponse, prometheus.GaugeValue, s.AvgResponseTime)
	ch <- prometheus.MustNewConstMetric(c.errorRate, prometheus.GaugeValue, s.ErrorRate)
	ch <- prometheus.MustNewConstMetric(c.queries, prometheus.CounterValue, float64(s.Queries))
	ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(s.CacheHits))
	ch <- prometheus.MustNewConstMetric(c.cacheMisses, prometheus.CounterValue, float64(s.CacheMisses))
	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, s.Uptime.Seconds())
}
