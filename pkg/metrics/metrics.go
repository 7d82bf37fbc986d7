// Package metrics exports run statistics in the Prometheus text format so
// node_exporter's textfile collector can pick them up.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fanac/conlog/pkg/output"
)

const namespace = "conlog"

// Collector holds the gauges for one run.
type Collector struct {
	registry *prometheus.Registry

	eventsParsed   prometheus.Gauge
	eventsReported prometheus.Gauge
	linesRead      prometheus.Gauge
	pages          prometheus.Gauge
	bytes          prometheus.Gauge
	lastRun        prometheus.Gauge
	editorItems    *prometheus.GaugeVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		eventsParsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_parsed",
			Help:      "Add events found in the upload log.",
		}),
		eventsReported: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_reported",
			Help:      "Add events newer than the watermark.",
		}),
		linesRead: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lines_read",
			Help:      "Lines scanned in the upload log.",
		}),
		pages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pages_reported",
			Help:      "Pages uploaded since the watermark.",
		}),
		bytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bytes_reported",
			Help:      "Bytes uploaded since the watermark.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last report run.",
		}),
		editorItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "editor_items",
			Help:      "Items uploaded since the watermark, by editor.",
		}, []string{"editor"}),
	}

	c.registry.MustRegister(
		c.eventsParsed,
		c.eventsReported,
		c.linesRead,
		c.pages,
		c.bytes,
		c.lastRun,
		c.editorItems,
	)
	return c
}

// Observe records a report's numbers.
func (c *Collector) Observe(report *output.Report) {
	c.eventsParsed.Set(float64(report.Summary.EventsParsed))
	c.eventsReported.Set(float64(report.Summary.EventsReported))
	c.linesRead.Set(float64(report.Summary.LinesRead))
	c.pages.Set(float64(report.Summary.Pages))
	c.bytes.Set(float64(report.Summary.Bytes))
	c.lastRun.Set(float64(report.Metadata.Now.Unix()))

	c.editorItems.Reset()
	for _, e := range report.Editors {
		c.editorItems.WithLabelValues(e.Name).Set(float64(e.Items))
	}
}

// Gatherer exposes the registry.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile observes report and writes the metrics to path atomically.
func WriteTextfile(path string, report *output.Report) error {
	c := NewCollector()
	c.Observe(report)
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
