package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMetrics initializes the Prometheus-backed meter provider and returns it
// together with the HTTP handler for the /metrics endpoint.
func InitMetrics() (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return provider, promhttp.Handler(), nil
}

// AnalysisMetrics carries the engine's instruments: run counts by risk level,
// run duration, and skipped-check counts by category.
type AnalysisMetrics struct {
	analyses metric.Int64Counter
	duration metric.Float64Histogram
	skipped  metric.Int64Counter
}

// NewAnalysisMetrics registers the engine instruments on a meter provider.
func NewAnalysisMetrics(provider *sdkmetric.MeterProvider) (*AnalysisMetrics, error) {
	meter := provider.Meter("redflags/engine")

	analyses, err := meter.Int64Counter("redflags_analyses_total",
		metric.WithDescription("Completed report analyses by risk level"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("redflags_analysis_duration_seconds",
		metric.WithDescription("End-to-end analysis pipeline duration"))
	if err != nil {
		return nil, err
	}
	skipped, err := meter.Int64Counter("redflags_checks_skipped_total",
		metric.WithDescription("Checks skipped for missing data or classifier failure, by category"))
	if err != nil {
		return nil, err
	}

	return &AnalysisMetrics{analyses: analyses, duration: duration, skipped: skipped}, nil
}

// RecordAnalysis records one completed analysis.
func (m *AnalysisMetrics) RecordAnalysis(ctx context.Context, riskLevel string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analyses.Add(ctx, 1, metric.WithAttributes(attribute.String("risk_level", riskLevel)))
	m.duration.Record(ctx, elapsed.Seconds())
}

// RecordSkipped records skipped checks for a category.
func (m *AnalysisMetrics) RecordSkipped(ctx context.Context, category string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.skipped.Add(ctx, int64(count), metric.WithAttributes(attribute.String("category", category)))
}
