package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMetrics bridges the OpenTelemetry meter API onto the Prometheus
// registerer and returns the provider plus the /metrics handler. Instruments
// created through otel.Meter and collectors registered with promauto are
// served side by side.
func InitMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, fmt.Errorf("prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	return provider, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}), nil
}
