package http

import (
	"net/http"
)

// MetricsHandler serves the Prometheus scrape endpoint
type MetricsHandler struct {
	prometheus http.Handler
}

// NewMetricsHandler wraps the exporter's handler. A nil handler means
// metrics are disabled and the endpoint answers 404.
func NewMetricsHandler(prometheus http.Handler) *MetricsHandler {
	return &MetricsHandler{prometheus: prometheus}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.prometheus == nil {
		http.Error(w, "metrics disabled", http.StatusNotFound)
		return
	}
	h.prometheus.ServeHTTP(w, r)
}
