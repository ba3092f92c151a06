// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/stakecore/validatorcore/metrics"
)

var (
	metricHTTPReqCounter       = metrics.LazyLoadCounterVec("api_request_count", []string{"name", "code", "method"})
	metricHTTPReqDuration      = metrics.LazyLoadHistogramVec("api_duration_ms", []string{"name", "code", "method"}, nil)
	metricActiveWebsocketGauge = metrics.LazyLoadGaugeVec("api_active_websocket_gauge", []string{"name"})
)

// metricsResponseWriter wraps http.ResponseWriter to capture the status
// code, while still forwarding Hijack so the websocket subscription
// endpoint (api/subscriptions.go) can still hijack the connection through
// this middleware.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{w, http.StatusOK}
}

func (m *metricsResponseWriter) WriteHeader(code int) {
	m.statusCode = code
	m.ResponseWriter.WriteHeader(code)
}

// Hijack lets the caller take over the connection. After a call to
// Hijack the HTTP server library will not do anything else with the
// connection; it becomes the caller's responsibility to manage and close
// it.
func (m *metricsResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := m.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return h.Hijack()
}

// MetricsMiddleware records a request counter/duration for every named
// route, treating the subscriptions_events route as a long-lived
// websocket (tracked via a gauge) rather than a one-shot request/duration
// pair.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rt := mux.CurrentRoute(r)

		name := ""
		if rt != nil {
			name = rt.GetName()
		}
		isSocket := name == "subscriptions_events"

		if isSocket {
			metricActiveWebsocketGauge().AddWithLabel(1, map[string]string{"name": name})
			next.ServeHTTP(w, r)
			metricActiveWebsocketGauge().AddWithLabel(-1, map[string]string{"name": name})
			return
		}

		now := time.Now()
		mrw := newMetricsResponseWriter(w)
		next.ServeHTTP(mrw, r)

		if name != "" {
			code := strconv.Itoa(mrw.statusCode)
			metricHTTPReqCounter().AddWithLabel(1, map[string]string{"name": name, "code": code, "method": r.Method})
			metricHTTPReqDuration().ObserveWithLabels(time.Since(now).Milliseconds(), map[string]string{"name": name, "code": code, "method": r.Method})
		}
	})
}
