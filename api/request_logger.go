// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// RequestLoggerHandler wraps handler so every request is logged through
// logger, toggleable at runtime via enabled (nil means always on).
func RequestLoggerHandler(handler http.Handler, logger log.Logger, enabled *atomic.Bool) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if enabled != nil && !enabled.Load() {
			handler.ServeHTTP(w, r)
			return
		}

		var bodyBytes []byte
		var err error
		if r.Body != nil {
			bodyBytes, err = io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("unexpected body read error", "err", err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		logger.Info("api request",
			"timestamp", time.Now().Unix(),
			"uri", r.URL.String(),
			"method", r.Method,
		)

		handler.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
