// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api is the read-only query surface over the validator staking
// core (SPEC_FULL §4.9): it exposes pool, validator-set and event-stream
// state over HTTP, plus a polling websocket tail of a pool's event log.
// It never drives a mutating operation — every handler here reads from
// the same stores staking.Core and epoch.Engine write to, never through
// them.
package api

import (
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/stakecore/validatorcore/pool"
	"github.com/stakecore/validatorcore/staking"
	"github.com/stakecore/validatorcore/validatorconfig"
	"github.com/stakecore/validatorcore/validatorset"
)

var logger = log.New("pkg", "api")

// Config controls the cross-cutting behavior of the query surface.
type Config struct {
	AllowedOrigins  string
	EnableReqLogger *atomic.Bool
	EnableMetrics   bool
}

// New wires every read-only handler onto a fresh router: /pools,
// /validators and /subscriptions/events, wrapped with CORS, gzip
// compression, request metrics and request logging — the same layering
// thor's own api.New applies to its accounts/blocks/transactions routes.
func New(
	pools *pool.Store,
	configs *validatorconfig.Store,
	set *validatorset.Registry,
	core *staking.Core,
	config Config,
) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(config.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	poolIface := NewPoolInterface(pools, configs, core)
	poolIface.Mount(router)
	poolIface.MountSubscriptions(router)

	NewValidatorSetInterface(set).Mount(router)

	if config.EnableMetrics {
		router.Use(MetricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	handler = RequestLoggerHandler(handler, logger, config.EnableReqLogger)

	return handler.ServeHTTP
}
