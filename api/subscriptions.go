// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// pollInterval is how often the subscription pump re-checks a pool's
// event log for new entries. The append-only event store (pool.Store)
// has no native change-notification, so this mirrors thor's own
// subscriptions API only in shape (a websocket tailing an append-only
// log); the underlying mechanism here is polling rather than a
// chain-head pub/sub feed.
const pollInterval = time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// SubscriptionsHTTPPathPrefix is the mount point for the event-tail
// websocket feed.
const SubscriptionsHTTPPathPrefix = "/subscriptions"

// MountSubscriptions wires the subscriptions websocket endpoint onto router.
func (pi *PoolInterface) MountSubscriptions(router *mux.Router) {
	sub := router.PathPrefix(SubscriptionsHTTPPathPrefix).Subrouter()

	sub.Path("/events/{address}").
		Methods(http.MethodGet).
		Name("subscriptions_events").
		HandlerFunc(pi.handleSubscribeEvents)
}

func (pi *PoolInterface) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) {
	addr, err := parseAddress(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	from := uint64(0)
	if raw := req.URL.Query().Get("from"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid 'from' query parameter", http.StatusBadRequest)
			return
		}
		from = parsed
	}

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		logger.Debug("subscriptions: upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	pi.pumpEvents(conn, addr, from)
}

// pumpEvents polls the pool's event log for entries at or after next and
// writes each one as a JSON websocket text message, until the client
// disconnects or a write fails.
func (pi *PoolInterface) pumpEvents(conn *websocket.Conn, addr common.Address, next uint64) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for range ticker.C {
		events, err := pi.GetEvents(addr, next)
		if err != nil {
			logger.Debug("subscriptions: poll failed", "err", err)
			return
		}
		for _, ev := range events {
			if err := conn.WriteJSON(convertEvent(ev)); err != nil {
				return
			}
			next = ev.Seq + 1
		}
	}
}
