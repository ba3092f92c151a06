// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/stakecore/validatorcore/api/utils"
)

// PoolHTTPPathPrefix is the mount point for pool queries.
const PoolHTTPPathPrefix = "/pools"

// Mount wires PoolInterface's routes onto router under PoolHTTPPathPrefix.
func (pi *PoolInterface) Mount(router *mux.Router) {
	sub := router.PathPrefix(PoolHTTPPathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("pools_get").
		HandlerFunc(utils.WrapHandlerFunc(pi.handleGetPool))

	sub.Path("/{address}/events").
		Methods(http.MethodGet).
		Name("pools_get_events").
		HandlerFunc(utils.WrapHandlerFunc(pi.handleGetEvents))
}

func parseAddress(req *http.Request) (common.Address, error) {
	raw, ok := mux.Vars(req)["address"]
	if !ok || !common.IsHexAddress(raw) {
		return common.Address{}, errors.New("invalid address")
	}
	return common.HexToAddress(raw), nil
}

func (pi *PoolInterface) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return utils.BadRequest(err)
	}
	view, err := pi.GetPool(addr)
	if err != nil {
		return utils.FromErrKind(err)
	}
	return utils.WriteJSON(w, view)
}

func (pi *PoolInterface) handleGetEvents(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return utils.BadRequest(err)
	}

	from := uint64(0)
	if raw := req.URL.Query().Get("from"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.BadRequest(errors.New("invalid 'from' query parameter"))
		}
		from = parsed
	}

	events, err := pi.GetEvents(addr, from)
	if err != nil {
		return utils.FromErrKind(err)
	}
	return utils.WriteJSON(w, convertEvents(events))
}
