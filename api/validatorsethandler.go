// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stakecore/validatorcore/api/utils"
)

// ValidatorSetHTTPPathPrefix is the mount point for validator-set queries.
const ValidatorSetHTTPPathPrefix = "/validators"

// Mount wires ValidatorSetInterface's routes onto router under
// ValidatorSetHTTPPathPrefix.
func (vi *ValidatorSetInterface) Mount(router *mux.Router) {
	sub := router.PathPrefix(ValidatorSetHTTPPathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("validators_get_set").
		HandlerFunc(utils.WrapHandlerFunc(vi.handleGetValidatorSet))
}

func (vi *ValidatorSetInterface) handleGetValidatorSet(w http.ResponseWriter, _ *http.Request) error {
	view, err := vi.GetValidatorSet()
	if err != nil {
		return utils.FromErrKind(err)
	}
	return utils.WriteJSON(w, view)
}
