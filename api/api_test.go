// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecore/validatorcore/coin"
	"github.com/stakecore/validatorcore/pool"
	"github.com/stakecore/validatorcore/staking"
	"github.com/stakecore/validatorcore/store"
	"github.com/stakecore/validatorcore/validatorconfig"
	"github.com/stakecore/validatorcore/validatorset"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pools := pool.NewStore(db)
	cfgs := validatorconfig.NewStore(db)
	set := validatorset.NewRegistry(db)
	core := &staking.Core{Set: set}

	p := pool.New(testPoolAddr)
	p.Active = coin.Mint(42, coin.NewMintAuthority[coin.StakeToken]())
	require.NoError(t, pools.Create(testPoolAddr, p))

	handler := New(pools, cfgs, set, core, Config{AllowedOrigins: "*"})
	return httptest.NewServer(handler)
}

func TestGetPoolEndpointReturnsJSON(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/pools/" + testPoolAddr.Hex())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var view PoolView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, uint64(42), view.Active)
}

func TestGetPoolEndpointMissingReturns404(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/pools/0x0303030303030303030303030303030303030303")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPoolEndpointInvalidAddressReturns400(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/pools/not-an-address")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetValidatorSetEndpoint(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/validators")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var view ValidatorSetView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Empty(t, view.Active)
}
