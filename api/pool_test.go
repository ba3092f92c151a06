// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecore/validatorcore/coin"
	"github.com/stakecore/validatorcore/pool"
	"github.com/stakecore/validatorcore/staking"
	"github.com/stakecore/validatorcore/store"
	"github.com/stakecore/validatorcore/validatorconfig"
	"github.com/stakecore/validatorcore/validatorset"
)

var testPoolAddr = common.HexToAddress("0x0101010101010101010101010101010101010101")

func newTestPoolInterface(t *testing.T) (*PoolInterface, *pool.Store) {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pools := pool.NewStore(db)
	cfgs := validatorconfig.NewStore(db)
	set := validatorset.NewRegistry(db)
	core := &staking.Core{Set: set}

	return NewPoolInterface(pools, cfgs, core), pools
}

func TestGetPoolReturnsBalancesAndState(t *testing.T) {
	pi, pools := newTestPoolInterface(t)

	p := pool.New(testPoolAddr)
	mint := coin.NewMintAuthority[coin.StakeToken]()
	p.Active = coin.Mint(500, mint)
	require.NoError(t, pools.Create(testPoolAddr, p))

	view, err := pi.GetPool(testPoolAddr)
	require.NoError(t, err)
	assert.Equal(t, testPoolAddr, view.Address)
	assert.Equal(t, uint64(500), view.Active)
	assert.Equal(t, StateInactive, view.State)
	assert.Nil(t, view.Config)
}

func TestGetPoolMissingFails(t *testing.T) {
	pi, _ := newTestPoolInterface(t)
	_, err := pi.GetPool(testPoolAddr)
	assert.Error(t, err)
}

func TestGetEventsReturnsAppendedEvents(t *testing.T) {
	pi, pools := newTestPoolInterface(t)
	require.NoError(t, pools.Create(testPoolAddr, pool.New(testPoolAddr)))
	require.NoError(t, pools.Emit(testPoolAddr, pool.EventJoinValidatorSet, 0, 500, common.Address{}))

	events, err := pi.GetEvents(testPoolAddr, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(500), events[0].After)
}
