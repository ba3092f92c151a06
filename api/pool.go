// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/stakecore/validatorcore/coin"
	"github.com/stakecore/validatorcore/pool"
	"github.com/stakecore/validatorcore/staking"
	"github.com/stakecore/validatorcore/validatorconfig"
	"github.com/stakecore/validatorcore/validatorset"
)

// PoolInterface answers read-only queries over the StakePool store, the
// ValidatorConfig store and the derived membership state (spec §3, §4.3).
// It never calls into staking.Core's mutating entry points.
type PoolInterface struct {
	pools   *pool.Store
	configs *validatorconfig.Store
	core    *staking.Core
}

func NewPoolInterface(pools *pool.Store, configs *validatorconfig.Store, core *staking.Core) *PoolInterface {
	return &PoolInterface{pools: pools, configs: configs, core: core}
}

// GetPool returns the read-only projection of the pool at addr. The three
// backing reads (pool buckets, derived membership state, validator config)
// are independent store lookups, so they run concurrently via errgroup the
// way the same store backs both staking.Core and this read-side query
// surface without serializing reads that don't depend on each other.
func (pi *PoolInterface) GetPool(addr common.Address) (PoolView, error) {
	var (
		p      pool.StakePool
		state  validatorset.Status
		cfg    validatorconfig.ValidatorConfig
		hasCfg bool
	)

	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() (err error) {
		p, err = pi.pools.MustGet(addr)
		return err
	})
	g.Go(func() (err error) {
		state, err = pi.core.ValidatorState(addr)
		return err
	})
	g.Go(func() error {
		var err error
		cfg, hasCfg, err = pi.configs.Get(addr)
		return err
	})
	if err := g.Wait(); err != nil {
		return PoolView{}, err
	}

	view := PoolView{
		Address:         addr,
		Active:          coin.Value(p.Active),
		Inactive:        coin.Value(p.Inactive),
		PendingActive:   coin.Value(p.PendingActive),
		PendingInactive: coin.Value(p.PendingInactive),
		LockedUntilSecs: p.LockedUntilSecs,
		OperatorAddress: p.OperatorAddress,
		DelegatedVoter:  p.DelegatedVoter,
		State:           convertState(state),
	}
	if hasCfg {
		view.Config = convertConfig(cfg)
	}
	return view, nil
}

// GetEvents returns the events logged for addr from seq 'from' onward
// (spec §6 event stream).
func (pi *PoolInterface) GetEvents(addr common.Address, from uint64) ([]pool.Event, error) {
	if _, _, err := pi.pools.Get(addr); err != nil {
		return nil, err
	}
	return pi.pools.Events(addr, from)
}
