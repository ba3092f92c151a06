// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package epoch implements the on_new_epoch procedure (spec §4.4): the
// single privileged, never-aborting entry point that distributes
// rewards, promotes/releases stake buckets, reconciles set membership,
// rebuilds the active set and its indices, and auto-renews lockups.
//
// The ordering below follows spec §9's resolution of the source's Open
// Question literally: for each pool (processed across active_validators
// then pending_inactive, in that order) rewards are distributed, then
// pending_active is promoted into active, then any expired
// pending_inactive is released into inactive — all three as one per-pool
// pass — before set reconciliation, index rebuild and the final,
// separate lockup auto-renew loop run.
package epoch

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/stakecore/validatorcore/coin"
	"github.com/stakecore/validatorcore/metrics"
	"github.com/stakecore/validatorcore/oracle"
	"github.com/stakecore/validatorcore/pool"
	"github.com/stakecore/validatorcore/rewards"
	"github.com/stakecore/validatorcore/stakeconfig"
	"github.com/stakecore/validatorcore/validatorconfig"
	"github.com/stakecore/validatorcore/validatorset"
)

var logger = log.New("pkg", "epoch")

var (
	epochTransitionsTotal = metrics.LazyLoadCounter("epoch_transitions_total")
	rewardsMintedTotal    = metrics.LazyLoadCounter("epoch_rewards_minted_total")
	activeSetSizeGauge    = metrics.LazyLoadGauge("epoch_active_set_size")
	promotedPoolsTotal    = metrics.LazyLoadCounter("epoch_promoted_pools_total")
	releasedPoolsTotal    = metrics.LazyLoadCounter("epoch_released_pools_total")
)

// Engine wires together every store the epoch transition touches.
type Engine struct {
	Pools         *pool.Store
	Configs       *validatorconfig.Store
	Set           *validatorset.Registry
	ConfigProv    stakeconfig.Provider
	Clock         oracle.Clock
	MintAuthority coin.MintAuthority[coin.StakeToken]
}

// Stats summarizes what one on_new_epoch call did, mainly for metrics
// and logging — it carries no control-flow meaning.
type Stats struct {
	RewardsMinted   uint64
	PromotedPools   int
	ReleasedPools   int
	ActiveSetBefore int
	ActiveSetAfter  int
}

// OnNewEpoch performs the full epoch transition. It must never abort: any
// internal inconsistency is handled defensively (missing config falls
// back to zero rewards, out-of-range indices are skipped) rather than
// propagated as a fatal error. The only errors this can return come from
// the underlying store's I/O, which spec §5's "structurally unreachable"
// framing assumes does not happen in a healthy deployment.
func (e *Engine) OnNewEpoch() (Stats, error) {
	now := e.Clock.NowSeconds()
	cfg, err := e.ConfigProv.Get()
	cfgOK := err == nil
	if !cfgOK {
		// The config provider is an external collaborator; if it is
		// unreachable we skip reward distribution and lockup changes
		// entirely rather than abort the epoch tick. Set reconciliation
		// and index rebuild still proceed below, the rebuild with a zero
		// min_stake so that no row is dropped.
		logger.Info("epoch: config provider unavailable, skipping reward/lockup steps", "err", err)
	}

	var stats Stats
	err2 := e.Set.WithBoth(func(set *validatorset.Set, perf *validatorset.PerformanceSet) error {
		stats.ActiveSetBefore = len(set.Active)

		if err := e.distributePromoteRelease(set, perf, now, cfg, &stats); err != nil {
			return err
		}

		e.reconcileMembership(set)

		if err := e.rebuildActiveSetAndIndices(set, perf, cfg); err != nil {
			return err
		}

		if cfgOK {
			e.autoRenewLockups(set, now, cfg)
		}

		stats.ActiveSetAfter = len(set.Active)
		return nil
	})
	if err2 != nil {
		return stats, err2
	}

	epochTransitionsTotal().Add(1)
	rewardsMintedTotal().Add(int64(stats.RewardsMinted))
	promotedPoolsTotal().Add(int64(stats.PromotedPools))
	releasedPoolsTotal().Add(int64(stats.ReleasedPools))
	activeSetSizeGauge().Add(int64(stats.ActiveSetAfter) - int64(stats.ActiveSetBefore))

	logger.Info("epoch transition complete",
		"activeBefore", stats.ActiveSetBefore,
		"activeAfter", stats.ActiveSetAfter,
		"promoted", stats.PromotedPools,
		"released", stats.ReleasedPools,
		"minted", stats.RewardsMinted,
	)
	return stats, nil
}

// distributePromoteRelease is epoch steps 1-3 of spec §4.4, fused into a
// single per-pool pass over active_validators ∪ pending_inactive (in that
// order, not interleaved).
func (e *Engine) distributePromoteRelease(
	set *validatorset.Set,
	perf *validatorset.PerformanceSet,
	now uint64,
	cfg stakeconfig.StakingConfig,
	stats *Stats,
) error {
	process := func(addr common.Address) error {
		p, err := e.Pools.MustGet(addr)
		if err != nil {
			// A membership row with no backing pool would be a store
			// corruption bug, not a user-triggerable condition; skip it
			// defensively rather than aborting the whole epoch.
			logger.Error("epoch: active/pending-inactive pool missing from store", "addr", addr, "err", err)
			return nil
		}

		if cfg.RewardRateDenominator != 0 || cfg.RewardRate != 0 {
			vcfg, _, err := e.Configs.Get(addr)
			if err == nil {
				success, total := performanceFor(perf, vcfg.ValidatorIndex)
				minted, err := rewards.Distribute(&p.Active, e.MintAuthority, success, total, cfg.RewardRate, cfg.RewardRateDenominator)
				if err == nil {
					stats.RewardsMinted += minted
					if minted > 0 {
						e.emit(addr, pool.EventDistributeRewards, 0, minted, common.Address{})
					}
				}
				minted2, err := rewards.Distribute(&p.PendingInactive, e.MintAuthority, success, total, cfg.RewardRate, cfg.RewardRateDenominator)
				if err == nil {
					stats.RewardsMinted += minted2
					if minted2 > 0 {
						e.emit(addr, pool.EventDistributeRewards, 0, minted2, common.Address{})
					}
				}
			}
		}

		if pool_value(p.PendingActive) > 0 {
			_ = p.PromotePendingActive()
			stats.PromotedPools++
		}

		before := pool_value(p.PendingInactive)
		_ = p.ReleaseExpiredPendingInactive(now)
		if before > 0 && pool_value(p.PendingInactive) == 0 {
			stats.ReleasedPools++
		}

		return e.Pools.Set(addr, p)
	}

	for _, v := range set.Active {
		if err := process(v.Addr); err != nil {
			return err
		}
	}
	for _, v := range set.PendingInactive {
		if err := process(v.Addr); err != nil {
			return err
		}
	}
	return nil
}

// reconcileMembership is epoch step 4: append pending_active to
// active_validators and clear both pending queues.
func (e *Engine) reconcileMembership(set *validatorset.Set) {
	set.Active = append(set.Active, set.PendingActive...)
	set.PendingActive = nil
	set.PendingInactive = nil
}

// rebuildActiveSetAndIndices is epoch step 5: snapshot fresh
// ValidatorInfo for each surviving row, drop rows below min_stake, assign
// dense indices, and reset performance.
func (e *Engine) rebuildActiveSetAndIndices(
	set *validatorset.Set,
	perf *validatorset.PerformanceSet,
	cfg stakeconfig.StakingConfig,
) error {
	next := make([]validatorset.ValidatorInfo, 0, len(set.Active))
	for _, v := range set.Active {
		p, err := e.Pools.MustGet(v.Addr)
		if err != nil {
			continue
		}
		votingPower, err := p.VotingPower()
		if err != nil {
			continue
		}
		if votingPower < cfg.MinStake {
			continue
		}

		vcfg, _, err := e.Configs.Get(v.Addr)
		if err != nil {
			vcfg = v.Config
		}
		vcfg.ValidatorIndex = uint64(len(next))
		if err := e.Configs.Set(v.Addr, vcfg); err != nil {
			return err
		}

		next = append(next, validatorset.ValidatorInfo{
			Addr:        v.Addr,
			VotingPower: votingPower,
			Config:      vcfg,
		})
	}
	set.Active = next
	perf.Reset(len(next))
	return nil
}

// autoRenewLockups is epoch step 6: a separate final pass over the
// rebuilt active set.
func (e *Engine) autoRenewLockups(set *validatorset.Set, now uint64, cfg stakeconfig.StakingConfig) {
	for _, v := range set.Active {
		p, err := e.Pools.MustGet(v.Addr)
		if err != nil {
			continue
		}
		before := p.LockedUntilSecs
		p.AutoRenewLockup(now, cfg.RecurringLockupSecs)
		if p.LockedUntilSecs != before {
			_ = e.Pools.Set(v.Addr, p)
		}
	}
}

func (e *Engine) emit(addr common.Address, kind pool.EventKind, before, after uint64, payload common.Address) {
	if err := e.Pools.Emit(addr, kind, before, after, payload); err != nil {
		logger.Warn("epoch: failed to append event", "kind", kind, "err", err)
	}
}

func performanceFor(perf *validatorset.PerformanceSet, index uint64) (success, total uint64) {
	if index >= uint64(len(perf.Validators)) {
		return 0, 0
	}
	row := perf.Validators[index]
	return uint64(row.Successful), uint64(row.Successful) + uint64(row.Failed)
}

func pool_value[T any](c coin.Coin[T]) uint64 {
	return coin.Value(c)
}
