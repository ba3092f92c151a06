// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool implements the StakePool data model (spec §3) and the
// four-bucket stake semantics of spec §4.1: add_stake/unlock/withdraw and
// the lockup-gated flow between the Active, Inactive, PendingActive and
// PendingInactive buckets.
package pool

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stakecore/validatorcore/coin"
	"github.com/stakecore/validatorcore/errkind"
)

// StakePool is the per-validator stake record keyed by pool address.
// Every bucket is a linear Coin so the four-way split can never silently
// duplicate or destroy value.
type StakePool struct {
	Active          coin.Coin[coin.StakeToken]
	Inactive        coin.Coin[coin.StakeToken]
	PendingActive   coin.Coin[coin.StakeToken]
	PendingInactive coin.Coin[coin.StakeToken]

	LockedUntilSecs uint64

	OperatorAddress common.Address
	DelegatedVoter  common.Address
}

// New creates an empty pool owned (operator and voter alike) by owner,
// the shape initialize_validator and initialize_owner_only both produce.
func New(owner common.Address) StakePool {
	return StakePool{
		OperatorAddress: owner,
		DelegatedVoter:  owner,
	}
}

// TotalValue returns the sum of all four buckets — the pool's total
// stake under management at this instant.
func (p *StakePool) TotalValue() (uint64, error) {
	total := coin.Value(p.Active)
	var err error
	for _, v := range []uint64{
		coin.Value(p.Inactive),
		coin.Value(p.PendingActive),
		coin.Value(p.PendingInactive),
	} {
		total, err = addChecked(total, v)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

func addChecked(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, fmt.Errorf("pool: stake total overflow")
	}
	return sum, nil
}

// VotingPower is the active + pending_inactive value of the pool at this
// instant (spec GLOSSARY / §3 ValidatorInfo.voting_power).
func (p *StakePool) VotingPower() (uint64, error) {
	return addChecked(coin.Value(p.Active), coin.Value(p.PendingInactive))
}

// AddStake deposits c into the pool according to spec §4.1: if the pool
// is currently a set member (isMember true — ACTIVE or PENDING_INACTIVE)
// the deposit lands in PendingActive and only counts from the next epoch;
// otherwise it lands directly in Active.
func (p *StakePool) AddStake(c coin.Coin[coin.StakeToken], isMember bool) error {
	if isMember {
		return coin.Merge(&p.PendingActive, c)
	}
	return coin.Merge(&p.Active, c)
}

// Unlock moves amount from Active to PendingInactive. A zero amount is a
// documented no-op (spec §4.2, §8 boundary behavior) — callers must check
// for amount == 0 themselves if they need to skip event emission.
func (p *StakePool) Unlock(amount uint64) error {
	if amount == 0 {
		return nil
	}
	moved, err := coin.Extract(&p.Active, amount)
	if err != nil {
		return errkind.Newf(errkind.InsufficientActive, "unlock %d: %v", amount, err)
	}
	return coin.Merge(&p.PendingInactive, moved)
}

// SweepExpiredLockup moves PendingInactive into Inactive if the lockup
// has expired as of now. This is the lazy collapse spec §4.1 allows
// withdraw to perform outside of the epoch boundary.
func (p *StakePool) SweepExpiredLockup(now uint64) error {
	if now < p.LockedUntilSecs {
		return nil
	}
	if coin.Value(p.PendingInactive) == 0 {
		return nil
	}
	drained := coin.ExtractAll(&p.PendingInactive)
	return coin.Merge(&p.Inactive, drained)
}

// Withdraw extracts min(amount, value(Inactive)) from Inactive and
// returns it. If the pool is inactive and the lockup has expired, any
// expired PendingInactive is swept into Inactive first (spec §4.2).
func (p *StakePool) Withdraw(amount uint64, now uint64, poolIsInactive bool) (coin.Coin[coin.StakeToken], error) {
	if poolIsInactive {
		if err := p.SweepExpiredLockup(now); err != nil {
			return coin.Coin[coin.StakeToken]{}, err
		}
	}

	available := coin.Value(p.Inactive)
	toWithdraw := amount
	if toWithdraw > available {
		toWithdraw = available
	}
	if toWithdraw == 0 {
		return coin.Coin[coin.StakeToken]{}, errkind.New(errkind.NoCoinsToWithdraw, "no withdrawable stake")
	}
	return coin.Extract(&p.Inactive, toWithdraw)
}

// PromotePendingActive merges PendingActive into Active — epoch step
// §4.4.2.
func (p *StakePool) PromotePendingActive() error {
	drained := coin.ExtractAll(&p.PendingActive)
	return coin.Merge(&p.Active, drained)
}

// ReleaseExpiredPendingInactive merges PendingInactive into Inactive iff
// the lockup has expired as of now — epoch step §4.4.3.
func (p *StakePool) ReleaseExpiredPendingInactive(now uint64) error {
	if now < p.LockedUntilSecs {
		return nil
	}
	drained := coin.ExtractAll(&p.PendingInactive)
	return coin.Merge(&p.Inactive, drained)
}

// IncreaseLockup sets LockedUntilSecs to now + recurringLockupSecs. Per
// spec §4.2 this call can never shorten the lockup — callers must not
// pass a value lower than the current deadline; this function enforces
// that by taking the max.
func (p *StakePool) IncreaseLockup(now, recurringLockupSecs uint64) {
	next := now + recurringLockupSecs
	if next > p.LockedUntilSecs {
		p.LockedUntilSecs = next
	}
}

// AutoRenewLockup renews the lockup deadline for a pool that remains
// active across an epoch boundary, if it has already expired — epoch
// step §4.4.6.
func (p *StakePool) AutoRenewLockup(now, recurringLockupSecs uint64) {
	if p.LockedUntilSecs <= now {
		p.LockedUntilSecs = now + recurringLockupSecs
	}
}
