// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking is the public operations surface of the validator
// staking core (spec §4.2): initialize_validator, initialize_owner_only,
// capability extract/deposit, operator/voter rotation, add_stake/unlock/
// withdraw, consensus-key rotation, lockup management, and set join/leave.
// Domain failures are returned as an *errkind.Error before any write is
// made; coin and store failures come back as plain errors, and a store
// failure part-way through an entry point that writes several records is
// not rolled back. None of them hold a lock across calls, matching the
// single-threaded-per-transaction model of spec §5.
package staking

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/stakecore/validatorcore/bls"
	"github.com/stakecore/validatorcore/capability"
	"github.com/stakecore/validatorcore/coin"
	"github.com/stakecore/validatorcore/errkind"
	"github.com/stakecore/validatorcore/oracle"
	"github.com/stakecore/validatorcore/pool"
	"github.com/stakecore/validatorcore/stakeconfig"
	"github.com/stakecore/validatorcore/validatorconfig"
	"github.com/stakecore/validatorcore/validatorset"
)

// Core wires together every collaborator an operations-surface call
// needs: the pool/config/set stores, the config provider, the clock, and
// the BLS verifier. It holds no mutable state of its own.
type Core struct {
	Pools       *pool.Store
	Configs     *validatorconfig.Store
	Caps        *capability.Store
	Set         *validatorset.Registry
	ConfigProv  stakeconfig.Provider
	Clock       oracle.Clock
	PopVerifier bls.Verifier
}

func (c *Core) requireSetChangeAllowed() (stakeconfig.StakingConfig, error) {
	cfg, err := c.ConfigProv.Get()
	if err != nil {
		return cfg, err
	}
	if !cfg.AllowValidatorSetChange {
		return cfg, errkind.New(errkind.SetChangeDisabled, "validator set changes are currently disabled")
	}
	return cfg, nil
}

// InitializeValidator is initialize_validator (spec §4.2): creates an
// empty pool owned by signer, a populated ValidatorConfig, and mints the
// pool's one and only OwnerCapability to signer.
func (c *Core) InitializeValidator(signer common.Address, consensusPubkey, pop, netAddr, fullnodeAddr []byte) error {
	if _, exists, err := c.Pools.Get(signer); err != nil {
		return err
	} else if exists {
		return errkind.New(errkind.AlreadyRegistered, "a stake pool already exists at this address")
	}
	if !c.PopVerifier.VerifyPoP(consensusPubkey, pop) {
		return errkind.New(errkind.InvalidPublicKey, "proof-of-possession does not verify")
	}

	if err := c.Pools.Create(signer, pool.New(signer)); err != nil {
		return err
	}
	if err := c.Configs.Set(signer, validatorconfig.ValidatorConfig{
		ConsensusPubkey:   consensusPubkey,
		NetworkAddresses:  netAddr,
		FullnodeAddresses: fullnodeAddr,
	}); err != nil {
		return err
	}
	if err := c.Caps.Mint(signer); err != nil {
		return err
	}
	return c.Pools.Emit(signer, pool.EventRegisterValidatorCandidate, 0, 0, signer)
}

// InitializeOwnerOnly is initialize_owner_only (spec §4.2): same shape as
// InitializeValidator but leaves ValidatorConfig empty — the operator must
// populate consensus identity via RotateConsensusKey before the pool can
// join the validator set.
func (c *Core) InitializeOwnerOnly(signer common.Address, initialStake coin.Coin[coin.StakeToken], operator, voter common.Address) error {
	if _, exists, err := c.Pools.Get(signer); err != nil {
		return err
	} else if exists {
		return errkind.New(errkind.AlreadyRegistered, "a stake pool already exists at this address")
	}

	p := pool.StakePool{OperatorAddress: operator, DelegatedVoter: voter}
	if err := coin.Merge(&p.Active, initialStake); err != nil {
		return err
	}
	if err := c.Pools.Create(signer, p); err != nil {
		return err
	}
	if err := c.Configs.Set(signer, validatorconfig.ValidatorConfig{}); err != nil {
		return err
	}
	return c.Caps.Mint(signer)
}

// ExtractOwnerCap is extract_owner_cap (spec §4.2): detaches signer's
// capability so it can be handed to a new holder via DepositOwnerCap.
func (c *Core) ExtractOwnerCap(signer common.Address) (capability.OwnerCapability, error) {
	return c.Caps.Extract(signer)
}

// DepositOwnerCap is deposit_owner_cap: installs cap under holder.
func (c *Core) DepositOwnerCap(holder common.Address, cap capability.OwnerCapability) error {
	return c.Caps.Deposit(holder, cap)
}

func (c *Core) pool(cap capability.OwnerCapability) (common.Address, pool.StakePool, error) {
	if cap.IsConsumed() {
		return common.Address{}, pool.StakePool{}, errkind.New(errkind.NotOperator, "owner capability has been extracted and is not currently usable")
	}
	addr := cap.PoolAddress()
	p, err := c.Pools.MustGet(addr)
	return addr, p, err
}

// SetOperator is set_operator (spec §4.2).
func (c *Core) SetOperator(cap capability.OwnerCapability, newOperator common.Address) error {
	addr, p, err := c.pool(cap)
	if err != nil {
		return err
	}
	p.OperatorAddress = newOperator
	if err := c.Pools.Set(addr, p); err != nil {
		return err
	}
	return c.Pools.Emit(addr, pool.EventSetOperator, 0, 0, newOperator)
}

// SetDelegatedVoter is set_delegated_voter (spec §4.2).
func (c *Core) SetDelegatedVoter(cap capability.OwnerCapability, newVoter common.Address) error {
	addr, p, err := c.pool(cap)
	if err != nil {
		return err
	}
	p.DelegatedVoter = newVoter
	return c.Pools.Set(addr, p)
}

// AddStake is add_stake (spec §4.1, §4.2): deposits coin into
// pending_active if the pool currently counts for the epoch (active or
// pending_inactive), else directly into active. Enforces the
// active+pending_active+pending_inactive <= max_stake postcondition.
func (c *Core) AddStake(cap capability.OwnerCapability, deposit coin.Coin[coin.StakeToken]) error {
	addr, p, err := c.pool(cap)
	if err != nil {
		return err
	}
	if coin.Value(deposit) == 0 {
		return errkind.New(errkind.InvalidStakeAmount, "stake amount must be greater than zero")
	}

	cfg, err := c.ConfigProv.Get()
	if err != nil {
		return err
	}
	set, _, err := c.Set.Load()
	if err != nil {
		return err
	}
	isMember := set.IsCurrentEpochValidator(addr)

	before := coin.Value(p.Active)
	if err := p.AddStake(deposit, isMember); err != nil {
		return err
	}

	total, err := p.TotalValue()
	if err != nil {
		return err
	}
	if total > cfg.MaxStake {
		return errkind.New(errkind.StakeExceedsMax, "total stake would exceed the configured maximum")
	}

	if err := c.Pools.Set(addr, p); err != nil {
		return err
	}
	return c.Pools.Emit(addr, pool.EventAddStake, before, coin.Value(p.Active), common.Address{})
}

// Unlock is unlock (spec §4.1, §4.2). A zero amount is a silent no-op.
func (c *Core) Unlock(cap capability.OwnerCapability, amount uint64) error {
	if amount == 0 {
		return nil
	}
	addr, p, err := c.pool(cap)
	if err != nil {
		return err
	}
	before := coin.Value(p.Active)
	if err := p.Unlock(amount); err != nil {
		return err
	}
	if err := c.Pools.Set(addr, p); err != nil {
		return err
	}
	return c.Pools.Emit(addr, pool.EventUnlockStake, before, coin.Value(p.Active), common.Address{})
}

// Withdraw is withdraw (spec §4.1, §4.2).
func (c *Core) Withdraw(cap capability.OwnerCapability, amount uint64) (coin.Coin[coin.StakeToken], error) {
	addr, p, err := c.pool(cap)
	if err != nil {
		return coin.Coin[coin.StakeToken]{}, err
	}

	set, _, err := c.Set.Load()
	if err != nil {
		return coin.Coin[coin.StakeToken]{}, err
	}
	poolIsInactive := set.State(addr) == validatorset.StatusInactive

	before := coin.Value(p.Inactive)
	out, err := p.Withdraw(amount, c.Clock.NowSeconds(), poolIsInactive)
	if err != nil {
		return coin.Coin[coin.StakeToken]{}, err
	}
	if err := c.Pools.Set(addr, p); err != nil {
		return coin.Coin[coin.StakeToken]{}, err
	}
	if err := c.Pools.Emit(addr, pool.EventWithdrawStake, before, coin.Value(p.Inactive), common.Address{}); err != nil {
		return coin.Coin[coin.StakeToken]{}, err
	}
	return out, nil
}

// RotateConsensusKey is rotate_consensus_key (spec §4.2): auth is the
// pool's operator, not the owner capability, since a delegated operator
// is allowed to manage consensus identity without holding the cap.
func (c *Core) RotateConsensusKey(signer, poolAddr common.Address, newPubkey, pop []byte) error {
	p, err := c.Pools.MustGet(poolAddr)
	if err != nil {
		return err
	}
	if p.OperatorAddress != signer {
		return errkind.New(errkind.NotOperator, "signer is not this pool's operator")
	}
	vcfg, err := c.Configs.MustGet(poolAddr)
	if err != nil {
		return err
	}
	if !c.PopVerifier.VerifyPoP(newPubkey, pop) {
		return errkind.New(errkind.InvalidPublicKey, "proof-of-possession does not verify")
	}
	vcfg.ConsensusPubkey = newPubkey
	if err := c.Configs.Set(poolAddr, vcfg); err != nil {
		return err
	}
	return c.Pools.Emit(poolAddr, pool.EventRotateConsensusKey, 0, 0, common.Address{})
}

// UpdateNetworkAndFullnodeAddresses is
// update_network_and_fullnode_addresses (spec §4.2).
func (c *Core) UpdateNetworkAndFullnodeAddresses(signer, poolAddr common.Address, netAddr, fullnodeAddr []byte) error {
	p, err := c.Pools.MustGet(poolAddr)
	if err != nil {
		return err
	}
	if p.OperatorAddress != signer {
		return errkind.New(errkind.NotOperator, "signer is not this pool's operator")
	}
	vcfg, err := c.Configs.MustGet(poolAddr)
	if err != nil {
		return err
	}
	vcfg.NetworkAddresses = netAddr
	vcfg.FullnodeAddresses = fullnodeAddr
	if err := c.Configs.Set(poolAddr, vcfg); err != nil {
		return err
	}
	return c.Pools.Emit(poolAddr, pool.EventUpdateNetAndFullnodeAddrs, 0, 0, common.Address{})
}

// IncreaseLockup is increase_lockup (spec §4.2): the unconditional variant
// driven by policy alone.
func (c *Core) IncreaseLockup(cap capability.OwnerCapability) error {
	addr, p, err := c.pool(cap)
	if err != nil {
		return err
	}
	cfg, err := c.ConfigProv.Get()
	if err != nil {
		return err
	}
	p.IncreaseLockup(c.Clock.NowSeconds(), cfg.RecurringLockupSecs)
	if err := c.Pools.Set(addr, p); err != nil {
		return err
	}
	return c.Pools.Emit(addr, pool.EventIncreaseLockup, 0, p.LockedUntilSecs, common.Address{})
}

// maxLockupMultiplier bounds how far a caller-supplied lockup duration may
// exceed the configured recurring lockup window (spec §9.2's resolution of
// the "LockTimeTooShort/LockTimeTooLong defined but never raised" Open
// Question).
const maxLockupMultiplier = 10

// IncreaseLockupWithDuration is the validated increase_lockup(new_secs)
// variant spec §9.2 attaches LockTimeTooShort/LockTimeTooLong to: newSecs
// must fall within [recurring_lockup_secs, recurring_lockup_secs *
// maxLockupMultiplier], rejecting a caller attempt to lock up for less
// than the policy window (undermining the renewal guarantee) or for an
// unbounded duration (permanently illiquid stake). IncreaseLockup above
// remains available for the common case of renewing at the policy's own
// duration.
func (c *Core) IncreaseLockupWithDuration(cap capability.OwnerCapability, newSecs uint64) error {
	addr, p, err := c.pool(cap)
	if err != nil {
		return err
	}
	cfg, err := c.ConfigProv.Get()
	if err != nil {
		return err
	}
	if newSecs < cfg.RecurringLockupSecs {
		return errkind.New(errkind.LockTimeTooShort, "requested lockup duration is shorter than the configured recurring lockup")
	}
	if newSecs > cfg.RecurringLockupSecs*maxLockupMultiplier {
		return errkind.New(errkind.LockTimeTooLong, "requested lockup duration exceeds the configured maximum")
	}
	p.IncreaseLockup(c.Clock.NowSeconds(), newSecs)
	if err := c.Pools.Set(addr, p); err != nil {
		return err
	}
	return c.Pools.Emit(addr, pool.EventIncreaseLockup, 0, p.LockedUntilSecs, common.Address{})
}

// JoinValidatorSet is join_validator_set (spec §4.2).
func (c *Core) JoinValidatorSet(signer, poolAddr common.Address) error {
	cfg, err := c.requireSetChangeAllowed()
	if err != nil {
		return err
	}

	p, err := c.Pools.MustGet(poolAddr)
	if err != nil {
		return err
	}
	if p.OperatorAddress != signer {
		return errkind.New(errkind.NotOperator, "signer is not this pool's operator")
	}
	vcfg, err := c.Configs.MustGet(poolAddr)
	if err != nil {
		return err
	}
	if vcfg.IsEmpty() {
		return errkind.New(errkind.InvalidPublicKey, "pool has no consensus public key configured")
	}

	activeStake := coin.Value(p.Active)
	if activeStake < cfg.MinStake {
		return errkind.New(errkind.StakeTooLow, "active stake is below the minimum required to join")
	}
	if activeStake > cfg.MaxStake {
		return errkind.New(errkind.StakeTooHigh, "active stake exceeds the maximum allowed to join")
	}

	votingPower, err := p.VotingPower()
	if err != nil {
		return err
	}
	return c.joinInternal(poolAddr, votingPower, vcfg)
}

// joinInternal appends the ValidatorInfo snapshot without the
// allow_set_change/min-max checks — used both by JoinValidatorSet and by
// genesis's create_initialize_validators (spec §4.6 step 3, which bypasses
// the allow_set_change gate).
func (c *Core) joinInternal(poolAddr common.Address, votingPower uint64, vcfg validatorconfig.ValidatorConfig) error {
	err := c.Set.WithSet(func(set *validatorset.Set) error {
		return set.Join(validatorset.ValidatorInfo{
			Addr:        poolAddr,
			VotingPower: votingPower,
			Config:      vcfg,
		})
	})
	if err != nil {
		return err
	}
	return c.Pools.Emit(poolAddr, pool.EventJoinValidatorSet, 0, votingPower, common.Address{})
}

// JoinValidatorSetInternal bypasses the allow_set_change check, matching
// spec §4.6 step 3's genesis-only join path.
func (c *Core) JoinValidatorSetInternal(poolAddr common.Address) error {
	p, err := c.Pools.MustGet(poolAddr)
	if err != nil {
		return err
	}
	vcfg, err := c.Configs.MustGet(poolAddr)
	if err != nil {
		return err
	}
	votingPower, err := p.VotingPower()
	if err != nil {
		return err
	}
	return c.joinInternal(poolAddr, votingPower, vcfg)
}

// LeaveValidatorSet is leave_validator_set (spec §4.2).
func (c *Core) LeaveValidatorSet(signer, poolAddr common.Address) error {
	if _, err := c.requireSetChangeAllowed(); err != nil {
		return err
	}
	p, err := c.Pools.MustGet(poolAddr)
	if err != nil {
		return err
	}
	if p.OperatorAddress != signer {
		return errkind.New(errkind.NotOperator, "signer is not this pool's operator")
	}
	if err := c.Set.WithSet(func(set *validatorset.Set) error {
		return set.Leave(poolAddr)
	}); err != nil {
		return err
	}
	return c.Pools.Emit(poolAddr, pool.EventLeaveValidatorSet, 0, 0, common.Address{})
}

// UpdatePerformanceStatistics is update_performance_statistics (spec
// §4.2): callable only from the block prologue, never aborts.
func (c *Core) UpdatePerformanceStatistics(proposer *uint64, failedIndices []uint64) error {
	return c.Set.UpdatePerformanceStatistics(proposer, failedIndices)
}

// ValidatorState is the validator-state query of spec §4.3.
func (c *Core) ValidatorState(poolAddr common.Address) (validatorset.Status, error) {
	set, _, err := c.Set.Load()
	if err != nil {
		return validatorset.StatusInactive, err
	}
	return set.State(poolAddr), nil
}
