// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis implements the two-phase bootstrap of spec §4.6: the
// one-shot procedure that wires the framework root, mints the coin
// authorities, and seeds the initial validator set before block 0.
package genesis

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/stakecore/validatorcore/capability"
	"github.com/stakecore/validatorcore/coin"
	"github.com/stakecore/validatorcore/errkind"
	"github.com/stakecore/validatorcore/framework"
	"github.com/stakecore/validatorcore/oracle"
	"github.com/stakecore/validatorcore/pool"
	"github.com/stakecore/validatorcore/stakeconfig"
	"github.com/stakecore/validatorcore/staking"
	"github.com/stakecore/validatorcore/validatorconfig"
	"github.com/stakecore/validatorcore/validatorset"
)

var logger = log.New("pkg", "genesis")

// ChainParams carries the gas-schedule/chain-identity portion of
// initialize (spec §4.6 step 1) that this reimplementation neither stores
// nor interprets — consensus config, gas scheduling and versioning belong
// to modules outside the staking core's scope. Initialize only logs
// ChainID and EpochIntervalSec.
type ChainParams struct {
	ChainID          uint64
	Version          uint64
	ConsensusConfig  []byte
	GasSchedule      []byte
	EpochIntervalSec uint64
}

// Builder wires every store the bootstrap touches. It is the genesis-time
// counterpart of staking.Core/epoch.Engine, constructed once at process
// start from the same *store.DB.
type Builder struct {
	Roots   *framework.Roots
	Pools   *pool.Store
	Configs *validatorconfig.Store
	Caps    *capability.Store
	Set     *validatorset.Registry
	Clock   oracle.Clock
}

// Receipt summarizes a completed bootstrap for logging/diagnostics.
type Receipt struct {
	MintAuthority coin.MintAuthority[coin.StakeToken]
	BurnAuthority coin.BurnAuthority[coin.StakeToken]
	Validators    int
}

// Initialize is genesis step 1+2 (spec §4.6): creates the framework
// bootstrap marker, mints the one-and-only MintAuthority/BurnAuthority
// pair, and seeds an empty validator set. The chain parameters are only
// logged and the staking policy is not stored.
// Calling this a second time fails — framework.Roots.Bootstrap enforces
// the one-shot invariant.
func (b *Builder) Initialize(params ChainParams, stakingCfg stakeconfig.StakingConfig) (Receipt, error) {
	logger.Info("genesis: initializing framework", "chainID", params.ChainID, "epochIntervalSec", params.EpochIntervalSec)

	mint, burn, err := b.Roots.Bootstrap()
	if err != nil {
		return Receipt{}, errors.Wrap(err, "genesis: bootstrap framework root")
	}

	if err := b.Set.Save(validatorset.Set{}, validatorset.PerformanceSet{}); err != nil {
		return Receipt{}, errors.Wrap(err, "genesis: seed empty validator set")
	}

	// stakingCfg itself is served back out through the caller's chosen
	// stakeconfig.Provider, not duplicated into this store.
	return Receipt{MintAuthority: mint, BurnAuthority: burn}, nil
}

// ValidatorSeed is one row of the create_initialize_validators input
// (spec §4.6 step 3): all six parallel sequences collapsed into a single
// struct per validator.
type ValidatorSeed struct {
	Owner             common.Address
	ConsensusPubkey   []byte
	ProofOfPossession []byte
	NetworkAddress    []byte
	FullnodeAddress   []byte
	Stake             uint64
}

// CreateInitializeValidators is genesis step 3 (spec §4.6): for each seed,
// creates the owner's pool, locks it up, mints its stake and deposits it,
// joins the validator set bypassing allow_set_change, then runs exactly
// one on_new_epoch-equivalent promotion so every seed validator is ACTIVE
// before block 0. The caller supplies core already wired against
// the same stores as this Builder.
func (b *Builder) CreateInitializeValidators(
	mint coin.MintAuthority[coin.StakeToken],
	core *staking.Core,
	seeds []ValidatorSeed,
) (Receipt, error) {
	for i, seed := range seeds {
		if err := core.InitializeValidator(seed.Owner, seed.ConsensusPubkey, seed.ProofOfPossession, seed.NetworkAddress, seed.FullnodeAddress); err != nil {
			return Receipt{}, errors.Wrapf(err, "genesis: initialize validator %d (%s)", i, seed.Owner.Hex())
		}

		capToken, err := core.ExtractOwnerCap(seed.Owner)
		if err != nil {
			return Receipt{}, errors.Wrapf(err, "genesis: extract owner cap %d", i)
		}
		if err := core.IncreaseLockup(capToken); err != nil {
			return Receipt{}, errors.Wrapf(err, "genesis: lock up validator %d", i)
		}

		minted := coin.Mint(seed.Stake, mint)
		if err := core.AddStake(capToken, minted); err != nil {
			return Receipt{}, errors.Wrapf(err, "genesis: seed stake for validator %d", i)
		}
		if err := core.DepositOwnerCap(seed.Owner, capToken); err != nil {
			return Receipt{}, errors.Wrapf(err, "genesis: redeposit owner cap %d", i)
		}

		if err := core.JoinValidatorSetInternal(seed.Owner); err != nil {
			return Receipt{}, errors.Wrapf(err, "genesis: join validator set %d", i)
		}
	}

	if err := promoteAllPendingActive(b.Set, b.Configs); err != nil {
		return Receipt{}, errors.Wrap(err, "genesis: promote seeded validators to active")
	}

	logger.Info("genesis: seeded validators", "count", len(seeds))
	return Receipt{Validators: len(seeds)}, nil
}

// promoteAllPendingActive is the genesis-only sliver of on_new_epoch (spec
// §4.6 step 3's closing "call on_new_epoch"): it only needs to move
// pending_active into active_validators, assign each row its dense
// validator index, and size the performance array, since there is nothing
// yet in pending_inactive and no rewards to pay at block 0.
func promoteAllPendingActive(set *validatorset.Registry, configs *validatorconfig.Store) error {
	return set.WithBoth(func(s *validatorset.Set, perf *validatorset.PerformanceSet) error {
		s.Active = append(s.Active, s.PendingActive...)
		s.PendingActive = nil
		for i := range s.Active {
			vcfg, err := configs.MustGet(s.Active[i].Addr)
			if err != nil {
				return err
			}
			vcfg.ValidatorIndex = uint64(i)
			if err := configs.Set(s.Active[i].Addr, vcfg); err != nil {
				return err
			}
			s.Active[i].Config = vcfg
		}
		perf.Reset(len(s.Active))
		return nil
	})
}

// VerifyPreconditions checks that every parallel sequence argument to
// CreateInitializeValidators has been assembled consistently — this is a
// convenience guard callers can run before building the ValidatorSeed
// slice; it is not itself one of the spec's operations.
func VerifyPreconditions(owners, pubkeys, pops, netAddrs, fnAddrs []string, stakes []uint64) error {
	n := len(owners)
	for _, seq := range [][]string{pubkeys, pops, netAddrs, fnAddrs} {
		if len(seq) != n {
			return errkind.New(errkind.InvalidStakeAmount, fmt.Sprintf("genesis: mismatched sequence lengths (want %d)", n))
		}
	}
	if len(stakes) != n {
		return errkind.New(errkind.InvalidStakeAmount, fmt.Sprintf("genesis: mismatched stake sequence length (want %d)", n))
	}
	return nil
}
