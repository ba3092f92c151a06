// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package validatorset implements the ValidatorSet and ValidatorPerformance
// singletons (spec §3, §4.3): the three ordered membership sequences
// (active, pending_active, pending_inactive) and the parallel per-index
// performance counters used by the epoch engine and the block prologue.
package validatorset

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/stakecore/validatorcore/errkind"
	"github.com/stakecore/validatorcore/validatorconfig"
)

// MaxValidatorSetSize bounds |active| + |pending_active|, matching the
// external bitvec voting-power representation (spec §6 constant).
const MaxValidatorSetSize = 65536

// Status is the observable membership state of a pool, derived from the
// ValidatorSet rather than stored on the pool (spec §4.3).
type Status uint8

const (
	StatusInactive Status = iota
	StatusPendingActive
	StatusActive
	StatusPendingInactive
)

// ValidatorInfo is a row in the set: an address plus a voting-power
// snapshot fixed at the moment it was computed (spec §3).
type ValidatorInfo struct {
	Addr       common.Address
	VotingPower uint64
	Config     validatorconfig.ValidatorConfig
}

// Set is the singleton holding the three ordered membership sequences.
type Set struct {
	Active          []ValidatorInfo
	PendingActive   []ValidatorInfo
	PendingInactive []ValidatorInfo
}

// Performance is the (successful, failed) proposal tally for one index.
type Performance struct {
	Successful uint32
	Failed     uint32
}

// PerformanceSet is the singleton parallel to Set.Active.
type PerformanceSet struct {
	Validators []Performance
}

// State returns the observable membership state of addr.
func (s *Set) State(addr common.Address) Status {
	for _, v := range s.PendingActive {
		if v.Addr == addr {
			return StatusPendingActive
		}
	}
	for _, v := range s.Active {
		if v.Addr == addr {
			return StatusActive
		}
	}
	for _, v := range s.PendingInactive {
		if v.Addr == addr {
			return StatusPendingInactive
		}
	}
	return StatusInactive
}

// IsCurrentEpochValidator reports whether addr counts for this epoch's
// voting power / reward eligibility (spec §4.3).
func (s *Set) IsCurrentEpochValidator(addr common.Address) bool {
	st := s.State(addr)
	return st == StatusActive || st == StatusPendingInactive
}

// IndexInActive returns the position of addr in Active, or -1.
func (s *Set) IndexInActive(addr common.Address) int {
	for i, v := range s.Active {
		if v.Addr == addr {
			return i
		}
	}
	return -1
}

// Join appends info to PendingActive. Preconditions (pool currently
// INACTIVE, stake bounds, non-empty pubkey, caller is operator) are the
// operations surface's responsibility (spec §4.2) — Join only enforces
// what belongs to the set itself: no duplicate membership and the size
// bound.
func (s *Set) Join(info ValidatorInfo) error {
	if s.State(info.Addr) != StatusInactive {
		return errkind.New(errkind.AlreadyActive, "pool is already a validator-set member")
	}
	if uint64(len(s.Active)+len(s.PendingActive)) >= MaxValidatorSetSize {
		return errkind.New(errkind.ValidatorSetTooLarge, "validator set is at capacity")
	}
	s.PendingActive = append(s.PendingActive, info)
	return nil
}

// Leave removes addr from Active (swap-remove, per spec §4.4's tie-break
// rule and §9's design note on leave's ordering) and appends it to
// PendingInactive. The "last validator" check runs before the removal:
// leaving is refused with LastValidator when the removal would leave
// Active empty, and the set is then unchanged.
func (s *Set) Leave(addr common.Address) error {
	idx := s.IndexInActive(addr)
	if idx < 0 {
		return errkind.New(errkind.NotValidator, "pool is not an active validator")
	}
	if len(s.Active) <= 1 {
		return errkind.New(errkind.LastValidator, "cannot remove the last active validator")
	}

	info := s.Active[idx]
	last := len(s.Active) - 1
	s.Active[idx] = s.Active[last]
	s.Active = s.Active[:last]

	s.PendingInactive = append(s.PendingInactive, info)
	return nil
}
