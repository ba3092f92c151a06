// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/stakecore/validatorcore/pool"
	"github.com/stakecore/validatorcore/validatorconfig"
	"github.com/stakecore/validatorcore/validatorset"
)

// State is the JSON-friendly spelling of a validatorset.Status.
type State string

const (
	StateInactive        State = "INACTIVE"
	StatePendingActive   State = "PENDING_ACTIVE"
	StateActive          State = "ACTIVE"
	StatePendingInactive State = "PENDING_INACTIVE"
)

func convertState(s validatorset.Status) State {
	switch s {
	case validatorset.StatusPendingActive:
		return StatePendingActive
	case validatorset.StatusActive:
		return StateActive
	case validatorset.StatusPendingInactive:
		return StatePendingInactive
	default:
		return StateInactive
	}
}

// PoolView is the read-only projection of a StakePool plus its derived
// membership state (spec §4.3) and ValidatorConfig, if any.
type PoolView struct {
	Address         common.Address `json:"address"`
	Active          uint64         `json:"active"`
	Inactive        uint64         `json:"inactive"`
	PendingActive   uint64         `json:"pendingActive"`
	PendingInactive uint64         `json:"pendingInactive"`
	LockedUntilSecs uint64         `json:"lockedUntilSecs"`
	OperatorAddress common.Address `json:"operatorAddress"`
	DelegatedVoter  common.Address `json:"delegatedVoter"`
	State           State          `json:"state"`
	Config          *ConfigView    `json:"validatorConfig,omitempty"`
}

// ConfigView is the read-only projection of a ValidatorConfig.
type ConfigView struct {
	ConsensusPubkeyHex string `json:"consensusPubkey"`
	NetworkAddresses   string `json:"networkAddresses"`
	FullnodeAddresses  string `json:"fullnodeAddresses"`
	ValidatorIndex     uint64 `json:"validatorIndex"`
}

func convertConfig(c validatorconfig.ValidatorConfig) *ConfigView {
	if c.IsEmpty() {
		return nil
	}
	return &ConfigView{
		ConsensusPubkeyHex: hexString(c.ConsensusPubkey),
		NetworkAddresses:   string(c.NetworkAddresses),
		FullnodeAddresses:  string(c.FullnodeAddresses),
		ValidatorIndex:     c.ValidatorIndex,
	}
}

func hexString(b []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, 2+len(b)*2)
	out[0], out[1] = '0', 'x'
	for i, v := range b {
		out[2+i*2] = hextable[v>>4]
		out[3+i*2] = hextable[v&0x0f]
	}
	return string(out)
}

// ValidatorInfoView is the read-only projection of a validatorset.ValidatorInfo.
type ValidatorInfoView struct {
	Address     common.Address `json:"address"`
	VotingPower uint64         `json:"votingPower"`
	Config      *ConfigView    `json:"validatorConfig,omitempty"`
}

func convertValidatorInfo(v validatorset.ValidatorInfo) ValidatorInfoView {
	return ValidatorInfoView{
		Address:     v.Addr,
		VotingPower: v.VotingPower,
		Config:      convertConfig(v.Config),
	}
}

func convertValidatorInfoList(vs []validatorset.ValidatorInfo) []ValidatorInfoView {
	out := make([]ValidatorInfoView, len(vs))
	for i, v := range vs {
		out[i] = convertValidatorInfo(v)
	}
	return out
}

// ValidatorSetView is the full singleton snapshot: the three membership
// sequences plus the parallel performance counters for Active (spec §3).
type ValidatorSetView struct {
	Active          []ValidatorInfoView `json:"active"`
	PendingActive   []ValidatorInfoView `json:"pendingActive"`
	PendingInactive []ValidatorInfoView `json:"pendingInactive"`
	Performance     []PerformanceView   `json:"performance"`
}

// PerformanceView is the read-only projection of one validatorset.Performance entry.
type PerformanceView struct {
	Index      int    `json:"index"`
	Successful uint32 `json:"successfulProposals"`
	Failed     uint32 `json:"failedProposals"`
}

// EventView is the read-only projection of one pool.Event log entry.
type EventView struct {
	Seq         uint64         `json:"seq"`
	Kind        pool.EventKind `json:"kind"`
	PoolAddress common.Address `json:"poolAddress"`
	Before      uint64         `json:"before"`
	After       uint64         `json:"after"`
	Addr        common.Address `json:"addr,omitempty"`
}

func convertEvent(e pool.Event) EventView {
	return EventView{
		Seq:         e.Seq,
		Kind:        e.Kind,
		PoolAddress: e.PoolAddress,
		Before:      e.Before,
		After:       e.After,
		Addr:        e.Addr,
	}
}

func convertEvents(es []pool.Event) []EventView {
	out := make([]EventView, len(es))
	for i, e := range es {
		out[i] = convertEvent(e)
	}
	return out
}

// HealthStatus reports whether genesis has run and a summary of the
// current validator set — the read-only surface's analogue of thor's
// node/peer health, adapted to a single-process staking core with no
// network layer of its own.
type HealthStatus struct {
	Bootstrapped        bool `json:"bootstrapped"`
	ActiveSetSize       int  `json:"activeSetSize"`
	PendingActiveSize   int  `json:"pendingActiveSize"`
	PendingInactiveSize int  `json:"pendingInactiveSize"`
}
