// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
)

// EventKind discriminates the append-only event stream a pool emits on
// every mutating operation (spec §6).
type EventKind string

const (
	EventRegisterValidatorCandidate EventKind = "RegisterValidatorCandidate"
	EventSetOperator                EventKind = "SetOperator"
	EventAddStake                   EventKind = "AddStake"
	EventRotateConsensusKey         EventKind = "RotateConsensusKey"
	EventUpdateNetAndFullnodeAddrs  EventKind = "UpdateNetworkAndFullnodeAddresses"
	EventIncreaseLockup             EventKind = "IncreaseLockup"
	EventJoinValidatorSet           EventKind = "JoinValidatorSet"
	EventDistributeRewards          EventKind = "DistributeRewards"
	EventUnlockStake                EventKind = "UnlockStake"
	EventWithdrawStake              EventKind = "WithdrawStake"
	EventLeaveValidatorSet          EventKind = "LeaveValidatorSet"
)

// Event is one append-only log entry. Before/After carry the relevant
// scalar field for the event kind (e.g. bucket value pre/post mutation);
// Addr carries an address-valued payload (new operator, new voter) where
// applicable. Consumers are expected to treat the stream as append-only
// and interpret fields according to Kind, matching spec §6.
type Event struct {
	Seq         uint64
	Kind        EventKind
	PoolAddress common.Address
	Before      uint64
	After       uint64
	Addr        common.Address
}

// eventKey identifies a single log slot: pool address + monotonic
// sequence number, so appends are O(1) writes rather than a full-log
// rewrite.
type eventKey struct {
	pool common.Address
	seq  uint64
}

func (k eventKey) Bytes() []byte {
	buf := make([]byte, common.AddressLength+8)
	copy(buf, k.pool.Bytes())
	binary.BigEndian.PutUint64(buf[common.AddressLength:], k.seq)
	return buf
}

// addrKey adapts common.Address to the store.Key interface for the
// per-pool sequence counter mapping.
type addrKey common.Address

func (k addrKey) Bytes() []byte { return common.Address(k).Bytes() }
