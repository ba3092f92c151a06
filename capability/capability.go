// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package capability reimplements the Move-style linear bearer-token
// resource OwnerCapability as an opaque Go value with move-only semantics:
// a capability is exclusively owned by whoever currently holds the value,
// it is never derived from public state, and it can be transferred via
// Extract/Deposit exactly once per extraction. The coin MintAuthority and
// BurnAuthority live in package coin.
package capability

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// OwnerCapability authorizes stake-bearing operations (add/unlock/
// withdraw/set-voter/set-operator) against exactly one pool. It is minted
// once at pool creation and thereafter only moves between holders via
// Extract/Deposit — it is never recreated from scratch by user code.
type OwnerCapability struct {
	poolAddress common.Address
	consumed    bool // true once Extract has produced a detached value pending Deposit
}

// Mint creates a fresh capability for pool. Called exactly once, by
// initialize_validator / initialize_owner_only.
func Mint(pool common.Address) OwnerCapability {
	return OwnerCapability{poolAddress: pool}
}

// PoolAddress returns the pool this capability authorizes.
func (c OwnerCapability) PoolAddress() common.Address {
	return c.poolAddress
}

// IsConsumed reports whether this value has been extracted and not yet
// redeposited — a consumed capability must not be used to authorize
// anything.
func (c OwnerCapability) IsConsumed() bool {
	return c.consumed
}

// Extract detaches the capability from its current holder's storage slot,
// marking the in-memory value consumed so a caller cannot accidentally
// reuse a stale copy after handing the real one off. The caller is
// responsible for clearing the holder's stored slot and for eventually
// calling Deposit to give the detached value a new home.
func Extract(stored *OwnerCapability) (OwnerCapability, error) {
	if stored == nil || stored.consumed {
		return OwnerCapability{}, fmt.Errorf("capability: no owner capability to extract")
	}
	out := OwnerCapability{poolAddress: stored.poolAddress}
	stored.consumed = true
	return out, nil
}

// Deposit installs cap into dest's storage slot. dest must currently be
// empty (the zero value) — depositing on top of a live capability would
// silently destroy it, which linear resource semantics forbid.
func Deposit(dest *OwnerCapability, cap OwnerCapability) error {
	if dest != nil && !dest.consumed && dest.poolAddress != (common.Address{}) {
		return fmt.Errorf("capability: destination already holds a capability")
	}
	*dest = cap
	dest.consumed = false
	return nil
}

// rlpForm mirrors OwnerCapability with exported fields purely so
// reflection-based RLP can see it — OwnerCapability's own fields stay
// unexported to keep construction move-only at the Go API level.
type rlpForm struct {
	PoolAddress common.Address
	Consumed    bool
}

func (c OwnerCapability) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, rlpForm{PoolAddress: c.poolAddress, Consumed: c.consumed})
}

func (c *OwnerCapability) DecodeRLP(s *rlp.Stream) error {
	var form rlpForm
	if err := s.Decode(&form); err != nil {
		return err
	}
	c.poolAddress = form.PoolAddress
	c.consumed = form.Consumed
	return nil
}
