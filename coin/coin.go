// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package coin implements a linear, value-preserving balance primitive
// analogous to the Move `Coin<T>` resource consumed by the staking core.
// A Coin is never silently duplicated or destroyed: every operation either
// moves value between two coins or mints/burns it under an explicit
// capability.
package coin

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/rlp"
)

// StakeToken tags a Coin holding the chain's native staking asset.
type StakeToken struct{}

// Coin is a linear value holder parameterized by a phantom unit type T.
// The zero value is a valid, empty Coin.
type Coin[T any] struct {
	amount uint64
}

// Zero returns an empty coin.
func Zero[T any]() Coin[T] {
	return Coin[T]{}
}

// Value returns the amount held by the coin.
func Value[T any](c Coin[T]) uint64 {
	return c.amount
}

// EncodeRLP encodes only the underlying amount: the struct's unexported
// field would otherwise be invisible to reflection-based RLP encoding,
// silently dropping every balance on a store round trip.
func (c Coin[T]) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, c.amount)
}

// DecodeRLP is the counterpart to EncodeRLP.
func (c *Coin[T]) DecodeRLP(s *rlp.Stream) error {
	return s.Decode(&c.amount)
}

// Merge folds src into dst, consuming src. It returns an error, leaving
// dst unchanged, if the sum would overflow uint64.
func Merge[T any](dst *Coin[T], src Coin[T]) error {
	sum, overflow := math.SafeAdd(dst.amount, src.amount)
	if overflow {
		return fmt.Errorf("coin: merge overflow (%d + %d)", dst.amount, src.amount)
	}
	dst.amount = sum
	return nil
}

// Extract removes amt from c and returns it as a new Coin. Fails if
// amt exceeds the coin's value — the coin ledger never goes negative.
func Extract[T any](c *Coin[T], amt uint64) (Coin[T], error) {
	if amt > c.amount {
		return Coin[T]{}, fmt.Errorf("coin: insufficient balance: have %d, want %d", c.amount, amt)
	}
	c.amount -= amt
	return Coin[T]{amount: amt}, nil
}

// ExtractAll drains c entirely and returns its full value as a new Coin.
func ExtractAll[T any](c *Coin[T]) Coin[T] {
	out := Coin[T]{amount: c.amount}
	c.amount = 0
	return out
}

// MintAuthority is a capability proving the right to mint new coins. It is
// created exactly once — see framework.Roots.Bootstrap for its lifecycle.
type MintAuthority[T any] struct {
	// marker keeps the authority tied to its unit type T; unexported so
	// only this package's constructors can make one.
	marker struct{}
}

// BurnAuthority is the dual of MintAuthority, authorizing destruction of
// coins (held by the fee-collection module, outside this core's scope).
type BurnAuthority[T any] struct {
	marker struct{}
}

// NewMintAuthority is only ever called once, from the genesis bootstrap.
func NewMintAuthority[T any]() MintAuthority[T] {
	return MintAuthority[T]{}
}

// NewBurnAuthority is only ever called once, from the genesis bootstrap.
func NewBurnAuthority[T any]() BurnAuthority[T] {
	return BurnAuthority[T]{}
}

// Mint issues amt new coins under the given authority. This is the only
// path by which value enters the system outside of an external deposit.
func Mint[T any](amt uint64, _ MintAuthority[T]) Coin[T] {
	return Coin[T]{amount: amt}
}

// Burn destroys c under the given authority, removing its value from
// circulation permanently.
func Burn[T any](c Coin[T], _ BurnAuthority[T]) {
	_ = c // value is dropped; nothing further to do
}
