// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards implements the reward formula of spec §4.5: a
// numerator-first-then-divide computation widened through 256-bit
// intermediates so it never overflows uint64 and never loses the
// precision an early division would throw away.
package rewards

import (
	"github.com/holiman/uint256"

	"github.com/stakecore/validatorcore/coin"
)

// Calculate returns floor(stake * rate * success / (denom * total)),
// computed entirely in 256-bit arithmetic before the final truncation
// back to uint64. Returns 0 if total or denom is zero, matching spec
// §4.5's explicit degenerate cases — this function must never panic,
// since it backs the non-abort epoch engine.
func Calculate(stake, success, total, rate, denom uint64) uint64 {
	if total == 0 || denom == 0 {
		return 0
	}

	numerator := new(uint256.Int).SetUint64(stake)
	numerator.Mul(numerator, new(uint256.Int).SetUint64(rate))
	numerator.Mul(numerator, new(uint256.Int).SetUint64(success))

	denominator := new(uint256.Int).SetUint64(denom)
	denominator.Mul(denominator, new(uint256.Int).SetUint64(total))

	if denominator.IsZero() {
		return 0
	}

	quotient := new(uint256.Int).Div(numerator, denominator)
	if !quotient.IsUint64() {
		// Quotient cannot exceed stake (rate/denom and success/total are
		// both <= 1 in any sane policy), but if a misconfigured policy
		// ever produced a value outside uint64 range, saturate instead
		// of panicking — this path backs a non-abort entry point.
		return ^uint64(0)
	}
	return quotient.Uint64()
}

// Distribute mints Calculate(value(bucket), success, total, rate, denom)
// fresh coins under authority and merges them into bucket, returning the
// minted amount (spec §4.5). Minting zero is a documented no-op.
func Distribute(
	bucket *coin.Coin[coin.StakeToken],
	authority coin.MintAuthority[coin.StakeToken],
	success, total, rate, denom uint64,
) (uint64, error) {
	amount := Calculate(coin.Value(*bucket), success, total, rate, denom)
	if amount == 0 {
		return 0, nil
	}
	minted := coin.Mint(amount, authority)
	if err := coin.Merge(bucket, minted); err != nil {
		return 0, err
	}
	return amount, nil
}
