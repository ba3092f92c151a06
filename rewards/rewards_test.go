// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecore/validatorcore/coin"
)

// TestCalculatePrecisionCalibration is the first calibration vector:
// a naive success/total-then-stake*rate division would truncate to 1791
// instead of the correct 1792.
func TestCalculatePrecisionCalibration(t *testing.T) {
	got := Calculate(2000, 199, 200, 700, 777)
	assert.Equal(t, uint64(1792), got)
}

// TestCalculateNoOverflow is the second calibration vector: stake alone
// (10^17) overflows a naive 64-bit multiply by rate before any division.
func TestCalculateNoOverflow(t *testing.T) {
	got := Calculate(100_000_000_000_000_000, 9999, 10000, 3_141_592, 10_000_000)
	assert.Equal(t, uint64(31_412_778_408_000_000), got)
}

func TestCalculateZeroTotalIsZero(t *testing.T) {
	assert.Equal(t, uint64(0), Calculate(5000, 1, 0, 700, 777))
}

func TestCalculateZeroDenomIsZero(t *testing.T) {
	assert.Equal(t, uint64(0), Calculate(5000, 1, 200, 700, 0))
}

func TestDistributeMintsAndMerges(t *testing.T) {
	mint := coin.NewMintAuthority[coin.StakeToken]()
	bucket := coin.Mint(2000, mint)

	minted, err := Distribute(&bucket, mint, 199, 200, 700, 777)
	require.NoError(t, err)
	assert.Equal(t, uint64(1792), minted)
	assert.Equal(t, uint64(2000+1792), coin.Value(bucket))
}

func TestDistributeZeroAmountIsNoop(t *testing.T) {
	mint := coin.NewMintAuthority[coin.StakeToken]()
	bucket := coin.Mint(10, mint)

	minted, err := Distribute(&bucket, mint, 0, 200, 700, 777)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), minted)
	assert.Equal(t, uint64(10), coin.Value(bucket))
}
