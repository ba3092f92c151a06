// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package coin

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroCoinIsEmpty(t *testing.T) {
	c := Zero[StakeToken]()
	assert.Equal(t, uint64(0), Value(c))
}

func TestMintAndValue(t *testing.T) {
	mint := NewMintAuthority[StakeToken]()
	c := Mint(100, mint)
	assert.Equal(t, uint64(100), Value(c))
}

func TestMergeAddsValues(t *testing.T) {
	mint := NewMintAuthority[StakeToken]()
	dst := Mint(40, mint)
	src := Mint(60, mint)
	require.NoError(t, Merge(&dst, src))
	assert.Equal(t, uint64(100), Value(dst))
}

func TestMergeOverflowFails(t *testing.T) {
	mint := NewMintAuthority[StakeToken]()
	dst := Coin[StakeToken]{amount: ^uint64(0)}
	src := Mint(1, mint)
	err := Merge(&dst, src)
	assert.Error(t, err)
}

func TestExtractPartial(t *testing.T) {
	mint := NewMintAuthority[StakeToken]()
	c := Mint(100, mint)
	out, err := Extract(&c, 40)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), Value(c))
	assert.Equal(t, uint64(40), Value(out))
}

func TestExtractInsufficientBalanceFails(t *testing.T) {
	mint := NewMintAuthority[StakeToken]()
	c := Mint(10, mint)
	_, err := Extract(&c, 11)
	assert.Error(t, err)
	assert.Equal(t, uint64(10), Value(c))
}

func TestExtractAllDrainsCoin(t *testing.T) {
	mint := NewMintAuthority[StakeToken]()
	c := Mint(75, mint)
	out := ExtractAll(&c)
	assert.Equal(t, uint64(0), Value(c))
	assert.Equal(t, uint64(75), Value(out))
}

func TestBurnConsumesCoin(t *testing.T) {
	mint := NewMintAuthority[StakeToken]()
	burn := NewBurnAuthority[StakeToken]()
	c := Mint(5, mint)
	Burn(c, burn)
}

// TestCoinRLPRoundTrip guards against the amount field becoming invisible
// to reflection-based RLP encoding: a Coin must decode back to the same
// value it was encoded with, not a zeroed struct.
func TestCoinRLPRoundTrip(t *testing.T) {
	mint := NewMintAuthority[StakeToken]()
	c := Mint(123456789, mint)

	var buf bytes.Buffer
	require.NoError(t, rlp.Encode(&buf, c))

	var out Coin[StakeToken]
	require.NoError(t, rlp.Decode(&buf, &out))
	assert.Equal(t, uint64(123456789), Value(out))
}
