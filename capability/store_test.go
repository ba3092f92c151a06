// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package capability

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecore/validatorcore/store"
)

var holder = common.HexToAddress("0x3333333333333333333333333333333333333333")

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestStoreMintThenExtractThenDeposit(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Mint(holder))

	cap, err := s.Extract(holder)
	require.NoError(t, err)
	assert.Equal(t, holder, cap.PoolAddress())

	_, err = s.Extract(holder)
	assert.Error(t, err, "slot must be empty after extraction")

	require.NoError(t, s.Deposit(holder, cap))
	cap2, err := s.Extract(holder)
	require.NoError(t, err)
	assert.Equal(t, holder, cap2.PoolAddress())
}

func TestStoreMintTwiceFails(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Mint(holder))
	err := s.Mint(holder)
	assert.Error(t, err)
}

func TestStoreExtractMissingFails(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Extract(holder)
	assert.Error(t, err)
}

func TestStoreDepositOntoOccupiedSlotFails(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Mint(holder))
	err := s.Deposit(holder, Mint(poolAddr))
	assert.Error(t, err)
}
