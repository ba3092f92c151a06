// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorconfig

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecore/validatorcore/errkind"
	"github.com/stakecore/validatorcore/store"
)

var addr = common.HexToAddress("0x4444444444444444444444444444444444444444")

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestIsEmptyWithNoPubkey(t *testing.T) {
	assert.True(t, ValidatorConfig{}.IsEmpty())
	assert.False(t, ValidatorConfig{ConsensusPubkey: []byte{1}}.IsEmpty())
}

func TestGetMissingReturnsNotOk(t *testing.T) {
	s := newTestStore(t)
	_, ok, err := s.Get(addr)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMustGetMissingFails(t *testing.T) {
	s := newTestStore(t)
	_, err := s.MustGet(addr)
	assert.True(t, errkind.Of(err, errkind.ValidatorConfigMissing))
}

func TestSetThenGetRoundTrips(t *testing.T) {
	s := newTestStore(t)
	cfg := ValidatorConfig{ConsensusPubkey: []byte{1, 2, 3}, ValidatorIndex: 5}
	require.NoError(t, s.Set(addr, cfg))

	got, err := s.MustGet(addr)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
