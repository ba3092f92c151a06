// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecore/validatorcore/coin"
	"github.com/stakecore/validatorcore/errkind"
	"github.com/stakecore/validatorcore/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestCreateThenGetRoundTrips(t *testing.T) {
	s := newTestStore(t)
	p := New(owner)
	require.NoError(t, s.Create(owner, p))

	got, ok, err := s.Get(owner)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, owner, got.OperatorAddress)
}

func TestCreateTwiceFails(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create(owner, New(owner)))
	err := s.Create(owner, New(owner))
	assert.True(t, errkind.Of(err, errkind.AlreadyRegistered))
}

func TestMustGetMissingFails(t *testing.T) {
	s := newTestStore(t)
	_, err := s.MustGet(owner)
	assert.True(t, errkind.Of(err, errkind.ValidatorConfigMissing))
}

func TestSetOverwritesPoolBalances(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Create(owner, New(owner)))

	mint := coin.NewMintAuthority[coin.StakeToken]()
	p, err := s.MustGet(owner)
	require.NoError(t, err)
	p.Active = coin.Mint(100, mint)
	require.NoError(t, s.Set(owner, p))

	got, err := s.MustGet(owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), coin.Value(got.Active))
}

func TestEmitAssignsIncrementingSequenceNumbers(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Emit(owner, EventAddStake, 0, 100, owner))
	require.NoError(t, s.Emit(owner, EventAddStake, 100, 200, owner))

	events, err := s.Events(owner, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(0), events[0].Seq)
	assert.Equal(t, uint64(1), events[1].Seq)
	assert.Equal(t, uint64(200), events[1].After)
}

func TestEventsFromOffsetSkipsEarlierEntries(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Emit(owner, EventAddStake, 0, 1, owner))
	require.NoError(t, s.Emit(owner, EventAddStake, 1, 2, owner))
	require.NoError(t, s.Emit(owner, EventAddStake, 2, 3, owner))

	events, err := s.Events(owner, 2)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(2), events[0].Seq)
}
