// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecore/validatorcore/errkind"
)

func addr(n byte) common.Address {
	var a common.Address
	a[len(a)-1] = n
	return a
}

func TestJoinAppendsToPendingActive(t *testing.T) {
	s := &Set{}
	require.NoError(t, s.Join(ValidatorInfo{Addr: addr(1)}))
	assert.Equal(t, StatusPendingActive, s.State(addr(1)))
}

func TestJoinRejectsDuplicateMembership(t *testing.T) {
	s := &Set{}
	require.NoError(t, s.Join(ValidatorInfo{Addr: addr(1)}))
	err := s.Join(ValidatorInfo{Addr: addr(1)})
	assert.True(t, errkind.Of(err, errkind.AlreadyActive))
}

func TestJoinRejectsAtCapacity(t *testing.T) {
	s := &Set{Active: make([]ValidatorInfo, MaxValidatorSetSize)}
	err := s.Join(ValidatorInfo{Addr: addr(1)})
	assert.True(t, errkind.Of(err, errkind.ValidatorSetTooLarge))
}

func TestLeaveMovesActiveToPendingInactive(t *testing.T) {
	s := &Set{Active: []ValidatorInfo{{Addr: addr(1)}, {Addr: addr(2)}}}
	require.NoError(t, s.Leave(addr(1)))
	assert.Equal(t, StatusPendingInactive, s.State(addr(1)))
	assert.Equal(t, StatusActive, s.State(addr(2)))
	assert.Len(t, s.Active, 1)
}

func TestLeaveRejectsNonMember(t *testing.T) {
	s := &Set{Active: []ValidatorInfo{{Addr: addr(1)}}}
	err := s.Leave(addr(2))
	assert.True(t, errkind.Of(err, errkind.NotValidator))
}

func TestLeaveRejectsLastValidator(t *testing.T) {
	s := &Set{Active: []ValidatorInfo{{Addr: addr(1)}}}
	err := s.Leave(addr(1))
	assert.True(t, errkind.Of(err, errkind.LastValidator))
}

func TestIsCurrentEpochValidator(t *testing.T) {
	s := &Set{
		Active:          []ValidatorInfo{{Addr: addr(1)}},
		PendingInactive: []ValidatorInfo{{Addr: addr(2)}},
		PendingActive:   []ValidatorInfo{{Addr: addr(3)}},
	}
	assert.True(t, s.IsCurrentEpochValidator(addr(1)))
	assert.True(t, s.IsCurrentEpochValidator(addr(2)))
	assert.False(t, s.IsCurrentEpochValidator(addr(3)))
	assert.False(t, s.IsCurrentEpochValidator(addr(4)))
}

// TestUpdateStatisticsSkipsOutOfBoundsIndices reproduces end-to-end
// scenario 5: invoking with an out-of-bounds proposer and an out-of-bounds
// failed index must not panic and must only touch the valid entries.
func TestUpdateStatisticsSkipsOutOfBoundsIndices(t *testing.T) {
	perf := &PerformanceSet{Validators: make([]Performance, 2)}
	proposer := uint64(100)
	assert.NotPanics(t, func() {
		perf.UpdateStatistics(&proposer, []uint64{100})
	})
	assert.Equal(t, Performance{}, perf.Validators[0])
	assert.Equal(t, Performance{}, perf.Validators[1])
}

func TestUpdateStatisticsIncrementsValidIndices(t *testing.T) {
	perf := &PerformanceSet{Validators: make([]Performance, 2)}
	proposer := uint64(0)
	perf.UpdateStatistics(&proposer, []uint64{1})
	assert.Equal(t, uint32(1), perf.Validators[0].Successful)
	assert.Equal(t, uint32(1), perf.Validators[1].Failed)
}

func TestResetReplacesWithZeroedSlice(t *testing.T) {
	perf := &PerformanceSet{Validators: []Performance{{Successful: 5}}}
	perf.Reset(3)
	assert.Len(t, perf.Validators, 3)
	assert.Equal(t, Performance{}, perf.Validators[0])
}
