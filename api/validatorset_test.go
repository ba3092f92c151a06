// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecore/validatorcore/store"
	"github.com/stakecore/validatorcore/validatorconfig"
	"github.com/stakecore/validatorcore/validatorset"
)

func newTestValidatorSetInterface(t *testing.T) (*ValidatorSetInterface, *validatorset.Registry) {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	set := validatorset.NewRegistry(db)
	return NewValidatorSetInterface(set), set
}

func TestGetValidatorSetReflectsRegistryContents(t *testing.T) {
	vi, registry := newTestValidatorSetInterface(t)

	addr := common.HexToAddress("0x0202020202020202020202020202020202020202")
	require.NoError(t, registry.WithSet(func(s *validatorset.Set) error {
		return s.Join(validatorset.ValidatorInfo{
			Addr:        addr,
			VotingPower: 100,
			Config:      validatorconfig.ValidatorConfig{ValidatorIndex: 0},
		})
	}))

	view, err := vi.GetValidatorSet()
	require.NoError(t, err)
	require.Len(t, view.PendingActive, 1)
	assert.Equal(t, addr, view.PendingActive[0].Address)
	assert.Equal(t, uint64(100), view.PendingActive[0].VotingPower)
}

func TestGetHealthReportsSetSizes(t *testing.T) {
	vi, _ := newTestValidatorSetInterface(t)
	health, err := vi.GetHealth()
	require.NoError(t, err)
	assert.Equal(t, 0, health.ActiveSetSize)
	assert.False(t, health.Bootstrapped)
}
