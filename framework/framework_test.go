// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecore/validatorcore/store"
)

func newTestRoots(t *testing.T) *Roots {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRoots(db)
}

func TestIsBootstrappedFalseBeforeGenesis(t *testing.T) {
	r := newTestRoots(t)
	done, err := r.IsBootstrapped()
	require.NoError(t, err)
	assert.False(t, done)
}

func TestBootstrapMarksDoneAndReturnsAuthorities(t *testing.T) {
	r := newTestRoots(t)
	_, _, err := r.Bootstrap()
	require.NoError(t, err)

	done, err := r.IsBootstrapped()
	require.NoError(t, err)
	assert.True(t, done)
}

func TestBootstrapTwiceFails(t *testing.T) {
	r := newTestRoots(t)
	_, _, err := r.Bootstrap()
	require.NoError(t, err)

	_, _, err = r.Bootstrap()
	assert.Error(t, err)
}

func TestLoadMintAuthorityBeforeBootstrapFails(t *testing.T) {
	r := newTestRoots(t)
	_, err := r.LoadMintAuthority()
	assert.Error(t, err)
}

func TestLoadMintAuthorityAfterBootstrapSucceeds(t *testing.T) {
	r := newTestRoots(t)
	_, _, err := r.Bootstrap()
	require.NoError(t, err)

	_, err = r.LoadMintAuthority()
	assert.NoError(t, err)
}
