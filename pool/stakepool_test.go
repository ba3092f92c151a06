// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakecore/validatorcore/coin"
	"github.com/stakecore/validatorcore/errkind"
)

var owner = common.HexToAddress("0x1111111111111111111111111111111111111111")

func TestNewPoolOwnedByOwner(t *testing.T) {
	p := New(owner)
	assert.Equal(t, owner, p.OperatorAddress)
	assert.Equal(t, owner, p.DelegatedVoter)
	total, err := p.TotalValue()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)
}

func TestAddStakeNonMemberGoesActive(t *testing.T) {
	p := New(owner)
	mint := coin.NewMintAuthority[coin.StakeToken]()
	require.NoError(t, p.AddStake(coin.Mint(100, mint), false))
	assert.Equal(t, uint64(100), coin.Value(p.Active))
	assert.Equal(t, uint64(0), coin.Value(p.PendingActive))
}

func TestAddStakeMemberGoesPendingActive(t *testing.T) {
	p := New(owner)
	mint := coin.NewMintAuthority[coin.StakeToken]()
	require.NoError(t, p.AddStake(coin.Mint(100, mint), true))
	assert.Equal(t, uint64(0), coin.Value(p.Active))
	assert.Equal(t, uint64(100), coin.Value(p.PendingActive))
}

func TestUnlockZeroIsNoop(t *testing.T) {
	p := New(owner)
	mint := coin.NewMintAuthority[coin.StakeToken]()
	p.Active = coin.Mint(100, mint)
	require.NoError(t, p.Unlock(0))
	assert.Equal(t, uint64(100), coin.Value(p.Active))
	assert.Equal(t, uint64(0), coin.Value(p.PendingInactive))
}

func TestUnlockMovesActiveToPendingInactive(t *testing.T) {
	p := New(owner)
	mint := coin.NewMintAuthority[coin.StakeToken]()
	p.Active = coin.Mint(100, mint)
	require.NoError(t, p.Unlock(40))
	assert.Equal(t, uint64(60), coin.Value(p.Active))
	assert.Equal(t, uint64(40), coin.Value(p.PendingInactive))
}

func TestUnlockInsufficientActiveFails(t *testing.T) {
	p := New(owner)
	mint := coin.NewMintAuthority[coin.StakeToken]()
	p.Active = coin.Mint(10, mint)
	err := p.Unlock(11)
	assert.True(t, errkind.Of(err, errkind.InsufficientActive))
}

func TestWithdrawCapsAtInactiveValue(t *testing.T) {
	p := New(owner)
	mint := coin.NewMintAuthority[coin.StakeToken]()
	p.Inactive = coin.Mint(30, mint)

	out, err := p.Withdraw(50, 0, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), coin.Value(out))
	assert.Equal(t, uint64(0), coin.Value(p.Inactive))
}

func TestWithdrawNoBalanceFails(t *testing.T) {
	p := New(owner)
	_, err := p.Withdraw(10, 0, false)
	assert.True(t, errkind.Of(err, errkind.NoCoinsToWithdraw))
}

func TestWithdrawSweepsExpiredLockupFirst(t *testing.T) {
	p := New(owner)
	mint := coin.NewMintAuthority[coin.StakeToken]()
	p.PendingInactive = coin.Mint(50, mint)
	p.LockedUntilSecs = 100

	out, err := p.Withdraw(50, 100, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), coin.Value(out))
}

func TestPromotePendingActiveMovesToActive(t *testing.T) {
	p := New(owner)
	mint := coin.NewMintAuthority[coin.StakeToken]()
	p.Active = coin.Mint(100, mint)
	p.PendingActive = coin.Mint(50, mint)
	require.NoError(t, p.PromotePendingActive())
	assert.Equal(t, uint64(150), coin.Value(p.Active))
	assert.Equal(t, uint64(0), coin.Value(p.PendingActive))
}

func TestReleaseExpiredPendingInactiveRequiresExpiry(t *testing.T) {
	p := New(owner)
	mint := coin.NewMintAuthority[coin.StakeToken]()
	p.PendingInactive = coin.Mint(100, mint)
	p.LockedUntilSecs = 200

	require.NoError(t, p.ReleaseExpiredPendingInactive(100))
	assert.Equal(t, uint64(100), coin.Value(p.PendingInactive))

	require.NoError(t, p.ReleaseExpiredPendingInactive(200))
	assert.Equal(t, uint64(0), coin.Value(p.PendingInactive))
	assert.Equal(t, uint64(100), coin.Value(p.Inactive))
}

func TestIncreaseLockupNeverShortens(t *testing.T) {
	p := New(owner)
	p.LockedUntilSecs = 500
	p.IncreaseLockup(100, 300) // 100+300=400 < 500, stays 500
	assert.Equal(t, uint64(500), p.LockedUntilSecs)

	p.IncreaseLockup(600, 300) // 600+300=900 > 500
	assert.Equal(t, uint64(900), p.LockedUntilSecs)
}

func TestAutoRenewLockupOnlyWhenExpired(t *testing.T) {
	p := New(owner)
	p.LockedUntilSecs = 1000
	p.AutoRenewLockup(500, 100)
	assert.Equal(t, uint64(1000), p.LockedUntilSecs)

	p.AutoRenewLockup(1000, 100)
	assert.Equal(t, uint64(1100), p.LockedUntilSecs)
}

func TestVotingPowerIsActivePlusPendingInactive(t *testing.T) {
	p := New(owner)
	mint := coin.NewMintAuthority[coin.StakeToken]()
	p.Active = coin.Mint(100, mint)
	p.PendingInactive = coin.Mint(50, mint)
	vp, err := p.VotingPower()
	require.NoError(t, err)
	assert.Equal(t, uint64(150), vp)
}
