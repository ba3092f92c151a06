// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakeconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProviderServesFixedConfig(t *testing.T) {
	cfg := StakingConfig{MinStake: 100, MaxStake: 10000}
	p := NewStaticProvider(cfg)
	got, err := p.Get()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestFileProviderReadsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
min_stake: 100
max_stake: 10000
recurring_lockup_secs: 3600
allow_validator_set_change: true
reward_rate: 1
reward_rate_denominator: 100
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	p := NewFileProvider(path)
	cfg, err := p.Get()
	require.NoError(t, err)
	assert.Equal(t, StakingConfig{
		MinStake:                100,
		MaxStake:                10000,
		RecurringLockupSecs:     3600,
		AllowValidatorSetChange: true,
		RewardRate:              1,
		RewardRateDenominator:   100,
	}, cfg)
}

func TestFileProviderMissingFileFails(t *testing.T) {
	p := NewFileProvider("/nonexistent/path/config.yaml")
	_, err := p.Get()
	assert.Error(t, err)
}

func TestAccessorHelpers(t *testing.T) {
	cfg := StakingConfig{
		MinStake: 1, MaxStake: 2, RecurringLockupSecs: 3,
		AllowValidatorSetChange: true, RewardRate: 4, RewardRateDenominator: 5,
	}
	min, max := GetRequiredStake(cfg)
	assert.Equal(t, uint64(1), min)
	assert.Equal(t, uint64(2), max)
	assert.Equal(t, uint64(3), GetRecurringLockupDuration(cfg))
	rate, denom := GetRewardRate(cfg)
	assert.Equal(t, uint64(4), rate)
	assert.Equal(t, uint64(5), denom)
	assert.True(t, GetAllowValidatorSetChange(cfg))
}
