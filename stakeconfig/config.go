// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakeconfig provides the Config Provider external collaborator
// (spec §1, §6): a read-only source of staking policy. The staking core
// never mutates this configuration; it is owned by governance and
// refreshed out of band.
package stakeconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StakingConfig is the policy surface consumed by the staking core.
type StakingConfig struct {
	MinStake                uint64 `yaml:"min_stake"`
	MaxStake                uint64 `yaml:"max_stake"`
	RecurringLockupSecs     uint64 `yaml:"recurring_lockup_secs"`
	AllowValidatorSetChange bool   `yaml:"allow_validator_set_change"`
	RewardRate              uint64 `yaml:"reward_rate"`
	RewardRateDenominator   uint64 `yaml:"reward_rate_denominator"`
}

// Provider is the interface the staking core depends on. Production code
// talks only to this interface, never to a concrete implementation, so the
// config source can be swapped (file, on-chain governance object, test
// fixture) without touching the core.
type Provider interface {
	Get() (StakingConfig, error)
}

// GetRequiredStake returns (min, max) from cfg.
func GetRequiredStake(cfg StakingConfig) (min, max uint64) {
	return cfg.MinStake, cfg.MaxStake
}

// GetRecurringLockupDuration returns the lockup renewal window in seconds.
func GetRecurringLockupDuration(cfg StakingConfig) uint64 {
	return cfg.RecurringLockupSecs
}

// GetRewardRate returns (rate, denominator).
func GetRewardRate(cfg StakingConfig) (rate, denom uint64) {
	return cfg.RewardRate, cfg.RewardRateDenominator
}

// GetAllowValidatorSetChange reports whether join/leave are currently
// permitted.
func GetAllowValidatorSetChange(cfg StakingConfig) bool {
	return cfg.AllowValidatorSetChange
}

// StaticProvider serves a fixed, in-memory configuration. Used in tests and
// as a minimal production adapter when policy is baked into genesis and
// never updated live.
type StaticProvider struct {
	cfg StakingConfig
}

func NewStaticProvider(cfg StakingConfig) *StaticProvider {
	return &StaticProvider{cfg: cfg}
}

func (p *StaticProvider) Get() (StakingConfig, error) {
	return p.cfg, nil
}

// FileProvider reloads a YAML-encoded StakingConfig from disk on every
// Get call, the way thor's node re-reads its forkconfig/params files.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Get() (StakingConfig, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return StakingConfig{}, fmt.Errorf("stakeconfig: read %s: %w", p.path, err)
	}
	var cfg StakingConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return StakingConfig{}, fmt.Errorf("stakeconfig: parse %s: %w", p.path, err)
	}
	return cfg, nil
}
