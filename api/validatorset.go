// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"github.com/stakecore/validatorcore/validatorset"
)

// ValidatorSetInterface answers read-only queries over the ValidatorSet /
// ValidatorPerformance singletons (spec §3, §4.3). It never mutates the
// registry; join/leave/epoch transition remain staking.Core's and
// epoch.Engine's responsibility.
type ValidatorSetInterface struct {
	registry *validatorset.Registry
}

func NewValidatorSetInterface(registry *validatorset.Registry) *ValidatorSetInterface {
	return &ValidatorSetInterface{registry: registry}
}

// GetValidatorSet returns the full current snapshot: the three membership
// sequences plus the performance counters parallel to Active.
func (vi *ValidatorSetInterface) GetValidatorSet() (ValidatorSetView, error) {
	set, perf, err := vi.registry.Load()
	if err != nil {
		return ValidatorSetView{}, err
	}

	perfViews := make([]PerformanceView, len(perf.Validators))
	for i, p := range perf.Validators {
		perfViews[i] = PerformanceView{Index: i, Successful: p.Successful, Failed: p.Failed}
	}

	return ValidatorSetView{
		Active:          convertValidatorInfoList(set.Active),
		PendingActive:   convertValidatorInfoList(set.PendingActive),
		PendingInactive: convertValidatorInfoList(set.PendingInactive),
		Performance:     perfViews,
	}, nil
}

// GetHealth summarizes the current set's size for the admin health
// endpoint (api/admin.go).
func (vi *ValidatorSetInterface) GetHealth() (HealthStatus, error) {
	set, _, err := vi.registry.Load()
	if err != nil {
		return HealthStatus{}, err
	}
	return HealthStatus{
		ActiveSetSize:       len(set.Active),
		PendingActiveSize:   len(set.PendingActive),
		PendingInactiveSize: len(set.PendingInactive),
	}, nil
}
