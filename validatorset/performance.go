// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

// UpdateStatistics increments proposal counters for the given indices.
// It must never abort (spec §4.2, §5 "critical non-abort contracts"): any
// index outside [0, len(Validators)) is silently skipped rather than
// causing a panic or error, since this is invoked every block from the
// block prologue and a malformed or stale index must not halt consensus.
func (p *PerformanceSet) UpdateStatistics(proposer *uint64, failedIndices []uint64) {
	for _, idx := range failedIndices {
		if idx >= uint64(len(p.Validators)) {
			continue
		}
		p.Validators[idx].Failed++
	}
	if proposer != nil && *proposer < uint64(len(p.Validators)) {
		p.Validators[*proposer].Successful++
	}
}

// Reset replaces Validators with a parallel all-zero sequence of length
// n — epoch step §4.4.5, run after the active set has been rebuilt.
func (p *PerformanceSet) Reset(n int) {
	p.Validators = make([]Performance, n)
}
