// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/stakecore/validatorcore/store"
)

// Registry persists the Set and PerformanceSet singletons at the
// framework root. A single mutex serializes access to these process-wide
// roots (SPEC_FULL §5.1) — additive safety on top of the host runtime's
// own single-threaded-per-transaction guarantee (spec §5).
type Registry struct {
	mu          sync.Mutex
	setRoot     *store.Singleton[Set]
	perfRoot    *store.Singleton[PerformanceSet]
}

func NewRegistry(db *store.DB) *Registry {
	return &Registry{
		setRoot:  store.NewSingleton[Set](db, "validatorset"),
		perfRoot: store.NewSingleton[PerformanceSet](db, "validatorperformance"),
	}
}

// Load returns the current Set and PerformanceSet, or their zero values
// if genesis has not yet run.
func (r *Registry) Load() (Set, PerformanceSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *Registry) loadLocked() (Set, PerformanceSet, error) {
	set, _, err := r.setRoot.Get()
	if err != nil {
		return Set{}, PerformanceSet{}, errors.Wrap(err, "validatorset registry: load set")
	}
	perf, _, err := r.perfRoot.Get()
	if err != nil {
		return Set{}, PerformanceSet{}, errors.Wrap(err, "validatorset registry: load performance")
	}
	return set, perf, nil
}

// Save persists set and perf.
func (r *Registry) Save(set Set, perf PerformanceSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(set, perf)
}

func (r *Registry) saveLocked(set Set, perf PerformanceSet) error {
	if err := r.setRoot.Set(set); err != nil {
		return errors.Wrap(err, "validatorset registry: save set")
	}
	if err := r.perfRoot.Set(perf); err != nil {
		return errors.Wrap(err, "validatorset registry: save performance")
	}
	return nil
}

// WithSet loads the current Set, runs fn against it, and persists the
// result iff fn returns a nil error — a small transactional helper so
// every join/leave call site doesn't hand-roll the load/mutate/save
// sequence under the lock.
func (r *Registry) WithSet(fn func(*Set) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, perf, err := r.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(&set); err != nil {
		return err
	}
	return r.saveLocked(set, perf)
}

// UpdatePerformanceStatistics is the privileged, never-abort entry point
// exposed to the block prologue (spec §4.2, §6). Out-of-bounds indices
// are defensively skipped by PerformanceSet.UpdateStatistics itself, so
// this wrapper cannot fail except on a storage I/O error.
func (r *Registry) UpdatePerformanceStatistics(proposer *uint64, failedIndices []uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, perf, err := r.loadLocked()
	if err != nil {
		return err
	}
	perf.UpdateStatistics(proposer, failedIndices)
	return r.saveLocked(set, perf)
}

// WithBoth loads both Set and PerformanceSet, runs fn, and persists the
// result iff fn returns a nil error. Used by the epoch engine, which
// mutates both singletons in one atomic step.
func (r *Registry) WithBoth(fn func(*Set, *PerformanceSet) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, perf, err := r.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(&set, &perf); err != nil {
		return err
	}
	return r.saveLocked(set, perf)
}
