// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package framework tracks the lifecycle of the three process-wide
// singletons that live "at the framework address" (spec §5): the
// ValidatorSet, ValidatorPerformance and MintAuthority roots. The set and
// performance registries are owned by package validatorset; this package
// owns the one-shot creation guard for MintAuthority/BurnAuthority, since
// those capabilities are never stored as data (they carry no state) but
// must still be creatable exactly once.
package framework

import (
	"github.com/pkg/errors"

	"github.com/stakecore/validatorcore/coin"
	"github.com/stakecore/validatorcore/store"
)

// Root is the single persisted record proving genesis has run and the
// mint/burn authorities exist.
type Root struct {
	Bootstrapped bool
}

// Roots persists the framework Root.
type Roots struct {
	root *store.Singleton[Root]
}

func NewRoots(db *store.DB) *Roots {
	return &Roots{root: store.NewSingleton[Root](db, "framework-root")}
}

// IsBootstrapped reports whether genesis has already run.
func (r *Roots) IsBootstrapped() (bool, error) {
	root, ok, err := r.root.Get()
	if err != nil {
		return false, errors.Wrap(err, "framework: load root")
	}
	return ok && root.Bootstrapped, nil
}

// Bootstrap marks genesis as complete and returns the one-and-only
// MintAuthority/BurnAuthority pair. Calling this a second time is
// rejected — creation beyond genesis is impossible (spec §3).
func (r *Roots) Bootstrap() (coin.MintAuthority[coin.StakeToken], coin.BurnAuthority[coin.StakeToken], error) {
	done, err := r.IsBootstrapped()
	if err != nil {
		return coin.MintAuthority[coin.StakeToken]{}, coin.BurnAuthority[coin.StakeToken]{}, err
	}
	if done {
		return coin.MintAuthority[coin.StakeToken]{}, coin.BurnAuthority[coin.StakeToken]{}, errors.New("framework: genesis has already run, mint/burn authorities cannot be recreated")
	}
	if err := r.root.Set(Root{Bootstrapped: true}); err != nil {
		return coin.MintAuthority[coin.StakeToken]{}, coin.BurnAuthority[coin.StakeToken]{}, errors.Wrap(err, "framework: persist bootstrap marker")
	}
	return coin.NewMintAuthority[coin.StakeToken](), coin.NewBurnAuthority[coin.StakeToken](), nil
}

// LoadMintAuthority reconstructs the MintAuthority value for a process
// that is resuming against an already-bootstrapped store. This is safe
// only because MintAuthority carries no unique secret state in this
// reimplementation (spec §9 "Replacing module-scoped friend access") —
// callers MUST still gate access to this function the way genesis and
// the epoch engine's own wiring do, restricting it to the framework's own
// startup path rather than exposing it to arbitrary callers.
func (r *Roots) LoadMintAuthority() (coin.MintAuthority[coin.StakeToken], error) {
	done, err := r.IsBootstrapped()
	if err != nil {
		return coin.MintAuthority[coin.StakeToken]{}, err
	}
	if !done {
		return coin.MintAuthority[coin.StakeToken]{}, errors.New("framework: genesis has not run yet")
	}
	return coin.NewMintAuthority[coin.StakeToken](), nil
}
