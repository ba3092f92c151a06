// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package validatorconfig implements the ValidatorConfig store (spec §3):
// the per-pool consensus identity (public key, network addresses) plus a
// cached index into the active validator set. The index is a back-pointer
// into ValidatorSet.ActiveValidators — authoritative only between epoch
// boundaries (spec §9 "Replacing index-based cross-references"), and
// consumers must bounds-check it rather than trust it blindly.
package validatorconfig

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/stakecore/validatorcore/errkind"
	"github.com/stakecore/validatorcore/store"
)

// ValidatorConfig is the consensus identity attached to a pool.
type ValidatorConfig struct {
	ConsensusPubkey   []byte
	NetworkAddresses  []byte
	FullnodeAddresses []byte
	ValidatorIndex    uint64
}

// IsEmpty reports whether no consensus key has been configured yet — the
// shape initialize_owner_only leaves a pool in until the owner populates
// it before attempting to join the set (spec §4.2).
func (c ValidatorConfig) IsEmpty() bool {
	return len(c.ConsensusPubkey) == 0
}

type addressKey common.Address

func (k addressKey) Bytes() []byte { return common.Address(k).Bytes() }

// Store is the persistent repository of ValidatorConfig records, one per
// pool address.
type Store struct {
	configs *store.Mapping[addressKey, ValidatorConfig]
}

func NewStore(db *store.DB) *Store {
	return &Store{
		configs: store.NewMapping[addressKey, ValidatorConfig](db, "validatorconfig", 1024),
	}
}

func (s *Store) Get(addr common.Address) (ValidatorConfig, bool, error) {
	cfg, ok, err := s.configs.Get(addressKey(addr))
	if err != nil {
		return ValidatorConfig{}, false, errors.Wrap(err, "validatorconfig store: get")
	}
	return cfg, ok, nil
}

// MustGet returns the config at addr or ValidatorConfigMissing.
func (s *Store) MustGet(addr common.Address) (ValidatorConfig, error) {
	cfg, ok, err := s.Get(addr)
	if err != nil {
		return ValidatorConfig{}, err
	}
	if !ok {
		return ValidatorConfig{}, errkind.New(errkind.ValidatorConfigMissing, "no validator config at this address")
	}
	return cfg, nil
}

func (s *Store) Set(addr common.Address, cfg ValidatorConfig) error {
	if err := s.configs.Set(addressKey(addr), cfg); err != nil {
		return errors.Wrap(err, "validatorconfig store: set")
	}
	return nil
}
