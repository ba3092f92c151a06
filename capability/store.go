// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package capability

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/stakecore/validatorcore/errkind"
	"github.com/stakecore/validatorcore/store"
)

type holderKey common.Address

func (k holderKey) Bytes() []byte { return common.Address(k).Bytes() }

// Store persists exactly one OwnerCapability slot per holder address,
// standing in for the "account resource storage" a holder keeps its
// capability inside on the original platform.
type Store struct {
	caps *store.Mapping[holderKey, OwnerCapability]
}

func NewStore(db *store.DB) *Store {
	return &Store{caps: store.NewMapping[holderKey, OwnerCapability](db, "ownercap", 1024)}
}

// Mint creates a fresh capability for pool and deposits it under holder —
// used once by initialize_validator/initialize_owner_only.
func (s *Store) Mint(holder common.Address) error {
	if _, exists, err := s.caps.Get(holderKey(holder)); err != nil {
		return errors.Wrap(err, "capability store: check existing")
	} else if exists {
		return errkind.New(errkind.AlreadyRegistered, "holder already has an owner capability stored")
	}
	return s.set(holder, Mint(holder))
}

// Extract removes the capability at holder and returns a usable
// (non-consumed) copy, leaving the stored slot empty.
func (s *Store) Extract(holder common.Address) (OwnerCapability, error) {
	stored, ok, err := s.caps.Get(holderKey(holder))
	if err != nil {
		return OwnerCapability{}, errors.Wrap(err, "capability store: get")
	}
	if !ok {
		return OwnerCapability{}, errkind.New(errkind.NotOperator, "no owner capability stored at this address")
	}
	out, err := Extract(&stored)
	if err != nil {
		return OwnerCapability{}, err
	}
	if err := s.caps.Delete(holderKey(holder)); err != nil {
		return OwnerCapability{}, errors.Wrap(err, "capability store: clear extracted slot")
	}
	return out, nil
}

// Deposit installs cap under holder. holder's slot must currently be
// empty.
func (s *Store) Deposit(holder common.Address, cap OwnerCapability) error {
	if _, exists, err := s.caps.Get(holderKey(holder)); err != nil {
		return errors.Wrap(err, "capability store: check existing")
	} else if exists {
		return errkind.New(errkind.AlreadyRegistered, "holder already has an owner capability stored")
	}
	return s.set(holder, cap)
}

func (s *Store) set(holder common.Address, cap OwnerCapability) error {
	if err := s.caps.Set(holderKey(holder), cap); err != nil {
		return errors.Wrap(err, "capability store: set")
	}
	return nil
}
