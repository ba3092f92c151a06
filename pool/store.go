// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/stakecore/validatorcore/errkind"
	"github.com/stakecore/validatorcore/store"
)

// addressKey adapts common.Address to store.Key.
type addressKey common.Address

func (k addressKey) Bytes() []byte { return common.Address(k).Bytes() }

// Store is the persistent repository of StakePool records, one per pool
// address, plus each pool's append-only event log.
type Store struct {
	pools   *store.Mapping[addressKey, StakePool]
	seqs    *store.Mapping[addrKey, uint64]
	events  *store.Mapping[eventKey, Event]
}

func NewStore(db *store.DB) *Store {
	return &Store{
		pools:  store.NewMapping[addressKey, StakePool](db, "stakepool:pools", 1024),
		seqs:   store.NewMapping[addrKey, uint64](db, "stakepool:seqs", 1024),
		events: store.NewMapping[eventKey, Event](db, "stakepool:events", 4096),
	}
}

// Get returns the pool at addr, or ok=false if none exists.
func (s *Store) Get(addr common.Address) (StakePool, bool, error) {
	p, ok, err := s.pools.Get(addressKey(addr))
	if err != nil {
		return StakePool{}, false, errors.Wrap(err, "pool store: get")
	}
	return p, ok, nil
}

// MustGet returns the pool at addr or a ValidatorConfigMissing-flavored
// error if absent — the shape nearly every operation in spec §4.2 needs
// ("pool must already exist").
func (s *Store) MustGet(addr common.Address) (StakePool, error) {
	p, ok, err := s.Get(addr)
	if err != nil {
		return StakePool{}, err
	}
	if !ok {
		return StakePool{}, errkind.New(errkind.ValidatorConfigMissing, "no stake pool at this address")
	}
	return p, nil
}

// Create stores a brand-new pool, failing if one already exists (spec §3
// invariant: at most one StakePool per address).
func (s *Store) Create(addr common.Address, p StakePool) error {
	_, exists, err := s.Get(addr)
	if err != nil {
		return err
	}
	if exists {
		return errkind.New(errkind.AlreadyRegistered, "a stake pool already exists at this address")
	}
	return s.Set(addr, p)
}

// Set overwrites the stored pool at addr.
func (s *Store) Set(addr common.Address, p StakePool) error {
	if err := s.pools.Set(addressKey(addr), p); err != nil {
		return errors.Wrap(err, "pool store: set")
	}
	return nil
}

// Emit appends an event to addr's log, assigning the next sequence
// number. Safe to call with a zero Before/After when the event kind
// carries no scalar payload.
func (s *Store) Emit(addr common.Address, kind EventKind, before, after uint64, payloadAddr common.Address) error {
	seq, _, err := s.seqs.Get(addrKey(addr))
	if err != nil {
		return errors.Wrap(err, "pool store: load event seq")
	}
	ev := Event{
		Seq:         seq,
		Kind:        kind,
		PoolAddress: addr,
		Before:      before,
		After:       after,
		Addr:        payloadAddr,
	}
	if err := s.events.Set(eventKey{pool: addr, seq: seq}, ev); err != nil {
		return errors.Wrap(err, "pool store: append event")
	}
	return s.seqs.Set(addrKey(addr), seq+1)
}

// Events returns the events logged for addr from 'from' (inclusive)
// up to the current sequence number, in order. Intended for the
// read-only query surface (SPEC_FULL §4.9), not for hot-path logic.
func (s *Store) Events(addr common.Address, from uint64) ([]Event, error) {
	next, _, err := s.seqs.Get(addrKey(addr))
	if err != nil {
		return nil, errors.Wrap(err, "pool store: load event seq")
	}
	var out []Event
	for seq := from; seq < next; seq++ {
		ev, ok, err := s.events.Get(eventKey{pool: addr, seq: seq})
		if err != nil {
			return nil, errors.Wrap(err, "pool store: read event")
		}
		if ok {
			out = append(out, ev)
		}
	}
	return out, nil
}
