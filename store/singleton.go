// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

// Singleton is a single named RLP-encoded record, used for the
// process-wide roots (ValidatorSet, ValidatorPerformance, framework
// config) that live at a well-known key rather than keyed by address.
type Singleton[V any] struct {
	db  *DB
	key []byte
}

func NewSingleton[V any](db *DB, name string) *Singleton[V] {
	return &Singleton[V]{db: db, key: []byte("singleton:" + name)}
}

func (s *Singleton[V]) Get() (value V, ok bool, err error) {
	raw, found, err := s.db.Get(s.key)
	if err != nil || !found {
		return value, found, err
	}
	if err := decodeValue(raw, &value); err != nil {
		return value, false, err
	}
	return value, true, nil
}

func (s *Singleton[V]) Set(value V) error {
	buf, err := encodeValue(value)
	if err != nil {
		return err
	}
	return s.db.Put(s.key, buf)
}
