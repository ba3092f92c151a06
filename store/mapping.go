// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"bytes"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/blake2b"
)

// Key is anything that can be turned into its canonical byte form for
// hashing into a storage key.
type Key interface {
	Bytes() []byte
}

// Mapping is a typed, cached key/value accessor over a DB, namespaced by a
// fixed prefix. It mirrors a Solidity storage mapping: keys are hashed with
// the namespace to avoid collisions between tables sharing one database.
type Mapping[K Key, V any] struct {
	db     *DB
	prefix []byte
	cache  *lru.Cache
}

// NewMapping creates a mapping namespaced by name, with an LRU read cache
// holding up to cacheSize decoded values.
func NewMapping[K Key, V any](db *DB, name string, cacheSize int) *Mapping[K, V] {
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, _ := lru.New(cacheSize)
	return &Mapping[K, V]{db: db, prefix: []byte(name), cache: cache}
}

func (m *Mapping[K, V]) slotKey(key K) []byte {
	h := blake2b.Sum256(append(append([]byte{}, m.prefix...), key.Bytes()...))
	return h[:]
}

// Get looks up key, returning the zero value of V and ok=false if absent.
func (m *Mapping[K, V]) Get(key K) (value V, ok bool, err error) {
	slot := m.slotKey(key)
	if cached, hit := m.cache.Get(string(slot)); hit {
		return cached.(V), true, nil
	}

	raw, found, err := m.db.Get(slot)
	if err != nil {
		return value, false, err
	}
	if !found {
		return value, false, nil
	}

	if err := decodeValue(raw, &value); err != nil {
		return value, false, err
	}
	m.cache.Add(string(slot), value)
	return value, true, nil
}

// Set writes value for key, replacing any previous entry.
func (m *Mapping[K, V]) Set(key K, value V) error {
	slot := m.slotKey(key)
	buf, err := encodeValue(value)
	if err != nil {
		return err
	}
	if err := m.db.Put(slot, buf); err != nil {
		return err
	}
	m.cache.Add(string(slot), value)
	return nil
}

// Delete removes key from the mapping.
func (m *Mapping[K, V]) Delete(key K) error {
	slot := m.slotKey(key)
	m.cache.Remove(string(slot))
	return m.db.Delete(slot)
}

var encodeBufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

func encodeValue(v interface{}) ([]byte, error) {
	buf := encodeBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer encodeBufPool.Put(buf)

	if err := rlp.Encode(buf, v); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func decodeValue(raw []byte, out interface{}) error {
	return rlp.DecodeBytes(raw, out)
}
