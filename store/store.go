// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package store provides the persistent key/value substrate the staking
// core is built on: a goleveldb-backed database fronted by an LRU read
// cache, and a generic Mapping[K, V] typed accessor in the style of a
// Solidity storage mapping.
package store

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// DB wraps a goleveldb handle. A DB constructed via OpenMemory is backed by
// an in-memory storage.Storage, convenient for tests and for genesis
// dry-runs.
type DB struct {
	ldb *leveldb.DB
}

// Open opens (or creates) a durable LevelDB database at path.
func Open(path string) (*DB, error) {
	ldb, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &DB{ldb: ldb}, nil
}

// OpenMemory opens an ephemeral in-memory database, used by tests and by
// one-shot tools that never persist state across process restarts.
func OpenMemory() (*DB, error) {
	ldb, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &DB{ldb: ldb}, nil
}

func (db *DB) Close() error {
	return db.ldb.Close()
}

func (db *DB) Get(key []byte) ([]byte, bool, error) {
	val, err := db.ldb.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (db *DB) Put(key, val []byte) error {
	return db.ldb.Put(key, val, nil)
}

func (db *DB) Delete(key []byte) error {
	return db.ldb.Delete(key, nil)
}

// Iterate walks all keys sharing prefix in lexicographic order, calling fn
// for each. Iteration stops early if fn returns false.
func (db *DB) Iterate(prefix []byte, fn func(key, val []byte) bool) error {
	iter := db.ldb.NewIterator(bytesPrefixRange(prefix), nil)
	defer iter.Release()
	for iter.Next() {
		if !fn(iter.Key(), iter.Value()) {
			break
		}
	}
	return iter.Error()
}
