// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testKey uint64

func (k testKey) Bytes() []byte {
	return []byte{byte(k), byte(k >> 8), byte(k >> 16), byte(k >> 24)}
}

type testValue struct {
	A uint64
	B string
}

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMappingGetMissingReturnsNotOk(t *testing.T) {
	db := newTestDB(t)
	m := NewMapping[testKey, testValue](db, "test", 0)
	_, ok, err := m.Get(testKey(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMappingSetThenGetRoundTrips(t *testing.T) {
	db := newTestDB(t)
	m := NewMapping[testKey, testValue](db, "test", 0)

	require.NoError(t, m.Set(testKey(1), testValue{A: 42, B: "hello"}))
	got, ok, err := m.Get(testKey(1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testValue{A: 42, B: "hello"}, got)
}

func TestMappingDeleteRemovesEntry(t *testing.T) {
	db := newTestDB(t)
	m := NewMapping[testKey, testValue](db, "test", 0)
	require.NoError(t, m.Set(testKey(1), testValue{A: 1}))
	require.NoError(t, m.Delete(testKey(1)))
	_, ok, err := m.Get(testKey(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMappingNamespacesByPrefix(t *testing.T) {
	db := newTestDB(t)
	a := NewMapping[testKey, testValue](db, "a", 0)
	b := NewMapping[testKey, testValue](db, "b", 0)

	require.NoError(t, a.Set(testKey(1), testValue{A: 1}))
	_, ok, err := b.Get(testKey(1))
	require.NoError(t, err)
	assert.False(t, ok, "mappings with different prefixes must not collide")
}

func TestMappingGetHitsCacheWithoutTouchingDB(t *testing.T) {
	db := newTestDB(t)
	m := NewMapping[testKey, testValue](db, "test", 4)
	require.NoError(t, m.Set(testKey(1), testValue{A: 7}))

	require.NoError(t, db.Delete(m.slotKey(testKey(1))))

	got, ok, err := m.Get(testKey(1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(7), got.A)
}

func TestSingletonGetMissingReturnsNotOk(t *testing.T) {
	db := newTestDB(t)
	s := NewSingleton[testValue](db, "root")
	_, ok, err := s.Get()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSingletonSetThenGetRoundTrips(t *testing.T) {
	db := newTestDB(t)
	s := NewSingleton[testValue](db, "root")
	require.NoError(t, s.Set(testValue{A: 9, B: "x"}))
	got, ok, err := s.Get()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testValue{A: 9, B: "x"}, got)
}
