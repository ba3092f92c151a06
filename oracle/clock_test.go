// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFakeClockStartsAtGivenValue(t *testing.T) {
	c := NewFakeClock(1000)
	assert.Equal(t, uint64(1000), c.NowSeconds())
}

func TestFakeClockFastForwardAdvances(t *testing.T) {
	c := NewFakeClock(1000)
	c.FastForward(3600)
	assert.Equal(t, uint64(4600), c.NowSeconds())
}

func TestFakeClockSetNowSecondsNeverRegresses(t *testing.T) {
	c := NewFakeClock(1000)
	c.SetNowSeconds(500)
	assert.Equal(t, uint64(1000), c.NowSeconds())

	c.SetNowSeconds(2000)
	assert.Equal(t, uint64(2000), c.NowSeconds())
}

func TestSystemClockReturnsPositiveValue(t *testing.T) {
	c := SystemClock{}
	assert.Greater(t, c.NowSeconds(), uint64(0))
}
