// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package oracle provides the Timestamp Oracle external collaborator
// (spec §1, §6): a monotonically non-decreasing wall-clock second
// counter that the epoch engine and lockup checks depend on.
package oracle

import (
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"
)

// Clock returns the current time as whole seconds since the Unix epoch.
// Implementations MUST be monotonically non-decreasing.
type Clock interface {
	NowSeconds() uint64
}

// SystemClock reads the OS wall clock directly.
type SystemClock struct{}

func (SystemClock) NowSeconds() uint64 {
	return uint64(time.Now().Unix())
}

// NTPDisciplinedClock periodically queries an NTP server to correct local
// clock drift, and serves NowSeconds from the local wall clock shifted by
// the offset measured at the last successful Resync, never returning less
// than a value it has already returned. Nodes that do not trust their own
// wall clock (e.g. under heavy NTP-less virtualization) can opt into this
// implementation instead of SystemClock.
type NTPDisciplinedClock struct {
	server string
	offset atomic.Int64  // seconds to add to time.Now()
	last   atomic.Uint64 // highest value NowSeconds has returned
}

// NewNTPDisciplinedClock builds a clock that queries server for the
// current offset. Call Resync periodically (e.g. from a background
// goroutine) to keep the offset fresh; NowSeconds always returns a value
// even if Resync has never succeeded, falling back to the raw local clock.
func NewNTPDisciplinedClock(server string) *NTPDisciplinedClock {
	return &NTPDisciplinedClock{server: server}
}

// Resync queries the configured NTP server once and updates the stored
// offset. It never returns a monotonic regression: callers that see an
// error should simply keep using the previous offset.
func (c *NTPDisciplinedClock) Resync() error {
	resp, err := ntp.Query(c.server)
	if err != nil {
		return err
	}
	c.offset.Store(int64(resp.ClockOffset.Seconds()))
	return nil
}

func (c *NTPDisciplinedClock) NowSeconds() uint64 {
	now := time.Now().Unix() + c.offset.Load()
	if now < 0 {
		now = 0
	}
	for {
		prev := c.last.Load()
		if uint64(now) <= prev {
			return prev
		}
		if c.last.CompareAndSwap(prev, uint64(now)) {
			return uint64(now)
		}
	}
}

// FakeClock is a manually advanced clock for deterministic tests,
// standing in for the `fast_forward` primitive used throughout spec §8's
// scenario tests.
type FakeClock struct {
	now atomic.Uint64
}

func NewFakeClock(start uint64) *FakeClock {
	c := &FakeClock{}
	c.now.Store(start)
	return c
}

func (c *FakeClock) NowSeconds() uint64 {
	return c.now.Load()
}

// FastForward advances the clock by secs seconds.
func (c *FakeClock) FastForward(secs uint64) {
	c.now.Add(secs)
}

// SetNowSeconds pins the clock to an absolute value. Never moves it
// backwards, matching the monotonicity contract real clocks must honor.
func (c *FakeClock) SetNowSeconds(v uint64) {
	for {
		cur := c.now.Load()
		if v <= cur {
			return
		}
		if c.now.CompareAndSwap(cur, v) {
			return
		}
	}
}
