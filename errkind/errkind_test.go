// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package errkind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfMatchesKind(t *testing.T) {
	err := New(StakeTooLow, "below minimum")
	assert.True(t, Of(err, StakeTooLow))
	assert.False(t, Of(err, StakeTooHigh))
}

func TestOfRejectsNonErrkindError(t *testing.T) {
	assert.False(t, Of(errors.New("plain"), StakeTooLow))
}

func TestErrorsIsMatchesOnKindOnly(t *testing.T) {
	a := New(NotOperator, "first message")
	b := New(NotOperator, "different message")
	assert.True(t, errors.Is(a, b))
}

func TestErrorsIsRejectsDifferentKind(t *testing.T) {
	a := New(NotOperator, "msg")
	b := New(StakeTooLow, "msg")
	assert.False(t, errors.Is(a, b))
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(InsufficientActive, "wanted %d, had %d", 10, 5)
	assert.Equal(t, "InsufficientActive: wanted 10, had 5", err.Error())
}
