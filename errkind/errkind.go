// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package errkind defines the tagged error discriminants of spec §7, in
// the same spirit as the teacher's reverts.ErrRevert but carrying a
// machine-checkable Kind rather than only a free-text message, so callers
// can branch on errors.Is / Of instead of string matching.
package errkind

import "fmt"

// Kind is one of the tagged discriminants from spec §7.
type Kind string

const (
	// Auth
	NotOperator       Kind = "NotOperator"
	AlreadyRegistered Kind = "AlreadyRegistered"
	SetChangeDisabled Kind = "SetChangeDisabled"

	// Validation
	InvalidPublicKey     Kind = "InvalidPublicKey"
	InvalidStakeAmount   Kind = "InvalidStakeAmount"
	StakeTooLow          Kind = "StakeTooLow"
	StakeTooHigh         Kind = "StakeTooHigh"
	StakeExceedsMax      Kind = "StakeExceedsMax"
	ValidatorSetTooLarge Kind = "ValidatorSetTooLarge"
	LockTimeTooShort     Kind = "LockTimeTooShort"
	LockTimeTooLong      Kind = "LockTimeTooLong"

	// State
	ValidatorConfigMissing Kind = "ValidatorConfigMissing"
	AlreadyActive          Kind = "AlreadyActive"
	NotValidator           Kind = "NotValidator"
	LastValidator          Kind = "LastValidator"
	NoCoinsToWithdraw      Kind = "NoCoinsToWithdraw"
	WithdrawNotAllowed     Kind = "WithdrawNotAllowed"

	// Coin ledger surfaces (spec §7 propagation policy: these abort in
	// user paths and are structurally unreachable in the epoch engine).
	InsufficientActive Kind = "InsufficientActive"
)

// Error carries a tagged Kind plus a human-readable message, analogous to
// the teacher's reverts.ErrRevert but with a machine-checkable Kind field
// added so callers can branch without string matching.
type Error struct {
	Kind    Kind
	Message string
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is(err, errkind.New(KindX, "")) match purely on Kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Of reports whether err is an *Error of the given kind.
func Of(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
