// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the precondition failures of staker operations.
// They are detected before any state change and reported to the caller verbatim.
package reverts

import (
	"errors"
)

type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

var (
	ErrInvalidAmount       = New("invalid amount")
	ErrInvalidDuration     = New("invalid stake duration")
	ErrNoShares            = New("stake too small to earn shares")
	ErrEmptyList           = New("no stakes")
	ErrIndexOutOfRange     = New("stake index out of range")
	ErrStaleIndex          = New("stake index does not match stake id")
	ErrStakeNotFound       = New("stake not found")
	ErrUnauthorized        = New("caller is not an admin")
	ErrNotPooled           = New("stake has not entered the pool")
	ErrAlreadyUnpooled     = New("stake already unpooled")
	ErrTermNotServed       = New("stake term not served")
	ErrAlreadyInitialized  = New("pool already initialized")
	ErrNotInitialized      = New("pool not initialized")
	ErrInsufficientBalance = New("insufficient balance")
)
