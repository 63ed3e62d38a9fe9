// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/holiman/uint256"

	"github.com/lockstake/lockstake/lockstake"
)

// EventKind names an event type, it is also the key events are indexed by.
type EventKind string

const (
	KindStakeOpened         EventKind = "StakeOpened"
	KindStakeClosed         EventKind = "StakeClosed"
	KindStakeUnpooled       EventKind = "StakeUnpooled"
	KindEmissionRateChanged EventKind = "EmissionRateChanged"
)

// Event is emitted by a successful mutating operation.
type Event interface {
	Kind() EventKind
	Timestamp() uint64
	Owner() lockstake.Address
}

// StakeOpened is emitted when a stake is created.
type StakeOpened struct {
	Time    uint64
	Account lockstake.Address
	ID      uint64
	Index   uint64 // arena slot at the time of opening
	Amount  *uint256.Int
	Days    uint64
	Shares  *uint256.Int
}

func (e *StakeOpened) Kind() EventKind { return KindStakeOpened }
func (e *StakeOpened) Timestamp() uint64 { return e.Time }
func (e *StakeOpened) Owner() lockstake.Address { return e.Account }

// StakeClosed is emitted when a stake is settled and removed.
type StakeClosed struct {
	Time          uint64
	Account       lockstake.Address
	ID            uint64
	Payout        *uint256.Int
	Penalty       *uint256.Int
	ServedDays    uint64
	Returned      *uint256.Int
	CappedPenalty *uint256.Int
}

func (e *StakeClosed) Kind() EventKind { return KindStakeClosed }
func (e *StakeClosed) Timestamp() uint64 { return e.Time }
func (e *StakeClosed) Owner() lockstake.Address { return e.Account }

// StakeUnpooled is emitted when an admin removes a served stake from the pool.
type StakeUnpooled struct {
	Time        uint64
	Account     lockstake.Address
	ID          uint64
	Amount      *uint256.Int
	UnpooledDay uint64
}

func (e *StakeUnpooled) Kind() EventKind { return KindStakeUnpooled }
func (e *StakeUnpooled) Timestamp() uint64 { return e.Time }
func (e *StakeUnpooled) Owner() lockstake.Address { return e.Account }

// EmissionRateChanged is emitted when the pool is initialized or its rate changes.
type EmissionRateChanged struct {
	Time    uint64
	Admin   lockstake.Address
	OldRate *uint256.Int
	NewRate *uint256.Int
}

func (e *EmissionRateChanged) Kind() EventKind { return KindEmissionRateChanged }
func (e *EmissionRateChanged) Timestamp() uint64 { return e.Time }
func (e *EmissionRateChanged) Owner() lockstake.Address { return e.Admin }
