// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/holiman/uint256"

	"github.com/lockstake/lockstake/lockstake"
)

// Event is a ledger event as stored in the db. Fields not carried by an event kind are zero or nil.
type Event struct {
	Seq        uint64 // assigned on insert, increases with insertion order
	Kind       string
	Time       uint64
	Account    lockstake.Address
	StakeID    uint64
	Amount     *uint256.Int
	Days       uint64
	Payout     *uint256.Int
	Penalty    *uint256.Int
	Returned   *uint256.Int
	ServedDays uint64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive time range. A To below From leaves the range open ended.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects events. Unset criteria match everything.
type Filter struct {
	Kinds   []string
	Account *lockstake.Address
	StakeID *uint64
	Range   *Range
	Order   Order
	Options *Options
}
