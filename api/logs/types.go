// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/lockstake/lockstake/api/utils"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/logdb"
)

// maxTime is the largest time the index can bind.
const maxTime = 1<<63 - 1

type Range struct {
	From *uint64 `json:"from,omitempty"`
	To   *uint64 `json:"to,omitempty"`
}

type Options struct {
	Offset uint64 `json:"offset,omitempty"`
	Limit  uint64 `json:"limit,omitempty"`
}

// StakeFilter selects indexed stake events. Unset criteria match everything.
type StakeFilter struct {
	Kinds   []string           `json:"kinds,omitempty"`
	Account *lockstake.Address `json:"account,omitempty"`
	StakeID *uint64            `json:"stakeId,omitempty"`
	Range   *Range             `json:"range,omitempty"`
	Options *Options           `json:"options,omitempty"`
	Order   logdb.Order        `json:"order,omitempty"`
}

// FilteredEvent is an indexed event. Days holds the unpooled day of an unpool and Amount the
// new rate of a rate change.
type FilteredEvent struct {
	Seq        uint64                `json:"seq"`
	Kind       string                `json:"kind"`
	Timestamp  uint64                `json:"timestamp"`
	Account    lockstake.Address     `json:"account"`
	StakeID    uint64                `json:"stakeId"`
	Amount     *math.HexOrDecimal256 `json:"amount,omitempty"`
	Days       uint64                `json:"days,omitempty"`
	Payout     *math.HexOrDecimal256 `json:"payout,omitempty"`
	Penalty    *math.HexOrDecimal256 `json:"penalty,omitempty"`
	Returned   *math.HexOrDecimal256 `json:"returned,omitempty"`
	ServedDays uint64                `json:"servedDays,omitempty"`
}

func convertFilter(f *StakeFilter) *logdb.Filter {
	filter := &logdb.Filter{
		Kinds:   f.Kinds,
		Account: f.Account,
		StakeID: f.StakeID,
		Order:   f.Order,
	}
	if f.Range != nil {
		r := &logdb.Range{}
		if f.Range.From != nil {
			r.From = *f.Range.From
		}
		r.To = maxTime
		if f.Range.To != nil {
			r.To = *f.Range.To
		}
		filter.Range = r
	}
	if f.Options != nil {
		filter.Options = &logdb.Options{Offset: f.Options.Offset, Limit: f.Options.Limit}
	}
	return filter
}

func convertEvent(ev *logdb.Event) *FilteredEvent {
	fe := &FilteredEvent{
		Seq:        ev.Seq,
		Kind:       ev.Kind,
		Timestamp:  ev.Time,
		Account:    ev.Account,
		StakeID:    ev.StakeID,
		Days:       ev.Days,
		ServedDays: ev.ServedDays,
	}
	if ev.Amount != nil {
		fe.Amount = utils.Amount(ev.Amount)
	}
	if ev.Payout != nil {
		fe.Payout = utils.Amount(ev.Payout)
	}
	if ev.Penalty != nil {
		fe.Penalty = utils.Amount(ev.Penalty)
	}
	if ev.Returned != nil {
		fe.Returned = utils.Amount(ev.Returned)
	}
	return fe
}
