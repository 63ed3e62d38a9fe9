// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/lockstake/lockstake/builtin/staker"
	"github.com/lockstake/lockstake/logdb"
)

// toLogEvent converts an event into its indexed form.
func toLogEvent(ev staker.Event) *logdb.Event {
	out := &logdb.Event{
		Kind:    string(ev.Kind()),
		Time:    ev.Timestamp(),
		Account: ev.Owner(),
	}
	switch e := ev.(type) {
	case *staker.StakeOpened:
		out.StakeID = e.ID
		out.Amount = e.Amount
		out.Days = e.Days
	case *staker.StakeClosed:
		out.StakeID = e.ID
		out.Payout = e.Payout
		out.Penalty = e.Penalty
		out.Returned = e.Returned
		out.ServedDays = e.ServedDays
	case *staker.StakeUnpooled:
		out.StakeID = e.ID
		out.Amount = e.Amount
		out.Days = e.UnpooledDay
	case *staker.EmissionRateChanged:
		out.Amount = e.NewRate
	}
	return out
}
