// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/lockstake/lockstake/api/utils"
	"github.com/lockstake/lockstake/builtin/staker"
	"github.com/lockstake/lockstake/lockstake"
)

// OpenRequest opens a stake of Amount for Days on behalf of Caller.
type OpenRequest struct {
	Caller *lockstake.Address    `json:"caller"`
	Amount *math.HexOrDecimal256 `json:"amount"`
	Days   uint64                `json:"days"`
}

// CloseRequest closes stake ID. Index is the expected arena slot, when omitted the
// current slot of the stake is used.
type CloseRequest struct {
	Caller *lockstake.Address `json:"caller"`
	ID     uint64             `json:"id"`
	Index  *uint64            `json:"index"`
}

// UnpoolRequest removes the stake ID of Account from the pool.
type UnpoolRequest struct {
	Admin   *lockstake.Address `json:"admin"`
	Account *lockstake.Address `json:"account"`
	ID      uint64             `json:"id"`
}

// Event is the JSON form of a ledger event. Fields not carried by the kind are omitted.
type Event struct {
	Kind          string                `json:"kind"`
	Timestamp     uint64                `json:"timestamp"`
	Account       lockstake.Address     `json:"account"`
	StakeID       uint64                `json:"stakeId,omitempty"`
	Index         *uint64               `json:"index,omitempty"`
	Amount        *math.HexOrDecimal256 `json:"amount,omitempty"`
	Days          uint64                `json:"days,omitempty"`
	Shares        *math.HexOrDecimal256 `json:"shares,omitempty"`
	Payout        *math.HexOrDecimal256 `json:"payout,omitempty"`
	Penalty       *math.HexOrDecimal256 `json:"penalty,omitempty"`
	CappedPenalty *math.HexOrDecimal256 `json:"cappedPenalty,omitempty"`
	Returned      *math.HexOrDecimal256 `json:"returned,omitempty"`
	ServedDays    *uint64               `json:"servedDays,omitempty"`
	UnpooledDay   uint64                `json:"unpooledDay,omitempty"`
	OldRate       *math.HexOrDecimal256 `json:"oldRate,omitempty"`
	NewRate       *math.HexOrDecimal256 `json:"newRate,omitempty"`
}

// ConvertEvent converts a ledger event into its JSON form.
func ConvertEvent(ev staker.Event) *Event {
	out := &Event{
		Kind:      string(ev.Kind()),
		Timestamp: ev.Timestamp(),
		Account:   ev.Owner(),
	}
	switch e := ev.(type) {
	case *staker.StakeOpened:
		index := e.Index
		out.StakeID = e.ID
		out.Index = &index
		out.Amount = utils.Amount(e.Amount)
		out.Days = e.Days
		out.Shares = utils.Amount(e.Shares)
	case *staker.StakeClosed:
		served := e.ServedDays
		out.StakeID = e.ID
		out.Payout = utils.Amount(e.Payout)
		out.Penalty = utils.Amount(e.Penalty)
		out.CappedPenalty = utils.Amount(e.CappedPenalty)
		out.Returned = utils.Amount(e.Returned)
		out.ServedDays = &served
	case *staker.StakeUnpooled:
		out.StakeID = e.ID
		out.Amount = utils.Amount(e.Amount)
		out.UnpooledDay = e.UnpooledDay
	case *staker.EmissionRateChanged:
		out.OldRate = utils.Amount(e.OldRate)
		out.NewRate = utils.Amount(e.NewRate)
	}
	return out
}
