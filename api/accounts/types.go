// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/lockstake/lockstake/api/utils"
	"github.com/lockstake/lockstake/builtin/staker"
	"github.com/lockstake/lockstake/builtin/staker/position"
)

// Account is the token balance and staking position of an address.
type Account struct {
	Balance          *math.HexOrDecimal256 `json:"balance"`
	IsAdmin          bool                  `json:"isAdmin"`
	RewardDebt       *math.HexOrDecimal256 `json:"rewardDebt"`
	LastStakeID      uint64                `json:"lastStakeId"`
	StakeSharesTotal *math.HexOrDecimal256 `json:"stakeSharesTotal"`
	TotalAmount      *math.HexOrDecimal256 `json:"totalAmount"`
	StakeCount       uint64                `json:"stakeCount"`
}

// Stake is an active stake. Index is the current arena slot, it changes when other stakes close.
type Stake struct {
	ID           uint64                `json:"id"`
	Index        uint64                `json:"index"`
	StakedAmount *math.HexOrDecimal256 `json:"stakedAmount"`
	StakeShares  *math.HexOrDecimal256 `json:"stakeShares"`
	PooledDay    uint64                `json:"pooledDay"`
	StakedDays   uint64                `json:"stakedDays"`
	EndDay       uint64                `json:"endDay"`
	UnpooledDay  uint64                `json:"unpooledDay"`
	Status       string                `json:"status"`
}

// Estimate is the settlement closing the stake now would produce.
type Estimate struct {
	ServedDays    uint64                `json:"servedDays"`
	StakeReturn   *math.HexOrDecimal256 `json:"stakeReturn"`
	Payout        *math.HexOrDecimal256 `json:"payout"`
	Penalty       *math.HexOrDecimal256 `json:"penalty"`
	CappedPenalty *math.HexOrDecimal256 `json:"cappedPenalty"`
}

// StakeDetail is a stake with its estimated return. Estimate is null while the stake cannot be closed.
type StakeDetail struct {
	Stake
	Estimate *Estimate `json:"estimate"`
}

func convertStake(s *position.Stake, index, day uint64) *Stake {
	return &Stake{
		ID:           s.ID,
		Index:        index,
		StakedAmount: utils.Amount(s.StakedAmount),
		StakeShares:  utils.Amount(s.StakeShares),
		PooledDay:    s.PooledDay,
		StakedDays:   s.StakedDays,
		EndDay:       s.EndDay(),
		UnpooledDay:  s.UnpooledDay,
		Status:       s.Status(day).String(),
	}
}

func convertEstimate(est *staker.Estimate) *Estimate {
	if est.Settlement == nil {
		return nil
	}
	return &Estimate{
		ServedDays:    est.ServedDays,
		StakeReturn:   utils.Amount(est.StakeReturn),
		Payout:        utils.Amount(est.Payout),
		Penalty:       utils.Amount(est.Penalty),
		CappedPenalty: utils.Amount(est.CappedPenalty),
	}
}
