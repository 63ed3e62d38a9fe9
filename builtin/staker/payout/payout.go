// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package payout settles stakes: share weighted payouts over day ranges,
// early exit penalties and the pending pool emission of the owning account.
package payout

import (
	"github.com/holiman/uint256"

	"github.com/lockstake/lockstake/builtin/staker/pool"
	"github.com/lockstake/lockstake/builtin/staker/position"
	"github.com/lockstake/lockstake/lockstake"
)

// Settlement is the outcome of closing a stake.
type Settlement struct {
	StakeReturn   *uint256.Int // amount returned to the staker, never negative
	Payout        *uint256.Int // rewards before penalty, including pending emission
	Penalty       *uint256.Int // penalty as computed, may exceed the return
	CappedPenalty *uint256.Int // penalty actually applied
}

// RangePayout returns (endDay-beginDay)*stakedAmount*stakeShares/sharesTotal.
func RangePayout(sharesTotal, stakedAmount, stakeShares *uint256.Int, beginDay, endDay uint64) (*uint256.Int, error) {
	if endDay < beginDay {
		return nil, lockstake.ErrUnderflow
	}
	weighted, err := lockstake.Mul(uint256.NewInt(endDay-beginDay), stakedAmount)
	if err != nil {
		return nil, err
	}
	return lockstake.MulDiv(weighted, stakeShares, sharesTotal)
}

// PenaltyDays returns half the term rounded up.
func PenaltyDays(stakedDays uint64) uint64 {
	return stakedDays/2 + stakedDays%2
}

func rangeOf(pos *position.Position, stake *position.Stake, beginDay, endDay uint64) (*uint256.Int, error) {
	return RangePayout(pos.StakeSharesTotal, stake.StakedAmount, stake.StakeShares, beginDay, endDay)
}

// SettleEarly settles a stake that served fewer days than committed.
// Exiting before the penalty threshold extrapolates the penalty, which can then exceed the payout.
func SettleEarly(pos *position.Position, stake *position.Stake, servedDays uint64) (payout, penalty *uint256.Int, err error) {
	penaltyDays := PenaltyDays(stake.StakedDays)
	servedEndDay := stake.PooledDay + servedDays

	switch {
	case penaltyDays < servedDays:
		penaltyEndDay := stake.PooledDay + penaltyDays
		if penalty, err = rangeOf(pos, stake, stake.PooledDay, penaltyEndDay); err != nil {
			return nil, nil, err
		}
		var delta *uint256.Int
		if delta, err = rangeOf(pos, stake, penaltyEndDay, servedEndDay); err != nil {
			return nil, nil, err
		}
		if payout, err = lockstake.Add(penalty, delta); err != nil {
			return nil, nil, err
		}
	case penaltyDays == servedDays:
		if payout, err = rangeOf(pos, stake, stake.PooledDay, servedEndDay); err != nil {
			return nil, nil, err
		}
		penalty = payout.Clone()
	default:
		if payout, err = rangeOf(pos, stake, stake.PooledDay, servedEndDay); err != nil {
			return nil, nil, err
		}
		// zero served days on the pooled day fails with ErrDivisionByZero
		if penalty, err = lockstake.MulDiv(payout, uint256.NewInt(penaltyDays), uint256.NewInt(servedDays)); err != nil {
			return nil, nil, err
		}
	}
	return payout, penalty, nil
}

// SettleFull settles a stake that served its whole term.
func SettleFull(pos *position.Position, stake *position.Stake, servedDays uint64) (payout, penalty *uint256.Int, err error) {
	if payout, err = rangeOf(pos, stake, stake.PooledDay, stake.PooledDay+servedDays); err != nil {
		return nil, nil, err
	}
	return payout, new(uint256.Int), nil
}

// CalcStakeReturn settles stake against pos, the owning position before the stake is removed.
// acc is the projected pool accumulator used for the account's pending emission, which is
// added to both the return and the payout. A penalty above the return takes the whole return.
func CalcStakeReturn(
	pos *position.Position,
	stake *position.Stake,
	servedDays uint64,
	acc, precision *uint256.Int,
) (*Settlement, error) {
	var (
		payout, penalty *uint256.Int
		err             error
	)
	if servedDays < stake.StakedDays {
		payout, penalty, err = SettleEarly(pos, stake, servedDays)
	} else {
		payout, penalty, err = SettleFull(pos, stake, servedDays)
	}
	if err != nil {
		return nil, err
	}

	stakeReturn, err := lockstake.Add(stake.StakedAmount, payout)
	if err != nil {
		return nil, err
	}

	pending, err := pool.PendingEmission(pos.TotalAmount, pos.RewardDebt, acc, precision)
	if err != nil {
		return nil, err
	}
	if stakeReturn, err = lockstake.Add(stakeReturn, pending); err != nil {
		return nil, err
	}
	if payout, err = lockstake.Add(payout, pending); err != nil {
		return nil, err
	}

	s := &Settlement{Payout: payout, Penalty: penalty}
	if penalty.Gt(stakeReturn) {
		s.CappedPenalty = stakeReturn
		s.StakeReturn = new(uint256.Int)
	} else {
		s.CappedPenalty = penalty.Clone()
		s.StakeReturn = new(uint256.Int).Sub(stakeReturn, penalty)
	}
	return s, nil
}
