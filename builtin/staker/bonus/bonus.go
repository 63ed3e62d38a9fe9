// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bonus computes the share weighting of new stakes.
package bonus

import (
	"github.com/holiman/uint256"

	"github.com/lockstake/lockstake/lockstake"
)

// Shares returns the bonus shares of a stake of amount locked for days:
//
//	amount*cappedExtraDays/LPBDayDivisor + amount*cappedAmount/LPBAmountDivisor
//
// The result is the whole share weight of the stake, there is no base share equal to amount.
func Shares(amount *uint256.Int, days uint64, cfg *lockstake.Config) (*uint256.Int, error) {
	var extraDays uint64
	if days > 1 {
		extraDays = min(days-1, cfg.MaxStakeDays)
	}
	cappedAmount := lockstake.Min(amount, cfg.LPBAmountCap)

	dayBonus, err := lockstake.MulDiv(amount, uint256.NewInt(extraDays), cfg.LPBDayDivisor)
	if err != nil {
		return nil, err
	}
	amountBonus, err := lockstake.MulDiv(amount, cappedAmount, cfg.LPBAmountDivisor)
	if err != nil {
		return nil, err
	}
	return lockstake.Add(dayBonus, amountBonus)
}
