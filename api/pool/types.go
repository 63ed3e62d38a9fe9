// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/lockstake/lockstake/api/utils"
	"github.com/lockstake/lockstake/builtin/staker/pool"
	"github.com/lockstake/lockstake/lockstake"
)

// Pool is the accumulator projected to the time of the request.
type Pool struct {
	TotalPooled       *math.HexOrDecimal256 `json:"totalPooled"`
	RewardsPerSecond  *math.HexOrDecimal256 `json:"rewardsPerSecond"`
	AccRewardPerShare *math.HexOrDecimal256 `json:"accRewardPerShare"`
	LastRewardTime    uint64                `json:"lastRewardTime"`
	Initialized       bool                  `json:"initialized"`
	Timestamp         uint64                `json:"timestamp"`
	Day               uint64                `json:"day"`
	GenesisID         lockstake.Bytes32     `json:"genesisId"`
}

func convertPool(p *pool.Pool, now, day uint64, genesisID lockstake.Bytes32) *Pool {
	return &Pool{
		TotalPooled:       utils.Amount(p.TotalPooled),
		RewardsPerSecond:  utils.Amount(p.RewardsPerSecond),
		AccRewardPerShare: utils.Amount(p.AccRewardPerShare),
		LastRewardTime:    p.LastRewardTime,
		Initialized:       p.Initialized,
		Timestamp:         now,
		Day:               day,
		GenesisID:         genesisID,
	}
}

// Config is the set of ledger constants.
type Config struct {
	MinStakeDays     uint64                `json:"minStakeDays"`
	MaxStakeDays     uint64                `json:"maxStakeDays"`
	LPBAmountCap     *math.HexOrDecimal256 `json:"lpbAmountCap"`
	LPBDayDivisor    *math.HexOrDecimal256 `json:"lpbDayDivisor"`
	LPBAmountDivisor *math.HexOrDecimal256 `json:"lpbAmountDivisor"`
	Precision        *math.HexOrDecimal256 `json:"precision"`
	DayLength        uint64                `json:"dayLength"`
	BurnPercent      uint64                `json:"burnPercent"`
	PoolPercent      uint64                `json:"poolPercent"`
	RewardsPool      lockstake.Address     `json:"rewardsPool"`
}

func convertConfig(c *lockstake.Config) *Config {
	return &Config{
		MinStakeDays:     c.MinStakeDays,
		MaxStakeDays:     c.MaxStakeDays,
		LPBAmountCap:     utils.Amount(c.LPBAmountCap),
		LPBDayDivisor:    utils.Amount(c.LPBDayDivisor),
		LPBAmountDivisor: utils.Amount(c.LPBAmountDivisor),
		Precision:        utils.Amount(c.Precision),
		DayLength:        c.DayLength,
		BurnPercent:      *c.BurnPercent,
		PoolPercent:      *c.PoolPercent,
		RewardsPool:      c.RewardsPool,
	}
}
