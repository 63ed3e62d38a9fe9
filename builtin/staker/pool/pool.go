// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import "github.com/holiman/uint256"

// Pool is the emission pool accumulator, a single instance per ledger.
type Pool struct {
	TotalPooled       *uint256.Int // principal of all stakes currently in the pool
	RewardsPerSecond  *uint256.Int // emission rate
	AccRewardPerShare *uint256.Int // cumulative emission per unit of principal, scaled by precision
	LastRewardTime    uint64       // unix seconds of the last refresh
	Initialized       bool
}

func newPool() *Pool {
	return &Pool{
		TotalPooled:       new(uint256.Int),
		RewardsPerSecond:  new(uint256.Int),
		AccRewardPerShare: new(uint256.Int),
	}
}

// fill replaces fields missing after decoding with zero values.
func (p *Pool) fill() *Pool {
	if p.TotalPooled == nil {
		p.TotalPooled = new(uint256.Int)
	}
	if p.RewardsPerSecond == nil {
		p.RewardsPerSecond = new(uint256.Int)
	}
	if p.AccRewardPerShare == nil {
		p.AccRewardPerShare = new(uint256.Int)
	}
	return p
}

// Clone returns a deep copy.
func (p *Pool) Clone() *Pool {
	return &Pool{
		TotalPooled:       p.TotalPooled.Clone(),
		RewardsPerSecond:  p.RewardsPerSecond.Clone(),
		AccRewardPerShare: p.AccRewardPerShare.Clone(),
		LastRewardTime:    p.LastRewardTime,
		Initialized:       p.Initialized,
	}
}
