// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import "github.com/holiman/uint256"

// Position is the per account aggregate. It is created lazily, zero valued, and never removed.
// TotalAmount and StakeSharesTotal always equal the sums over the account's active stakes.
type Position struct {
	RewardDebt       *uint256.Int // emission already credited
	LastStakeID      uint64       // last assigned stake id, ids are never reused
	StakeSharesTotal *uint256.Int
	TotalAmount      *uint256.Int
	StakeCount       uint64 // number of occupied stake slots
}

func newPosition() *Position {
	return &Position{
		RewardDebt:       new(uint256.Int),
		StakeSharesTotal: new(uint256.Int),
		TotalAmount:      new(uint256.Int),
	}
}

func (p *Position) fill() *Position {
	if p.RewardDebt == nil {
		p.RewardDebt = new(uint256.Int)
	}
	if p.StakeSharesTotal == nil {
		p.StakeSharesTotal = new(uint256.Int)
	}
	if p.TotalAmount == nil {
		p.TotalAmount = new(uint256.Int)
	}
	return p
}

// Clone returns a deep copy.
func (p *Position) Clone() *Position {
	return &Position{
		RewardDebt:       p.RewardDebt.Clone(),
		LastStakeID:      p.LastStakeID,
		StakeSharesTotal: p.StakeSharesTotal.Clone(),
		TotalAmount:      p.TotalAmount.Clone(),
		StakeCount:       p.StakeCount,
	}
}

// StakeStatus is the lifecycle state of an active stake.
type StakeStatus uint8

const (
	StatusPending  StakeStatus = iota // pooled day not reached
	StatusPooled                      // counted in the pool
	StatusUnpooled                    // removed from the pool ahead of close
)

func (s StakeStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPooled:
		return "pooled"
	case StatusUnpooled:
		return "unpooled"
	default:
		return "unknown"
	}
}

// Stake is a single time locked deposit.
type Stake struct {
	ID           uint64
	StakedAmount *uint256.Int
	StakeShares  *uint256.Int
	PooledDay    uint64 // first day the stake is part of the pool, always after the open day
	StakedDays   uint64 // committed lock length
	UnpooledDay  uint64 // 0 while pooled
}

// Status returns the state of the stake on the given day.
func (s *Stake) Status(currentDay uint64) StakeStatus {
	switch {
	case s.UnpooledDay != 0:
		return StatusUnpooled
	case currentDay < s.PooledDay:
		return StatusPending
	default:
		return StatusPooled
	}
}

// EndDay returns the day the committed term is complete.
func (s *Stake) EndDay() uint64 {
	return s.PooledDay + s.StakedDays
}
