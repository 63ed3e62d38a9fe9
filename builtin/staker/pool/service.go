// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool maintains the emission pool accumulator.
// The accumulator is refreshed lazily, before any operation reading or changing
// the pooled total or computing pending emission.
package pool

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/builtin/solidity"
	"github.com/lockstake/lockstake/builtin/staker/reverts"
	"github.com/lockstake/lockstake/lockstake"
)

var slotPool = lockstake.BytesToBytes32([]byte("pool"))

// Service manages the pool accumulator stored in the staker contract.
type Service struct {
	pool      *solidity.Value[Pool]
	precision *uint256.Int
}

func New(sctx *solidity.Context, precision *uint256.Int) *Service {
	return &Service{
		pool:      solidity.NewValue[Pool](sctx, slotPool),
		precision: precision,
	}
}

// Get returns the stored pool, zero valued before initialization.
func (s *Service) Get() (*Pool, error) {
	p, ok, err := s.pool.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	if !ok {
		return newPool(), nil
	}
	return p.fill(), nil
}

func (s *Service) set(p *Pool) error {
	if err := s.pool.Set(p); err != nil {
		return errors.Wrap(err, "failed to set pool")
	}
	return nil
}

// Initialize starts the pool with the given emission rate. It can be called once.
func (s *Service) Initialize(rewardsPerSecond *uint256.Int, now uint64) error {
	p, err := s.Get()
	if err != nil {
		return err
	}
	if p.Initialized {
		return reverts.ErrAlreadyInitialized
	}
	p.RewardsPerSecond = rewardsPerSecond.Clone()
	p.LastRewardTime = now
	p.Initialized = true
	return s.set(p)
}

// accrue advances p to now, custodyBalance being the token balance backing the pool.
// With an empty custody only the timestamp moves.
func (s *Service) accrue(p *Pool, now uint64, custodyBalance *uint256.Int) error {
	if now <= p.LastRewardTime {
		return nil
	}
	if !custodyBalance.IsZero() {
		elapsed := uint256.NewInt(now - p.LastRewardTime)
		emitted, err := lockstake.Mul(elapsed, p.RewardsPerSecond)
		if err != nil {
			return err
		}
		delta, err := lockstake.MulDiv(emitted, s.precision, custodyBalance)
		if err != nil {
			return err
		}
		acc, err := lockstake.Add(p.AccRewardPerShare, delta)
		if err != nil {
			return err
		}
		p.AccRewardPerShare = acc
	}
	p.LastRewardTime = now
	return nil
}

// Refresh accrues emission up to now and persists the result.
func (s *Service) Refresh(now uint64, custodyBalance *uint256.Int) (*Pool, error) {
	p, err := s.Get()
	if err != nil {
		return nil, err
	}
	if err := s.accrue(p, now, custodyBalance); err != nil {
		return nil, errors.Wrap(err, "refresh pool")
	}
	if err := s.set(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Project returns the pool as a refresh at now would leave it, without persisting.
func (s *Service) Project(now uint64, custodyBalance *uint256.Int) (*Pool, error) {
	p, err := s.Get()
	if err != nil {
		return nil, err
	}
	if err := s.accrue(p, now, custodyBalance); err != nil {
		return nil, errors.Wrap(err, "project pool")
	}
	return p, nil
}

// AddPooled adds principal to the pooled total.
func (s *Service) AddPooled(amount *uint256.Int) error {
	p, err := s.Get()
	if err != nil {
		return err
	}
	if p.TotalPooled, err = lockstake.Add(p.TotalPooled, amount); err != nil {
		return errors.Wrap(err, "add pooled")
	}
	return s.set(p)
}

// SubPooled removes principal from the pooled total.
func (s *Service) SubPooled(amount *uint256.Int) error {
	p, err := s.Get()
	if err != nil {
		return err
	}
	if p.TotalPooled, err = lockstake.Sub(p.TotalPooled, amount); err != nil {
		return errors.Wrap(err, "sub pooled")
	}
	return s.set(p)
}

// SetRewardsPerSecond changes the emission rate. Callers refresh the pool first
// so the elapsed period accrues at the old rate.
func (s *Service) SetRewardsPerSecond(rate *uint256.Int) error {
	p, err := s.Get()
	if err != nil {
		return err
	}
	if !p.Initialized {
		return reverts.ErrNotInitialized
	}
	p.RewardsPerSecond = rate.Clone()
	return s.set(p)
}

// PendingEmission returns the emission an account with totalAmount principal and
// rewardDebt baseline is entitled to at the accumulator value acc.
func PendingEmission(totalAmount, rewardDebt, acc, precision *uint256.Int) (*uint256.Int, error) {
	accrued, err := lockstake.MulDiv(totalAmount, acc, precision)
	if err != nil {
		return nil, err
	}
	return lockstake.Sub(accrued, rewardDebt)
}

// Debt returns the emission baseline of amount principal at the accumulator value acc.
func Debt(amount, acc, precision *uint256.Int) (*uint256.Int, error) {
	return lockstake.MulDiv(amount, acc, precision)
}
