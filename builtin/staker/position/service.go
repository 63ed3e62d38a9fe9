// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package position stores per account positions and their stakes.
//
// The stakes of an account live in an arena of slots [0, StakeCount). Removing a stake moves
// the last slot into the freed one, so slot indices are not stable across removals and a slot
// may be reused by a later stake. Stake ids are the only stable references.
package position

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/builtin/solidity"
	"github.com/lockstake/lockstake/builtin/staker/reverts"
	"github.com/lockstake/lockstake/lockstake"
)

var (
	slotPositions = lockstake.BytesToBytes32([]byte("positions"))
	slotStakes    = lockstake.BytesToBytes32([]byte("stakes"))
)

// Service owns the account to position mapping and the stake arenas.
type Service struct {
	positions *solidity.Mapping[lockstake.Address, *Position]
	stakes    *solidity.Mapping[lockstake.Bytes32, *Stake]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		positions: solidity.NewMapping[lockstake.Address, *Position](sctx, slotPositions),
		stakes:    solidity.NewMapping[lockstake.Bytes32, *Stake](sctx, slotStakes),
	}
}

func stakeKey(account lockstake.Address, index uint64) lockstake.Bytes32 {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], index)
	return lockstake.Blake2b(account.Bytes(), b[:])
}

// Get returns the position of account, a zero position when it never staked.
func (s *Service) Get(account lockstake.Address) (*Position, error) {
	pos, err := s.positions.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	if pos == nil {
		return newPosition(), nil
	}
	return pos.fill(), nil
}

// Set persists the position of account.
func (s *Service) Set(account lockstake.Address, pos *Position) error {
	if err := s.positions.Set(account, pos); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	return nil
}

// AddStake appends a new stake to the account arena, assigns it the next id and adds
// its amount and shares to the position totals. pos is updated and persisted.
func (s *Service) AddStake(
	account lockstake.Address,
	pos *Position,
	amount, shares *uint256.Int,
	pooledDay, stakedDays uint64,
) (uint64, error) {
	totalAmount, err := lockstake.Add(pos.TotalAmount, amount)
	if err != nil {
		return 0, err
	}
	sharesTotal, err := lockstake.Add(pos.StakeSharesTotal, shares)
	if err != nil {
		return 0, err
	}

	pos.LastStakeID++
	stake := &Stake{
		ID:           pos.LastStakeID,
		StakedAmount: amount.Clone(),
		StakeShares:  shares.Clone(),
		PooledDay:    pooledDay,
		StakedDays:   stakedDays,
	}
	if err := s.stakes.Set(stakeKey(account, pos.StakeCount), stake); err != nil {
		return 0, errors.Wrap(err, "failed to add stake")
	}
	pos.StakeCount++
	pos.TotalAmount = totalAmount
	pos.StakeSharesTotal = sharesTotal

	if err := s.Set(account, pos); err != nil {
		return 0, err
	}
	return stake.ID, nil
}

// GetStake returns the stake at slot index.
func (s *Service) GetStake(account lockstake.Address, index uint64) (*Stake, error) {
	pos, err := s.Get(account)
	if err != nil {
		return nil, err
	}
	return s.getStake(account, pos, index)
}

func (s *Service) getStake(account lockstake.Address, pos *Position, index uint64) (*Stake, error) {
	if pos.StakeCount == 0 {
		return nil, reverts.ErrEmptyList
	}
	if index >= pos.StakeCount {
		return nil, reverts.ErrIndexOutOfRange
	}
	stake, err := s.stakes.Get(stakeKey(account, index))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake")
	}
	if stake == nil {
		return nil, errors.Errorf("stake slot %d of %v is empty", index, account)
	}
	return stake, nil
}

// UpdateStake overwrites the stake at slot index. The id and the amounts must not change.
func (s *Service) UpdateStake(account lockstake.Address, index uint64, stake *Stake) error {
	if err := s.stakes.Set(stakeKey(account, index), stake); err != nil {
		return errors.Wrap(err, "failed to update stake")
	}
	return nil
}

// RemoveStake removes the stake at slot index by moving the last slot into it,
// and subtracts its amount and shares from the position totals. pos is updated and persisted.
// Callers resolve index right before removing, see FindStake.
func (s *Service) RemoveStake(account lockstake.Address, pos *Position, index uint64) error {
	stake, err := s.getStake(account, pos, index)
	if err != nil {
		return err
	}
	totalAmount, err := lockstake.Sub(pos.TotalAmount, stake.StakedAmount)
	if err != nil {
		return err
	}
	sharesTotal, err := lockstake.Sub(pos.StakeSharesTotal, stake.StakeShares)
	if err != nil {
		return err
	}

	last := pos.StakeCount - 1
	if index != last {
		moved, err := s.getStake(account, pos, last)
		if err != nil {
			return err
		}
		if err := s.stakes.Set(stakeKey(account, index), moved); err != nil {
			return errors.Wrap(err, "failed to move stake")
		}
	}
	s.stakes.Delete(stakeKey(account, last))

	pos.StakeCount = last
	pos.TotalAmount = totalAmount
	pos.StakeSharesTotal = sharesTotal
	return s.Set(account, pos)
}

// Stakes lists the active stakes of account in slot order.
func (s *Service) Stakes(account lockstake.Address) ([]*Stake, error) {
	pos, err := s.Get(account)
	if err != nil {
		return nil, err
	}
	stakes := make([]*Stake, 0, pos.StakeCount)
	for i := uint64(0); i < pos.StakeCount; i++ {
		stake, err := s.getStake(account, pos, i)
		if err != nil {
			return nil, err
		}
		stakes = append(stakes, stake)
	}
	return stakes, nil
}

// FindStake resolves the current slot of the stake with the given id.
// found is false when the account has no such active stake.
func (s *Service) FindStake(account lockstake.Address, id uint64) (index uint64, stake *Stake, found bool, err error) {
	stakes, err := s.Stakes(account)
	if err != nil {
		return 0, nil, false, err
	}
	for i, st := range stakes {
		if st.ID == id {
			return uint64(i), st, true, nil
		}
	}
	return 0, nil, false, nil
}
