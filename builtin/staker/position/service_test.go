// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstake/lockstake/builtin/solidity"
	"github.com/lockstake/lockstake/builtin/staker/reverts"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/lvldb"
	"github.com/lockstake/lockstake/state"
)

var account = lockstake.BytesToAddress([]byte("staker"))

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(solidity.NewContext(lockstake.Address{1}, state.NewStater(db).NewState()))
}

func addStakes(t *testing.T, s *Service, amounts ...uint64) *Position {
	pos, err := s.Get(account)
	require.NoError(t, err)
	for i, amount := range amounts {
		_, err := s.AddStake(account, pos, uint256.NewInt(amount), uint256.NewInt(amount*2), 10, uint64(i+1))
		require.NoError(t, err)
	}
	return pos
}

func assertTotals(t *testing.T, s *Service) {
	pos, err := s.Get(account)
	require.NoError(t, err)
	stakes, err := s.Stakes(account)
	require.NoError(t, err)

	amount, shares := new(uint256.Int), new(uint256.Int)
	for _, st := range stakes {
		amount.Add(amount, st.StakedAmount)
		shares.Add(shares, st.StakeShares)
	}
	assert.Equal(t, uint64(len(stakes)), pos.StakeCount)
	assert.Equal(t, amount, pos.TotalAmount)
	assert.Equal(t, shares, pos.StakeSharesTotal)
}

func TestGetCreatesZeroPosition(t *testing.T) {
	s := newService(t)
	pos, err := s.Get(account)
	require.NoError(t, err)
	assert.Equal(t, newPosition(), pos)

	stakes, err := s.Stakes(account)
	require.NoError(t, err)
	assert.Empty(t, stakes)
}

func TestAddStake(t *testing.T) {
	s := newService(t)
	pos, err := s.Get(account)
	require.NoError(t, err)

	id, err := s.AddStake(account, pos, uint256.NewInt(1000), uint256.NewInt(1009), 20, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	stake, err := s.GetStake(account, 0)
	require.NoError(t, err)
	assert.Equal(t, &Stake{
		ID:           1,
		StakedAmount: uint256.NewInt(1000),
		StakeShares:  uint256.NewInt(1009),
		PooledDay:    20,
		StakedDays:   10,
	}, stake)

	stored, err := s.Get(account)
	require.NoError(t, err)
	assert.Equal(t, pos, stored)
	assertTotals(t, s)
}

func TestRemoveStakeSwapsLast(t *testing.T) {
	s := newService(t)
	pos := addStakes(t, s, 100, 200, 300, 400)

	// remove slot 1 (id 2): slot 3 (id 4) moves in
	require.NoError(t, s.RemoveStake(account, pos, 1))
	stakes, err := s.Stakes(account)
	require.NoError(t, err)
	ids := []uint64{}
	for _, st := range stakes {
		ids = append(ids, st.ID)
	}
	assert.Equal(t, []uint64{1, 4, 3}, ids)
	assertTotals(t, s)

	// remove last slot, no move
	require.NoError(t, s.RemoveStake(account, pos, 2))
	assertTotals(t, s)

	// ids are never reused
	id, err := s.AddStake(account, pos, uint256.NewInt(1), uint256.NewInt(1), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)
	assertTotals(t, s)

	idx, st, found, err := s.FindStake(account, 5)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(2), idx)
	assert.Equal(t, uint64(5), st.ID)

	_, _, found, err = s.FindStake(account, 2)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRemoveStakeErrors(t *testing.T) {
	s := newService(t)
	pos, err := s.Get(account)
	require.NoError(t, err)
	assert.ErrorIs(t, s.RemoveStake(account, pos, 0), reverts.ErrEmptyList)

	pos = addStakes(t, s, 100)
	assert.ErrorIs(t, s.RemoveStake(account, pos, 1), reverts.ErrIndexOutOfRange)
	_, err = s.GetStake(account, 5)
	assert.ErrorIs(t, err, reverts.ErrIndexOutOfRange)

	require.NoError(t, s.RemoveStake(account, pos, 0))
	assertTotals(t, s)
	_, err = s.GetStake(account, 0)
	assert.ErrorIs(t, err, reverts.ErrEmptyList)
}

func TestStakeStatus(t *testing.T) {
	st := &Stake{PooledDay: 10, StakedDays: 5}
	assert.Equal(t, StatusPending, st.Status(9))
	assert.Equal(t, StatusPooled, st.Status(10))
	assert.Equal(t, StatusPooled, st.Status(100))
	assert.Equal(t, uint64(15), st.EndDay())

	st.UnpooledDay = 15
	assert.Equal(t, StatusUnpooled, st.Status(16))
	assert.Equal(t, "unpooled", st.Status(16).String())
}
