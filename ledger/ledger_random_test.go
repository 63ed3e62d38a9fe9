// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstake/lockstake/builtin/staker/reverts"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/test/datagen"
	"github.com/lockstake/lockstake/test/testledger"
)

type openedStake struct {
	account lockstake.Address
	id      uint64
}

func TestRandomStakesSettleCleanly(t *testing.T) {
	l, err := testledger.New(3)
	require.NoError(t, err)
	defer l.Close()

	ctx := context.Background()
	accs := testledger.Accounts()

	var opened []openedStake
	for i := 0; i < 30; i++ {
		acc := accs[datagen.RandIntN(len(accs))]
		amount := datagen.RandAmount(200)
		amount.AddUint64(amount, 50)

		ev, err := l.Open(ctx, acc, amount, datagen.RandUint64N(20))
		require.NoError(t, err)
		opened = append(opened, openedStake{acc, ev.ID})

		if datagen.RandIntN(3) == 0 {
			l.AdvanceDays(1)
		}
	}

	// unfunded accounts are rejected without touching the pool
	before, _, err := l.Pool()
	require.NoError(t, err)
	_, err = l.Open(ctx, datagen.RandAddress(), datagen.RandAmount(100), 5)
	assert.ErrorIs(t, err, reverts.ErrInsufficientBalance)
	after, _, err := l.Pool()
	require.NoError(t, err)
	assert.Equal(t, before.TotalPooled, after.TotalPooled)

	// every stake is past its term
	l.AdvanceDays(25)

	for _, s := range opened {
		stake, est, err := l.Stake(s.account, s.id)
		require.NoError(t, err)
		assert.True(t, est.Penalty.IsZero())

		ev, err := l.CloseByID(ctx, s.account, s.id)
		require.NoError(t, err)
		assert.True(t, ev.Penalty.IsZero())
		assert.False(t, ev.Returned.Lt(stake.StakedAmount), "stake %d returned less than its principal", s.id)
	}

	p, _, err := l.Pool()
	require.NoError(t, err)
	assert.True(t, p.TotalPooled.IsZero())

	for _, acc := range accs {
		stakes, err := l.Stakes(acc)
		require.NoError(t, err)
		assert.Empty(t, stakes)

		pos, err := l.Position(acc)
		require.NoError(t, err)
		assert.True(t, pos.TotalAmount.IsZero())
		assert.True(t, pos.StakeSharesTotal.IsZero())
		assert.Zero(t, pos.StakeCount)
	}
}
