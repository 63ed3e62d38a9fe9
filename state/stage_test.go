// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstake/lockstake/lockstake"
)

func TestStage(t *testing.T) {
	stater, db := newStater(t)
	st := stater.NewState()

	addr := lockstake.BytesToAddress([]byte("acc1"))
	balance := uint256.NewInt(10)
	storage := map[lockstake.Bytes32]lockstake.Bytes32{
		lockstake.BytesToBytes32([]byte("s1")): lockstake.BytesToBytes32([]byte("v1")),
		lockstake.BytesToBytes32([]byte("s2")): lockstake.BytesToBytes32([]byte("v2")),
		lockstake.BytesToBytes32([]byte("s3")): lockstake.BytesToBytes32([]byte("v3")),
	}

	st.SetBalance(addr, balance)
	for k, v := range storage {
		st.SetStorage(addr, k, v)
	}

	stage := st.Stage()
	assert.Equal(t, 4, stage.Len())
	require.NoError(t, stage.Commit())

	// a fresh stater reads from the store, bypassing the shared cache
	st = NewStater(db).NewState()
	got, err := st.GetBalance(addr)
	assert.NoError(t, err)
	assert.Equal(t, balance, got)
	for k, v := range storage {
		got, err := st.GetStorage(addr, k)
		assert.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestStageHash(t *testing.T) {
	stater, _ := newStater(t)
	a := lockstake.BytesToAddress([]byte("a"))
	b := lockstake.BytesToAddress([]byte("b"))

	st1 := stater.NewState()
	st1.SetBalance(a, uint256.NewInt(1))
	st1.SetBalance(b, uint256.NewInt(2))

	st2 := stater.NewState()
	st2.SetBalance(b, uint256.NewInt(2))
	st2.SetBalance(a, uint256.NewInt(1))

	assert.Equal(t, st1.Stage().Hash(), st2.Stage().Hash())

	st2.SetBalance(a, uint256.NewInt(3))
	assert.NotEqual(t, st1.Stage().Hash(), st2.Stage().Hash())
}

func TestStageCommitDeletes(t *testing.T) {
	stater, db := newStater(t)
	addr := lockstake.BytesToAddress([]byte("acc"))

	st := stater.NewState()
	st.SetBalance(addr, uint256.NewInt(5))
	require.NoError(t, st.Stage().Commit())

	st = stater.NewState()
	st.SetBalance(addr, new(uint256.Int))
	require.NoError(t, st.Stage().Commit())

	has, err := db.Has(balanceKey(addr).encode())
	assert.NoError(t, err)
	assert.False(t, has)

	bal, err := stater.NewState().GetBalance(addr)
	assert.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestStaterCacheStats(t *testing.T) {
	stater, _ := newStater(t)
	addr := lockstake.BytesToAddress([]byte("acc"))

	_, err := stater.NewState().GetBalance(addr)
	require.NoError(t, err)
	_, err = stater.NewState().GetBalance(addr)
	require.NoError(t, err)

	_, hit, miss := stater.CacheStats().Stats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
}
