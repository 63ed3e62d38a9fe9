// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstake/lockstake/builtin/staker/reverts"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/lvldb"
	"github.com/lockstake/lockstake/state"
)

var (
	alice = lockstake.BytesToAddress([]byte("alice"))
	bob   = lockstake.BytesToAddress([]byte("bob"))
)

func newToken(t *testing.T) *Token {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(lockstake.BytesToAddress([]byte("token")), state.NewStater(db).NewState())
}

func balanceOf(t *testing.T, tk *Token, addr lockstake.Address) uint64 {
	bal, err := tk.BalanceOf(addr)
	require.NoError(t, err)
	return bal.Uint64()
}

func TestToken(t *testing.T) {
	tk := newToken(t)

	require.NoError(t, tk.Mint(alice, uint256.NewInt(1000)))
	require.NoError(t, tk.Transfer(alice, bob, uint256.NewInt(300)))
	assert.Equal(t, uint64(700), balanceOf(t, tk, alice))
	assert.Equal(t, uint64(300), balanceOf(t, tk, bob))

	assert.ErrorIs(t, tk.Transfer(bob, alice, uint256.NewInt(301)), reverts.ErrInsufficientBalance)
	assert.Equal(t, uint64(300), balanceOf(t, tk, bob))

	require.NoError(t, tk.Burn(bob, uint256.NewInt(100)))
	assert.Equal(t, uint64(200), balanceOf(t, tk, bob))
	assert.ErrorIs(t, tk.Burn(bob, uint256.NewInt(201)), reverts.ErrInsufficientBalance)

	supply, err := tk.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(900), supply)
	burned, err := tk.TotalBurned()
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(100), burned)
}

func TestTransferNoop(t *testing.T) {
	tk := newToken(t)
	require.NoError(t, tk.Transfer(alice, bob, new(uint256.Int)))
	require.NoError(t, tk.Mint(alice, uint256.NewInt(5)))
	require.NoError(t, tk.Transfer(alice, alice, uint256.NewInt(5)))
	assert.Equal(t, uint64(5), balanceOf(t, tk, alice))
}
