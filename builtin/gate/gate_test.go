// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstake/lockstake/builtin/solidity"
	"github.com/lockstake/lockstake/builtin/staker/reverts"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/lvldb"
	"github.com/lockstake/lockstake/state"
)

func TestGate(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	g := New(solidity.NewContext(lockstake.Address{2}, state.NewStater(db).NewState()))

	root := lockstake.BytesToAddress([]byte("root"))
	ops := lockstake.BytesToAddress([]byte("ops"))
	eve := lockstake.BytesToAddress([]byte("eve"))

	require.NoError(t, g.Add(root))
	require.NoError(t, g.Add(root))
	n, err := g.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	assert.ErrorIs(t, g.Grant(eve, eve), reverts.ErrUnauthorized)
	require.NoError(t, g.Grant(root, ops))

	ok, err := g.IsAdmin(ops)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, g.Revoke(ops, root))
	ok, err = g.IsAdmin(root)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, g.Revoke(ops, ops), ErrLastAdmin)
	assert.ErrorIs(t, g.Revoke(root, ops), reverts.ErrUnauthorized)

	// revoking a non admin is a no-op
	require.NoError(t, g.Revoke(ops, eve))
	n, err = g.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}
