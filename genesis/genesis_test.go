// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstake/lockstake/builtin"
	"github.com/lockstake/lockstake/genesis"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/lvldb"
	"github.com/lockstake/lockstake/state"
)

func TestDevGenesis(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	gen := genesis.NewDevnet()
	assert.Equal(t, "devnet", gen.Name())
	assert.False(t, gen.ID().IsZero())
	assert.Equal(t, genesis.NewDevnet().ID(), gen.ID())

	stater := state.NewStater(db)
	require.NoError(t, gen.Build(stater))

	st := stater.NewState()
	for _, acc := range genesis.DevAccounts() {
		bal, err := builtin.Token.WithState(st).BalanceOf(acc)
		require.NoError(t, err)
		assert.Equal(t, uint256.MustFromDecimal("1000000000000000000000000"), bal)
	}

	isAdmin, err := builtin.Gate.WithState(st).IsAdmin(genesis.DevAccounts()[0])
	require.NoError(t, err)
	assert.True(t, isAdmin)

	p, err := builtin.Staker.WithState(st, gen.Config()).Pool(gen.LaunchTime())
	require.NoError(t, err)
	assert.True(t, p.Initialized)
	assert.Equal(t, gen.LaunchTime(), p.LastRewardTime)
	assert.Equal(t, uint256.MustFromDecimal("100000000000000000"), p.RewardsPerSecond)
}

func TestCustomNetValidation(t *testing.T) {
	admin := lockstake.BytesToAddress([]byte("admin"))

	_, err := genesis.NewCustomNet(&genesis.CustomGenesis{})
	assert.ErrorContains(t, err, "admin")

	_, err = genesis.NewCustomNet(&genesis.CustomGenesis{
		Admins:   []lockstake.Address{admin},
		Accounts: []genesis.Account{{Address: admin}},
	})
	assert.ErrorContains(t, err, "balance")

	_, err = genesis.NewCustomNet(&genesis.CustomGenesis{
		Admins: []lockstake.Address{admin},
		Config: &lockstake.Config{BurnPercent: lockstake.Percent(90), PoolPercent: lockstake.Percent(20)},
	})
	assert.ErrorContains(t, err, "exceeds 100")

	gen, err := genesis.NewCustomNet(&genesis.CustomGenesis{Admins: []lockstake.Address{admin}})
	require.NoError(t, err)
	assert.Equal(t, "customnet", gen.Name())
}

func TestLoadCustomGenesis(t *testing.T) {
	content := `
name: testnet
launchTime: 1000
extraData: hello
emissionRate: 5
custodyReserve: "1000000000000000000000"
admins:
  - "0x0000000000000000000000000000000000000001"
accounts:
  - address: "0x0000000000000000000000000000000000000002"
    balance: 0x3e8
config:
  dayLength: 60
  maxStakeDays: 100
`
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	custom, err := genesis.LoadCustomGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), custom.LaunchTime)
	assert.Equal(t, uint256.NewInt(5), custom.EmissionRate)
	assert.Equal(t, uint256.NewInt(1000), custom.Accounts[0].Balance)
	assert.Equal(t, lockstake.BytesToAddress([]byte{1}), custom.Admins[0])

	gen, err := genesis.NewCustomNet(custom)
	require.NoError(t, err)
	assert.Equal(t, "testnet", gen.Name())
	assert.Equal(t, uint64(60), gen.Config().DayLength)
	assert.Equal(t, uint64(100), gen.Config().MaxStakeDays)
	assert.Equal(t, uint64(1), gen.Config().MinStakeDays)
	assert.NotEqual(t, genesis.NewDevnet().ID(), gen.ID())
}

func TestConfigChangesID(t *testing.T) {
	dev := genesis.DevGenesis()
	dev.Config = &lockstake.Config{DayLength: 60}
	gen, err := genesis.NewCustomNet(dev)
	require.NoError(t, err)
	assert.NotEqual(t, genesis.NewDevnet().ID(), gen.ID())

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	assert.NoError(t, gen.Build(state.NewStater(db)))
}
