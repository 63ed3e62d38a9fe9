// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/lockstake/lockstake/lockstake"
)

const devLaunchTime = 1735689600 // 2025-01-01

var devAccounts = sync.OnceValue(func() []lockstake.Address {
	accs := make([]lockstake.Address, 0, 10)
	for i := 0; i < 10; i++ {
		h := lockstake.Blake2b([]byte(fmt.Sprintf("dev-account-%d", i)))
		accs = append(accs, lockstake.BytesToAddress(h[12:]))
	}
	return accs
})

// DevAccounts returns pre-alloced accounts for development. The first one is the admin.
func DevAccounts() []lockstake.Address {
	return devAccounts()
}

// DevGenesis returns the custom genesis of the development network.
func DevGenesis() *CustomGenesis {
	balance := uint256.MustFromDecimal("1000000000000000000000000") // 1M tokens
	accounts := make([]Account, 0, len(DevAccounts()))
	for _, addr := range DevAccounts() {
		accounts = append(accounts, Account{Address: addr, Balance: balance})
	}
	return &CustomGenesis{
		Name:           "devnet",
		LaunchTime:     devLaunchTime,
		EmissionRate:   uint256.MustFromDecimal("100000000000000000"),            // 0.1 token per second
		CustodyReserve: uint256.MustFromDecimal("1000000000000000000000000000"), // 1B tokens
		Admins:         []lockstake.Address{DevAccounts()[0]},
		Accounts:       accounts,
	}
}

// NewDevnet create genesis for development network.
func NewDevnet() *Genesis {
	gen, err := NewCustomNet(DevGenesis())
	if err != nil {
		panic(err)
	}
	return gen
}
