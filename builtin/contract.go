// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/lockstake/lockstake/lockstake"
)

type contract struct {
	name    string
	Address lockstake.Address
}

func mustLoadContract(name string) *contract {
	if name == "" {
		panic("empty contract name")
	}
	return &contract{
		name,
		lockstake.BytesToAddress([]byte(name)),
	}
}

// Name returns the contract name the address is derived from.
func (c *contract) Name() string {
	return c.name
}
