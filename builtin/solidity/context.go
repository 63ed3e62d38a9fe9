// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solidity provides storage primitives for built-in contracts,
// laid out the way a Solidity contract lays out its state variables.
package solidity

import (
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/state"
)

// Context binds storage primitives to a contract address and the state they live in.
type Context struct {
	address lockstake.Address
	state   *state.State
}

func NewContext(address lockstake.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() lockstake.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
