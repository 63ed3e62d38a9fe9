// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the native contracts to their well known addresses.
package builtin

import (
	"github.com/lockstake/lockstake/builtin/gate"
	"github.com/lockstake/lockstake/builtin/solidity"
	"github.com/lockstake/lockstake/builtin/staker"
	"github.com/lockstake/lockstake/builtin/token"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/state"
)

// Builtin contracts binding.
var (
	Token  = &tokenContract{mustLoadContract("Token")}
	Gate   = &gateContract{mustLoadContract("Gate")}
	Staker = &stakerContract{mustLoadContract("Staker")}
)

type (
	tokenContract  struct{ *contract }
	gateContract   struct{ *contract }
	stakerContract struct{ *contract }
)

func (t *tokenContract) WithState(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

func (g *gateContract) WithState(state *state.State) *gate.Gate {
	return gate.New(solidity.NewContext(g.Address, state))
}

// WithState binds the staker to state. Its address is the custody account of staked principal.
func (s *stakerContract) WithState(state *state.State, cfg *lockstake.Config) *staker.Staker {
	return staker.New(s.Address, state, cfg, Token.WithState(state), Gate.WithState(state))
}
