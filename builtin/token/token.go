// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the value ledger staking settles against.
// Balances are kept in the state accounts, supply statistics in the token contract storage.
package token

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/builtin/solidity"
	"github.com/lockstake/lockstake/builtin/staker/reverts"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/state"
)

var (
	slotTotalSupply = lockstake.BytesToBytes32([]byte("total-supply"))
	slotTotalBurned = lockstake.BytesToBytes32([]byte("total-burned"))
)

type Token struct {
	state       *state.State
	totalSupply *solidity.Uint256
	totalBurned *solidity.Uint256
}

func New(addr lockstake.Address, state *state.State) *Token {
	sctx := solidity.NewContext(addr, state)
	return &Token{
		state:       state,
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
		totalBurned: solidity.NewUint256(sctx, slotTotalBurned),
	}
}

// BalanceOf returns the balance of addr.
func (t *Token) BalanceOf(addr lockstake.Address) (*uint256.Int, error) {
	return t.state.GetBalance(addr)
}

// TotalSupply returns minted minus burned.
func (t *Token) TotalSupply() (*uint256.Int, error) {
	return t.totalSupply.Get()
}

// TotalBurned returns the amount burned so far.
func (t *Token) TotalBurned() (*uint256.Int, error) {
	return t.totalBurned.Get()
}

// Mint creates amount for to. Only genesis mints.
func (t *Token) Mint(to lockstake.Address, amount *uint256.Int) error {
	bal, err := t.state.GetBalance(to)
	if err != nil {
		return err
	}
	newBal, err := lockstake.Add(bal, amount)
	if err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := t.totalSupply.Add(amount); err != nil {
		return errors.Wrap(err, "mint")
	}
	t.state.SetBalance(to, newBal)
	return nil
}

func (t *Token) sub(from lockstake.Address, amount *uint256.Int) error {
	bal, err := t.state.GetBalance(from)
	if err != nil {
		return err
	}
	if bal.Lt(amount) {
		return reverts.ErrInsufficientBalance
	}
	t.state.SetBalance(from, new(uint256.Int).Sub(bal, amount))
	return nil
}

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to lockstake.Address, amount *uint256.Int) error {
	if amount.IsZero() || from == to {
		return nil
	}
	if err := t.sub(from, amount); err != nil {
		return err
	}
	bal, err := t.state.GetBalance(to)
	if err != nil {
		return err
	}
	newBal, err := lockstake.Add(bal, amount)
	if err != nil {
		return errors.Wrap(err, "transfer")
	}
	t.state.SetBalance(to, newBal)
	return nil
}

// Burn destroys amount held by from.
func (t *Token) Burn(from lockstake.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	if err := t.sub(from, amount); err != nil {
		return err
	}
	if err := t.totalSupply.Sub(amount); err != nil {
		return errors.Wrap(err, "burn")
	}
	return t.totalBurned.Add(amount)
}
