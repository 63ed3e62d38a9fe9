// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package gate keeps the set of administrative accounts.
package gate

import (
	"github.com/holiman/uint256"

	"github.com/lockstake/lockstake/builtin/solidity"
	"github.com/lockstake/lockstake/builtin/staker/reverts"
	"github.com/lockstake/lockstake/lockstake"
)

var (
	slotAdmins     = lockstake.BytesToBytes32([]byte("admins"))
	slotAdminCount = lockstake.BytesToBytes32([]byte("admin-count"))

	ErrLastAdmin = reverts.New("cannot revoke the last admin")
)

type Gate struct {
	admins *solidity.Mapping[lockstake.Address, bool]
	count  *solidity.Uint256
}

func New(sctx *solidity.Context) *Gate {
	return &Gate{
		admins: solidity.NewMapping[lockstake.Address, bool](sctx, slotAdmins),
		count:  solidity.NewUint256(sctx, slotAdminCount),
	}
}

// IsAdmin returns whether addr is an admin.
func (g *Gate) IsAdmin(addr lockstake.Address) (bool, error) {
	return g.admins.Get(addr)
}

// Count returns the number of admins.
func (g *Gate) Count() (uint64, error) {
	n, err := g.count.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// Add adds addr without authorization, used at genesis.
func (g *Gate) Add(addr lockstake.Address) error {
	ok, err := g.admins.Get(addr)
	if err != nil || ok {
		return err
	}
	if err := g.admins.Set(addr, true); err != nil {
		return err
	}
	return g.count.Add(uint256.NewInt(1))
}

func (g *Gate) authorize(caller lockstake.Address) error {
	ok, err := g.IsAdmin(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrUnauthorized
	}
	return nil
}

// Grant makes addr an admin. The caller must be an admin.
func (g *Gate) Grant(caller, addr lockstake.Address) error {
	if err := g.authorize(caller); err != nil {
		return err
	}
	return g.Add(addr)
}

// Revoke removes addr from the admins. The caller must be an admin and
// at least one admin always remains.
func (g *Gate) Revoke(caller, addr lockstake.Address) error {
	if err := g.authorize(caller); err != nil {
		return err
	}
	ok, err := g.admins.Get(addr)
	if err != nil || !ok {
		return err
	}
	n, err := g.Count()
	if err != nil {
		return err
	}
	if n <= 1 {
		return ErrLastAdmin
	}
	g.admins.Delete(addr)
	return g.count.Sub(uint256.NewInt(1))
}
