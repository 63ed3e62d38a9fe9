// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lockstake/lockstake/builtin"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/state"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	Name           string              `yaml:"name" json:"name"`
	LaunchTime     uint64              `yaml:"launchTime" json:"launchTime"`
	ExtraData      string              `yaml:"extraData" json:"extraData"`
	EmissionRate   *uint256.Int        `yaml:"emissionRate" json:"emissionRate"`     // per second
	CustodyReserve *uint256.Int        `yaml:"custodyReserve" json:"custodyReserve"` // minted to the staker, backs payouts
	Admins         []lockstake.Address `yaml:"admins" json:"admins"`
	Accounts       []Account           `yaml:"accounts" json:"accounts"`
	Config         *lockstake.Config   `yaml:"config" json:"config"` // overrides of the default constants
}

// Account is the account will set to the genesis state
type Account struct {
	Address lockstake.Address `yaml:"address" json:"address"`
	Balance *uint256.Int      `yaml:"balance" json:"balance"`
}

// LoadCustomGenesis reads a custom genesis from a yaml (or json) file.
func LoadCustomGenesis(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gen CustomGenesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return &gen, nil
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	cfg := lockstake.DefaultConfig().Merge(gen.Config)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	if len(gen.Admins) == 0 {
		return nil, errors.New("at least one admin is required")
	}
	if len(gen.ExtraData) > 28 {
		return nil, errors.New("extraData must be at most 28 bytes")
	}
	for _, a := range gen.Accounts {
		if a.Balance == nil || a.Balance.IsZero() {
			return nil, errors.Errorf("%v: balance must be a non-zero integer", a.Address)
		}
	}

	rate := new(uint256.Int)
	if gen.EmissionRate != nil {
		rate = gen.EmissionRate.Clone()
	}

	var extra [28]byte
	copy(extra[:], gen.ExtraData)

	builder := new(Builder).
		Timestamp(gen.LaunchTime).
		ExtraData(extra).
		State(func(state *state.State) error {
			tk := builtin.Token.WithState(state)
			for _, a := range gen.Accounts {
				if err := tk.Mint(a.Address, a.Balance); err != nil {
					return errors.Wrapf(err, "alloc %v", a.Address)
				}
			}
			if gen.CustodyReserve != nil && !gen.CustodyReserve.IsZero() {
				if err := tk.Mint(builtin.Staker.Address, gen.CustodyReserve); err != nil {
					return errors.Wrap(err, "custody reserve")
				}
			}

			gate := builtin.Gate.WithState(state)
			for _, admin := range gen.Admins {
				if err := gate.Add(admin); err != nil {
					return err
				}
			}

			_, err := builtin.Staker.WithState(state, cfg).InitializePool(gen.Admins[0], rate, gen.LaunchTime)
			return err
		})

	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	return newGenesis(name, gen.LaunchTime, cfg, builder)
}
