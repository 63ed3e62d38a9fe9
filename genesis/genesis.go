// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial ledger state: token allocation, admins, custody reserve
// and the emission pool.
package genesis

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/state"
)

// Genesis to build genesis state.
type Genesis struct {
	builder    *Builder
	stateID    lockstake.Bytes32
	id         lockstake.Bytes32
	name       string
	launchTime uint64
	config     *lockstake.Config
}

// Build commits the genesis state through stater.
func (g *Genesis) Build(stater *state.Stater) error {
	id, err := g.builder.Build(stater)
	if err != nil {
		return err
	}
	if id != g.stateID {
		return errors.New("genesis id mismatch")
	}
	return nil
}

// ID returns genesis id.
func (g *Genesis) ID() lockstake.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// LaunchTime returns the time the pool starts accruing.
func (g *Genesis) LaunchTime() uint64 {
	return g.launchTime
}

// Config returns the ledger constants locked by this genesis.
func (g *Genesis) Config() *lockstake.Config {
	return g.config.Copy()
}

func newGenesis(name string, launchTime uint64, cfg *lockstake.Config, builder *Builder) (*Genesis, error) {
	stateID, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	// the constants are not part of the state, but a ledger must never reopen with different ones
	enc, err := json.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	id := lockstake.Blake2b(stateID.Bytes(), enc)
	return &Genesis{builder, stateID, id, name, launchTime, cfg}, nil
}
