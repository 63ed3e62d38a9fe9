// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/lvldb"
	"github.com/lockstake/lockstake/state"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp uint64

	stateProcs []func(state *state.State) error
	extraData  [28]byte
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// ExtraData set extra data, which is mixed into the genesis id.
func (b *Builder) ExtraData(data [28]byte) *Builder {
	b.extraData = data
	return b
}

// ComputeID compute genesis ID.
func (b *Builder) ComputeID() (lockstake.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return lockstake.Bytes32{}, err
	}
	defer db.Close()
	return b.Build(state.NewStater(db))
}

// Build applies the state processes and commits them. The returned id covers the
// resulting changes, the timestamp and the extra data.
func (b *Builder) Build(stater *state.Stater) (id lockstake.Bytes32, err error) {
	st := stater.NewState()

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return lockstake.Bytes32{}, errors.Wrap(err, "state process")
		}
	}

	stage := st.Stage()
	changes := stage.Hash()
	if err := stage.Commit(); err != nil {
		return lockstake.Bytes32{}, errors.Wrap(err, "commit state")
	}

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], b.timestamp)
	return lockstake.Blake2b(changes.Bytes(), ts[:], b.extraData[:]), nil
}
