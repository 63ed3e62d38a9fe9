// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the ledger state.
// Changes are kept in a stacked map until staged and committed.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap[key, []byte]
}

func newState(stater *Stater) *State {
	return &State{
		stater: stater,
		sm: stackedmap.New(func(k key) ([]byte, bool, error) {
			v, err := stater.load(k)
			if err != nil {
				return nil, false, err
			}
			return v, true, nil
		}),
	}
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 0 || revision > s.sm.Depth() {
		panic(fmt.Errorf("invalid revision %d", revision))
	}
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr lockstake.Address) (*uint256.Int, error) {
	v, _, err := s.sm.Get(balanceKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	return new(uint256.Int).SetBytes(v), nil
}

// SetBalance set balance for the given address.
func (s *State) SetBalance(addr lockstake.Address, balance *uint256.Int) {
	if balance == nil || balance.IsZero() {
		s.sm.Put(balanceKey(addr), nil)
		return
	}
	s.sm.Put(balanceKey(addr), balance.Bytes())
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr lockstake.Address, slot lockstake.Bytes32) (lockstake.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, slot)
	if err != nil {
		return lockstake.Bytes32{}, err
	}
	if len(raw) == 0 {
		return lockstake.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return lockstake.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// customized storage value, returns hash of raw data
		return lockstake.Blake2b(raw), nil
	}
	return lockstake.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr lockstake.Address, slot, value lockstake.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, slot, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, slot, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr lockstake.Address, slot lockstake.Bytes32) (rlp.RawValue, error) {
	v, _, err := s.sm.Get(storageKey(addr, slot))
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr lockstake.Address, slot lockstake.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey(addr, slot), raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr lockstake.Address, slot lockstake.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, slot, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr lockstake.Address, slot lockstake.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, slot)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// Stage makes a stage object to commit changes.
func (s *State) Stage() *Stage {
	changes := make(map[key][]byte)
	s.sm.Journal(func(k key, v []byte) bool {
		changes[k] = v
		return true
	})
	return newStage(s.stater, changes)
}
