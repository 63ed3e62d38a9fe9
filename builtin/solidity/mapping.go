// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/lockstake/lockstake/lockstake"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Values are rlp encoded into the slot blake2b(key, basePos).
// A missing entry reads as the zero value of V, a nil pointer for pointer types.
type Mapping[K Key, V any] struct {
	context *Context
	basePos lockstake.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos lockstake.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) lockstake.Bytes32 {
	return lockstake.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		return rlp.DecodeBytes(raw, value2ptr(&value))
	})
	return
}

// Set stores value under key. Storing a nil pointer or a zero value clears the entry.
func (m *Mapping[K, V]) Set(key K, value V) error {
	if isEmpty(value) {
		m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
		return nil
	}
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete clears the entry of key.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}

// value2ptr returns the decode target: the pointer itself for pointer values, so rlp
// decodes into the freshly allocated struct.
func value2ptr[V any](v *V) any {
	if rv := reflect.ValueOf(*v); rv.Kind() == reflect.Ptr {
		return *v
	}
	return v
}

func isEmpty(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return true
	}
	if rv.Kind() == reflect.Ptr {
		return rv.IsNil()
	}
	return rv.IsZero()
}
