// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/lockstake/lockstake/lockstake"

const (
	balanceSpace byte = 'b'
	storageSpace byte = 's'
)

// key identifies a single state entry.
// Balance keys leave slot zero.
type key struct {
	space byte
	addr  lockstake.Address
	slot  lockstake.Bytes32
}

func balanceKey(addr lockstake.Address) key {
	return key{space: balanceSpace, addr: addr}
}

func storageKey(addr lockstake.Address, slot lockstake.Bytes32) key {
	return key{space: storageSpace, addr: addr, slot: slot}
}

// encode returns the key in the kv store.
func (k key) encode() []byte {
	buf := make([]byte, 0, 1+len(k.addr)+len(k.slot))
	buf = append(buf, k.space)
	buf = append(buf, k.addr[:]...)
	if k.space == storageSpace {
		buf = append(buf, k.slot[:]...)
	}
	return buf
}

func (k key) kind() string {
	if k.space == balanceSpace {
		return "balance"
	}
	return "storage"
}
