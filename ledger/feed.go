// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"sync"

	"github.com/lockstake/lockstake/builtin/staker"
	"github.com/lockstake/lockstake/co"
)

const defaultFeedCapacity = 1024

// Entry is a committed event with its feed sequence number.
type Entry struct {
	Seq   uint64
	Event staker.Event
}

// Feed keeps the most recent committed events and wakes up waiters on new ones.
type Feed struct {
	lock     sync.RWMutex
	entries  []*Entry
	capacity int
	lastSeq  uint64
	signal   co.Signal
}

func newFeed(capacity int) *Feed {
	return &Feed{capacity: capacity}
}

func (f *Feed) append(ev staker.Event) *Entry {
	f.lock.Lock()
	f.lastSeq++
	entry := &Entry{Seq: f.lastSeq, Event: ev}
	f.entries = append(f.entries, entry)
	if len(f.entries) > f.capacity {
		f.entries = f.entries[len(f.entries)-f.capacity:]
	}
	f.lock.Unlock()

	f.signal.Broadcast()
	return entry
}

// LastSeq returns the sequence number of the latest event.
func (f *Feed) LastSeq() uint64 {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.lastSeq
}

// Since returns the retained entries with a sequence number above seq.
// Entries older than the feed capacity are dropped.
func (f *Feed) Since(seq uint64) []*Entry {
	f.lock.RLock()
	defer f.lock.RUnlock()

	if len(f.entries) == 0 || seq >= f.lastSeq {
		return nil
	}
	first := f.entries[0].Seq
	if seq < first {
		seq = first - 1
	}
	start := int(seq - first + 1)
	return append([]*Entry(nil), f.entries[start:]...)
}

// NewWaiter returns a waiter fired on the next appended event.
func (f *Feed) NewWaiter() co.Waiter {
	return f.signal.NewWaiter()
}
