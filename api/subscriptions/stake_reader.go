// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/lockstake/lockstake/api/stakes"
	"github.com/lockstake/lockstake/ledger"
	"github.com/lockstake/lockstake/lockstake"
)

// StakeMessage is a committed event pushed to subscribers.
type StakeMessage struct {
	Seq uint64 `json:"seq"`
	*stakes.Event
}

type stakeReader struct {
	feed    *ledger.Feed
	seq     uint64
	account *lockstake.Address
}

func newStakeReader(feed *ledger.Feed, pos uint64, account *lockstake.Address) *stakeReader {
	return &stakeReader{
		feed:    feed,
		seq:     pos,
		account: account,
	}
}

// Read returns the events committed after the last one read.
func (r *stakeReader) Read() []any {
	entries := r.feed.Since(r.seq)
	msgs := make([]any, 0, len(entries))
	for _, entry := range entries {
		r.seq = entry.Seq
		if r.account != nil && entry.Event.Owner() != *r.account {
			continue
		}
		msgs = append(msgs, &StakeMessage{
			Seq:   entry.Seq,
			Event: stakes.ConvertEvent(entry.Event),
		})
	}
	return msgs
}
