// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/lockstake"
)

// Stage abstracts changes of a state that are ready to be committed.
type Stage struct {
	stater  *Stater
	changes map[key][]byte
}

func newStage(stater *Stater, changes map[key][]byte) *Stage {
	return &Stage{stater, changes}
}

// Len returns the count of changed entries.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes the digest of the change set. Equal change sets have equal hashes.
func (s *Stage) Hash() lockstake.Bytes32 {
	type entry struct{ k, v []byte }
	entries := make([]entry, 0, len(s.changes))
	for k, v := range s.changes {
		entries = append(entries, entry{k.encode(), v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].k, entries[j].k) < 0
	})
	return lockstake.Blake2bFn(func(w io.Writer) {
		for _, e := range entries {
			w.Write(e.k)
			w.Write([]byte{byte(len(e.v) >> 8), byte(len(e.v))})
			w.Write(e.v)
		}
	})
}

// Commit writes all changes into the kv store in a single batch.
// The read cache is updated only after the batch is written.
func (s *Stage) Commit() error {
	bulk := s.stater.store.Bulk()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.encode())
		} else {
			err = bulk.Put(k.encode(), v)
		}
		if err != nil {
			return errors.Wrap(err, "stage")
		}
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit")
	}
	for k, v := range s.changes {
		s.stater.cache.Add(k, v)
	}
	metricStageWriteCounter().Add(int64(len(s.changes)))
	return nil
}
