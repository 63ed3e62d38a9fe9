// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstake/lockstake/lockstake"
)

var (
	alice = lockstake.BytesToAddress([]byte("alice"))
	bob   = lockstake.BytesToAddress([]byte("bob"))
)

func newMem(t *testing.T) *LogDB {
	db, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func fixture() []*Event {
	return []*Event{
		{Kind: "StakeOpened", Time: 100, Account: alice, StakeID: 1, Amount: uint256.NewInt(1000), Days: 10},
		{Kind: "StakeOpened", Time: 200, Account: bob, StakeID: 1, Amount: uint256.NewInt(500), Days: 5},
		{Kind: "StakeOpened", Time: 300, Account: alice, StakeID: 2, Amount: uint256.NewInt(2000), Days: 20},
		{
			Kind:       "StakeClosed",
			Time:       400,
			Account:    alice,
			StakeID:    1,
			Payout:     uint256.NewInt(7000),
			Penalty:    uint256.NewInt(5000),
			Returned:   uint256.NewInt(3000),
			ServedDays: 7,
		},
		{Kind: "EmissionRateChanged", Time: 500, Account: bob, Amount: uint256.MustFromDecimal("1000000000000000000000000")},
	}
}

func TestInsertAndFilterAll(t *testing.T) {
	db := newMem(t)
	ctx := context.Background()

	events := fixture()
	require.NoError(t, db.Insert(ctx, events...))
	for i, ev := range events {
		assert.Equal(t, uint64(i+1), ev.Seq)
	}

	got, err := db.Filter(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, events, got)

	last, err := db.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), last)
}

func TestInsertNothing(t *testing.T) {
	db := newMem(t)
	require.NoError(t, db.Insert(context.Background()))

	last, err := db.LastSeq(context.Background())
	require.NoError(t, err)
	assert.Zero(t, last)
}

func TestFilter(t *testing.T) {
	db := newMem(t)
	ctx := context.Background()
	require.NoError(t, db.Insert(ctx, fixture()...))

	id1 := uint64(1)
	tests := []struct {
		name   string
		filter *Filter
		seqs   []uint64
	}{
		{"empty filter", &Filter{}, []uint64{1, 2, 3, 4, 5}},
		{"by kind", &Filter{Kinds: []string{"StakeClosed"}}, []uint64{4}},
		{"by kinds", &Filter{Kinds: []string{"StakeClosed", "EmissionRateChanged"}}, []uint64{4, 5}},
		{"by account", &Filter{Account: &alice}, []uint64{1, 3, 4}},
		{"by account and id", &Filter{Account: &alice, StakeID: &id1}, []uint64{1, 4}},
		{"by range", &Filter{Range: &Range{From: 200, To: 400}}, []uint64{2, 3, 4}},
		{"open range", &Filter{Range: &Range{From: 300}}, []uint64{3, 4, 5}},
		{"desc", &Filter{Order: DESC}, []uint64{5, 4, 3, 2, 1}},
		{"paging", &Filter{Options: &Options{Offset: 1, Limit: 2}}, []uint64{2, 3}},
		{"paging desc", &Filter{Order: DESC, Options: &Options{Offset: 0, Limit: 2}}, []uint64{5, 4}},
		{"no match", &Filter{Account: &bob, Kinds: []string{"StakeClosed"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := db.Filter(ctx, tt.filter)
			require.NoError(t, err)
			var seqs []uint64
			for _, ev := range events {
				seqs = append(seqs, ev.Seq)
			}
			assert.Equal(t, tt.seqs, seqs)
		})
	}
}

func TestFilterCanceled(t *testing.T) {
	db := newMem(t)
	require.NoError(t, db.Insert(context.Background(), fixture()...))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := db.Filter(ctx, &Filter{})
	assert.Error(t, err)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, db.Path())
	assert.NotEmpty(t, db.DriverVersion())
	require.NoError(t, db.Insert(context.Background(), fixture()[:2]...))
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Insert(context.Background(), fixture()[2:3]...))

	events, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, uint64(3), events[2].Seq)
	assert.Equal(t, uint256.NewInt(2000), events[2].Amount)
}
