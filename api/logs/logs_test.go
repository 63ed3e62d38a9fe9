// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstake/lockstake/api/utils"
	"github.com/lockstake/lockstake/test/testledger"
)

const closeTime = testledger.LaunchTime + 10 + 11*testledger.DayLength

func initLogServer(t *testing.T, limit uint64) *httptest.Server {
	l, err := testledger.NewDefault()
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	ctx := context.Background()
	accs := testledger.Accounts()
	opened, err := l.Open(ctx, accs[0], uint256.NewInt(1000), 10)
	require.NoError(t, err)
	_, err = l.Open(ctx, accs[1], uint256.NewInt(500), 5)
	require.NoError(t, err)
	l.AdvanceDays(11)
	_, err = l.CloseByID(ctx, accs[0], opened.ID)
	require.NoError(t, err)

	router := mux.NewRouter()
	New(l.Ledger, limit).Mount(router, "/logs")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func filterEvents(t *testing.T, ts *httptest.Server, filter any) ([]*FilteredEvent, int, string) {
	data, err := json.Marshal(filter)
	require.NoError(t, err)
	res, err := http.Post(ts.URL+"/logs/stakes", "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var events []*FilteredEvent
	if res.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, &events))
	}
	return events, res.StatusCode, string(body)
}

func TestFilter(t *testing.T) {
	ts := initLogServer(t, 10)
	accs := testledger.Accounts()

	tests := []struct {
		name   string
		filter any
		seqs   []uint64
	}{
		{"all", utils.M{}, []uint64{1, 2, 3}},
		{"by account", utils.M{"account": accs[0]}, []uint64{1, 3}},
		{"by stake id", utils.M{"account": accs[1], "stakeId": 1}, []uint64{2}},
		{"by kind", utils.M{"kinds": []string{"StakeClosed"}}, []uint64{3}},
		{"several kinds", utils.M{"kinds": []string{"StakeClosed", "StakeOpened"}}, []uint64{1, 2, 3}},
		{"desc", utils.M{"order": "desc"}, []uint64{3, 2, 1}},
		{"paged", utils.M{"options": utils.M{"offset": 1, "limit": 1}}, []uint64{2}},
		{"from", utils.M{"range": utils.M{"from": closeTime}}, []uint64{3}},
		{"to", utils.M{"range": utils.M{"to": closeTime - 1}}, []uint64{1, 2}},
		{"no match", utils.M{"account": testledger.Admin()}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, status, body := filterEvents(t, ts, tt.filter)
			require.Equal(t, http.StatusOK, status, body)
			seqs := make([]uint64, 0, len(events))
			for _, ev := range events {
				seqs = append(seqs, ev.Seq)
			}
			if tt.seqs == nil {
				assert.Empty(t, seqs)
			} else {
				assert.Equal(t, tt.seqs, seqs)
			}
		})
	}
}

func TestFilteredEventFields(t *testing.T) {
	ts := initLogServer(t, 10)

	events, status, _ := filterEvents(t, ts, utils.M{"account": testledger.Accounts()[0]})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, events, 2)

	opened := events[0]
	assert.Equal(t, "StakeOpened", opened.Kind)
	assert.Equal(t, uint64(testledger.LaunchTime+10), opened.Timestamp)
	assert.Equal(t, "0x3e8", opened.Amount.String())
	assert.Equal(t, uint64(10), opened.Days)
	assert.Nil(t, opened.Returned)

	closed := events[1]
	assert.Equal(t, "StakeClosed", closed.Kind)
	assert.Equal(t, uint64(closeTime), closed.Timestamp)
	assert.Equal(t, uint64(1), closed.StakeID)
	assert.Equal(t, uint64(10), closed.ServedDays)
	assert.NotNil(t, closed.Returned)
	assert.Nil(t, closed.Amount)
}

func TestFilterRejected(t *testing.T) {
	ts := initLogServer(t, 2)

	tests := []struct {
		name   string
		filter any
		status int
		msg    string
	}{
		{"limit above max", utils.M{"options": utils.M{"limit": 3}}, http.StatusForbidden, "options.limit exceeds the maximum allowed value of 2"},
		{"too many results", utils.M{}, http.StatusForbidden, "please use pagination"},
		{"inverted range", utils.M{"range": utils.M{"from": 10, "to": 5}}, http.StatusBadRequest, "filter.Range.To must be greater"},
		{"bad order", utils.M{"order": "sideways"}, http.StatusBadRequest, "order"},
		{"unknown field", utils.M{"criteria": 1}, http.StatusBadRequest, "unknown field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, status, body := filterEvents(t, ts, tt.filter)
			assert.Equal(t, tt.status, status)
			assert.Contains(t, body, tt.msg)
		})
	}

	events, status, _ := filterEvents(t, ts, utils.M{"options": utils.M{"limit": 2}})
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, events, 2)
}
