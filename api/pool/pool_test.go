// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
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

	"github.com/lockstake/lockstake/test/testledger"
)

func initPoolServer(t *testing.T) (*testledger.Ledger, *httptest.Server) {
	l, err := testledger.New(7)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	router := mux.NewRouter()
	New(l.Ledger).Mount(router, "/pool")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return l, ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func TestGetPool(t *testing.T) {
	l, ts := initPoolServer(t)

	_, err := l.Open(context.Background(), testledger.Accounts()[0], uint256.NewInt(1000), 10)
	require.NoError(t, err)
	l.AdvanceDays(2)

	body, status := httpGet(t, ts.URL+"/pool")
	require.Equal(t, http.StatusOK, status)

	var p Pool
	require.NoError(t, json.Unmarshal(body, &p))
	assert.True(t, p.Initialized)
	assert.Equal(t, "0x3e8", p.TotalPooled.String())
	assert.Equal(t, "0x7", p.RewardsPerSecond.String())
	assert.Equal(t, uint64(2), p.Day)
	assert.Equal(t, l.Now(), p.Timestamp)
	assert.Equal(t, p.Timestamp, p.LastRewardTime)
	assert.Equal(t, l.GenesisID(), p.GenesisID)
}

func TestGetConfig(t *testing.T) {
	_, ts := initPoolServer(t)

	body, status := httpGet(t, ts.URL+"/pool/config")
	require.Equal(t, http.StatusOK, status)

	var c Config
	require.NoError(t, json.Unmarshal(body, &c))
	assert.Equal(t, uint64(testledger.DayLength), c.DayLength)
	assert.Equal(t, uint64(1), c.MinStakeDays)
	assert.Equal(t, "0x3e8", c.LPBAmountCap.String())
}

func TestPostPoolNotAllowed(t *testing.T) {
	_, ts := initPoolServer(t)

	res, err := http.Post(ts.URL+"/pool", "application/json", nil) //#nosec G107
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
