// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
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

func initStakesServer(t *testing.T) (*testledger.Ledger, *httptest.Server) {
	l, err := testledger.NewDefault()
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	router := mux.NewRouter()
	New(l.Ledger).Mount(router, "/stakes")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return l, ts
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func TestOpenAndCloseByID(t *testing.T) {
	l, ts := initStakesServer(t)
	caller := testledger.Accounts()[0]

	body, status := httpPost(t, ts.URL+"/stakes", utils.M{"caller": caller, "amount": "1000", "days": 10})
	require.Equal(t, http.StatusOK, status, string(body))

	var opened Event
	require.NoError(t, json.Unmarshal(body, &opened))
	assert.Equal(t, "StakeOpened", opened.Kind)
	assert.Equal(t, caller, opened.Account)
	assert.Equal(t, uint64(1), opened.StakeID)
	require.NotNil(t, opened.Index)
	assert.Equal(t, uint64(0), *opened.Index)
	assert.Equal(t, "0x3e8", opened.Amount.String())
	assert.Equal(t, uint64(10), opened.Days)

	l.AdvanceDays(11)
	body, status = httpPost(t, ts.URL+"/stakes/close", utils.M{"caller": caller, "id": 1})
	require.Equal(t, http.StatusOK, status, string(body))

	var closed Event
	require.NoError(t, json.Unmarshal(body, &closed))
	assert.Equal(t, "StakeClosed", closed.Kind)
	require.NotNil(t, closed.ServedDays)
	assert.Equal(t, uint64(10), *closed.ServedDays)
	assert.Equal(t, "0x0", closed.CappedPenalty.String())

	bal, err := l.Balance(caller)
	require.NoError(t, err)
	returned := (*big.Int)(closed.Returned).Uint64()
	assert.Equal(t, uint256.NewInt(testledger.Balance-1000+returned), bal)
}

func TestCloseWithIndex(t *testing.T) {
	_, ts := initStakesServer(t)
	caller := testledger.Accounts()[0]

	for i := 0; i < 2; i++ {
		_, status := httpPost(t, ts.URL+"/stakes", utils.M{"caller": caller, "amount": "0x64", "days": 5})
		require.Equal(t, http.StatusOK, status)
	}

	// stake 2 sits in slot 1
	body, status := httpPost(t, ts.URL+"/stakes/close", utils.M{"caller": caller, "id": 2, "index": 0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "stake index does not match stake id")

	body, status = httpPost(t, ts.URL+"/stakes/close", utils.M{"caller": caller, "id": 2, "index": 1})
	require.Equal(t, http.StatusOK, status, string(body))

	var closed Event
	require.NoError(t, json.Unmarshal(body, &closed))
	assert.Equal(t, uint64(2), closed.StakeID)
	assert.Equal(t, "0x64", closed.Returned.String())
}

func TestOpenRejected(t *testing.T) {
	_, ts := initStakesServer(t)
	caller := testledger.Accounts()[0]

	tests := []struct {
		name   string
		body   any
		status int
		msg    string
	}{
		{"zero amount", utils.M{"caller": caller, "amount": "0", "days": 10}, http.StatusBadRequest, "invalid amount"},
		{"missing amount", utils.M{"caller": caller, "days": 10}, http.StatusBadRequest, "amount: missing"},
		{"negative amount", utils.M{"caller": caller, "amount": "-5", "days": 10}, http.StatusBadRequest, "amount: negative"},
		{"zero days", utils.M{"caller": caller, "amount": "10", "days": 0}, http.StatusBadRequest, "invalid stake duration"},
		{"missing caller", utils.M{"amount": "10", "days": 1}, http.StatusBadRequest, "caller: missing"},
		{"unknown field", utils.M{"caller": caller, "amount": "10", "days": 1, "x": 1}, http.StatusBadRequest, "unknown field"},
		{"insufficient balance", utils.M{"caller": caller, "amount": "20000", "days": 1}, http.StatusBadRequest, "insufficient balance"},
		{"no shares", utils.M{"caller": caller, "amount": "10", "days": 1}, http.StatusBadRequest, "stake too small to earn shares"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, status := httpPost(t, ts.URL+"/stakes", tt.body)
			assert.Equal(t, tt.status, status)
			assert.Contains(t, string(body), tt.msg)
		})
	}
}

func TestCloseUnknownStake(t *testing.T) {
	_, ts := initStakesServer(t)

	_, status := httpPost(t, ts.URL+"/stakes/close", utils.M{"caller": testledger.Accounts()[0], "id": 7})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnpool(t *testing.T) {
	l, ts := initStakesServer(t)
	caller := testledger.Accounts()[0]

	_, status := httpPost(t, ts.URL+"/stakes", utils.M{"caller": caller, "amount": "1000", "days": 2})
	require.Equal(t, http.StatusOK, status)

	// not served yet
	body, status := httpPost(t, ts.URL+"/stakes/unpool", utils.M{"admin": testledger.Admin(), "account": caller, "id": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "stake has not entered the pool")

	l.AdvanceDays(3)
	_, status = httpPost(t, ts.URL+"/stakes/unpool", utils.M{"admin": caller, "account": caller, "id": 1})
	assert.Equal(t, http.StatusForbidden, status)

	body, status = httpPost(t, ts.URL+"/stakes/unpool", utils.M{"admin": testledger.Admin(), "account": caller, "id": 1})
	require.Equal(t, http.StatusOK, status, string(body))

	var unpooled Event
	require.NoError(t, json.Unmarshal(body, &unpooled))
	assert.Equal(t, "StakeUnpooled", unpooled.Kind)
	assert.Equal(t, l.Day(), unpooled.UnpooledDay)
	assert.Equal(t, "0x3e8", unpooled.Amount.String())

	body, status = httpPost(t, ts.URL+"/stakes/unpool", utils.M{"admin": testledger.Admin(), "account": caller, "id": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "stake already unpooled")

	_, status = httpPost(t, ts.URL+"/stakes/unpool", utils.M{"admin": testledger.Admin(), "id": 1})
	assert.Equal(t, http.StatusBadRequest, status)
}
