// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

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

var (
	tl *testledger.Ledger
	ts *httptest.Server
)

func TestAccounts(t *testing.T) {
	initAccountServer(t)
	defer ts.Close()
	defer tl.Close()

	for name, tt := range map[string]func(*testing.T){
		"getAccount":            getAccount,
		"getAdminAccount":       getAdminAccount,
		"getAccountInvalidAddr": getAccountInvalidAddr,
		"getStakes":             getStakes,
		"getStake":              getStake,
		"getStakeNotFound":      getStakeNotFound,
		"getStakeInvalidID":     getStakeInvalidID,
	} {
		t.Run(name, tt)
	}
}

func initAccountServer(t *testing.T) {
	var err error
	tl, err = testledger.NewDefault()
	require.NoError(t, err)

	staker := testledger.Accounts()[0]
	_, err = tl.Open(context.Background(), staker, uint256.NewInt(1000), 10)
	require.NoError(t, err)
	_, err = tl.Open(context.Background(), staker, uint256.NewInt(500), 5)
	require.NoError(t, err)

	router := mux.NewRouter()
	New(tl.Ledger).Mount(router, "/accounts")
	ts = httptest.NewServer(router)
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func getAccount(t *testing.T) {
	body, status := httpGet(t, ts.URL+"/accounts/"+testledger.Accounts()[0].String())
	require.Equal(t, http.StatusOK, status)

	var acc Account
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.Equal(t, "0x20ab", acc.Balance.String()) // 8500
	assert.False(t, acc.IsAdmin)
	assert.Equal(t, "0x5dc", acc.TotalAmount.String()) // 1500
	assert.Equal(t, uint64(2), acc.StakeCount)
	assert.Equal(t, uint64(2), acc.LastStakeID)
}

func getAdminAccount(t *testing.T) {
	body, status := httpGet(t, ts.URL+"/accounts/"+testledger.Admin().String())
	require.Equal(t, http.StatusOK, status)

	var acc Account
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.True(t, acc.IsAdmin)
	assert.Equal(t, uint64(0), acc.StakeCount)
	assert.Equal(t, "0x0", acc.TotalAmount.String())
}

func getAccountInvalidAddr(t *testing.T) {
	body, status := httpGet(t, ts.URL+"/accounts/0xnothex")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "address")
}

func getStakes(t *testing.T) {
	body, status := httpGet(t, ts.URL+"/accounts/"+testledger.Accounts()[0].String()+"/stakes")
	require.Equal(t, http.StatusOK, status)

	var stakes []*Stake
	require.NoError(t, json.Unmarshal(body, &stakes))
	require.Len(t, stakes, 2)
	assert.Equal(t, uint64(1), stakes[0].ID)
	assert.Equal(t, uint64(0), stakes[0].Index)
	assert.Equal(t, uint64(1), stakes[0].PooledDay)
	assert.Equal(t, uint64(11), stakes[0].EndDay)
	assert.Equal(t, "pending", stakes[0].Status)
	assert.Equal(t, uint64(2), stakes[1].ID)
	assert.Equal(t, uint64(1), stakes[1].Index)
	assert.Equal(t, "0x1f4", stakes[1].StakedAmount.String())

	body, status = httpGet(t, ts.URL+"/accounts/"+testledger.Accounts()[1].String()+"/stakes")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))
}

func getStake(t *testing.T) {
	body, status := httpGet(t, ts.URL+"/accounts/"+testledger.Accounts()[0].String()+"/stakes/2")
	require.Equal(t, http.StatusOK, status)

	var detail StakeDetail
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, uint64(2), detail.ID)
	assert.Equal(t, uint64(1), detail.Index)
	assert.Equal(t, "pending", detail.Status)
	require.NotNil(t, detail.Estimate)
	// a pending stake returns its principal
	assert.Equal(t, uint64(0), detail.Estimate.ServedDays)
	assert.Equal(t, "0x1f4", detail.Estimate.StakeReturn.String())
	assert.Equal(t, "0x0", detail.Estimate.Penalty.String())
}

func getStakeNotFound(t *testing.T) {
	_, status := httpGet(t, ts.URL+"/accounts/"+testledger.Accounts()[0].String()+"/stakes/9")
	assert.Equal(t, http.StatusNotFound, status)
}

func getStakeInvalidID(t *testing.T) {
	_, status := httpGet(t, ts.URL+"/accounts/"+testledger.Accounts()[0].String()+"/stakes/abc")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStakeWithoutEstimate(t *testing.T) {
	l, err := testledger.NewDefault()
	require.NoError(t, err)
	defer l.Close()

	owner := testledger.Accounts()[1]
	opened, err := l.Open(context.Background(), owner, uint256.NewInt(1000), 10)
	require.NoError(t, err)
	l.AdvanceDays(1)

	router := mux.NewRouter()
	New(l.Ledger).Mount(router, "/accounts")
	srv := httptest.NewServer(router)
	defer srv.Close()

	// on the pooled day no close can settle
	body, status := httpGet(t, srv.URL+"/accounts/"+owner.String()+"/stakes/1")
	require.Equal(t, http.StatusOK, status)

	var detail StakeDetail
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, opened.ID, detail.ID)
	assert.Equal(t, "pooled", detail.Status)
	assert.Nil(t, detail.Estimate)

	l.AdvanceDays(1)
	body, status = httpGet(t, srv.URL+"/accounts/"+owner.String()+"/stakes/1")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &detail))
	require.NotNil(t, detail.Estimate)
	assert.Equal(t, uint64(1), detail.Estimate.ServedDays)
}
