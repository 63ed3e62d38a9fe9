// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstake/lockstake/builtin/staker/reverts"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("bad")), http.StatusBadRequest, "bad\n"},
		{"no cause", &httpError{status: http.StatusNotFound}, http.StatusNotFound, ""},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "boom\n"},
		{"revert", LedgerError(reverts.ErrInvalidAmount), http.StatusBadRequest, "invalid amount\n"},
		{"unauthorized", LedgerError(reverts.ErrUnauthorized), http.StatusForbidden, "caller is not an admin\n"},
		{"wrapped not found", LedgerError(pkgerrors.Wrap(reverts.ErrStakeNotFound, "close")), http.StatusNotFound, "close: stake not found\n"},
		{"internal", LedgerError(errors.New("disk")), http.StatusInternalServerError, "disk\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error { return tt.err })(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.body, rr.Body.String())
		})
	}
}

func TestParseJSONIsStrict(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	assert.NoError(t, ParseJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Equal(t, 1, v.A)
	assert.Error(t, ParseJSON(strings.NewReader(`{"b":1}`), &v))
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rr, M{"amount": Amount(uint256.NewInt(255))}))
	assert.Equal(t, JSONContentType, rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"amount":"0xff"}`, rr.Body.String())
}

func TestParseAmount(t *testing.T) {
	var req struct {
		Amount *math.HexOrDecimal256 `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"1000"}`), &req))
	v, err := ParseAmount(req.Amount)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(1000), v)

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"0x10"}`), &req))
	v, err = ParseAmount(req.Amount)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(16), v)

	_, err = ParseAmount(nil)
	assert.Error(t, err)

	_, err = ParseAmount((*math.HexOrDecimal256)(big.NewInt(-1)))
	assert.Error(t, err)

	huge := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = ParseAmount((*math.HexOrDecimal256)(huge))
	assert.Error(t, err)
}
