// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/api/admin/loglevel"
	"github.com/lockstake/lockstake/api/utils"
	"github.com/lockstake/lockstake/ledger"
	"github.com/lockstake/lockstake/lockstake"
)

// EmissionRateRequest changes the pool emission rate, Rate being tokens per second.
type EmissionRateRequest struct {
	Admin *lockstake.Address    `json:"admin"`
	Rate  *math.HexOrDecimal256 `json:"rate"`
}

// EmissionRate is the rate change applied.
type EmissionRate struct {
	Timestamp uint64                `json:"timestamp"`
	Admin     lockstake.Address     `json:"admin"`
	OldRate   *math.HexOrDecimal256 `json:"oldRate"`
	NewRate   *math.HexOrDecimal256 `json:"newRate"`
}

type Admin struct {
	ledger   *ledger.Ledger
	logLevel *slog.LevelVar
}

// New creates the admin API. The log level endpoint is mounted only when logLevel is set.
func New(l *ledger.Ledger, logLevel *slog.LevelVar) *Admin {
	return &Admin{ledger: l, logLevel: logLevel}
}

func (a *Admin) handleSetEmissionRate(w http.ResponseWriter, req *http.Request) error {
	var body EmissionRateRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Admin == nil {
		return utils.BadRequest(errors.New("admin: missing"))
	}
	rate, err := utils.ParseAmount(body.Rate)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "rate"))
	}

	ev, err := a.ledger.SetEmissionRate(req.Context(), *body.Admin, rate)
	if err != nil {
		return utils.LedgerError(err)
	}
	return utils.WriteJSON(w, &EmissionRate{
		Timestamp: ev.Time,
		Admin:     ev.Admin,
		OldRate:   utils.Amount(ev.OldRate),
		NewRate:   utils.Amount(ev.NewRate),
	})
}

func (a *Admin) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/emission-rate").
		Methods(http.MethodPost).
		Name("POST /admin/emission-rate").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetEmissionRate))

	if a.logLevel != nil {
		loglevel.New(a.logLevel).Mount(sub, "/loglevel")
	}
}
