// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/api/utils"
	"github.com/lockstake/lockstake/builtin/staker"
	"github.com/lockstake/lockstake/ledger"
)

type Stakes struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Stakes {
	return &Stakes{ledger: l}
}

func (s *Stakes) handleOpen(w http.ResponseWriter, req *http.Request) error {
	var body OpenRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Caller == nil {
		return utils.BadRequest(errors.New("caller: missing"))
	}
	amount, err := utils.ParseAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}

	ev, err := s.ledger.Open(req.Context(), *body.Caller, amount, body.Days)
	if err != nil {
		return utils.LedgerError(err)
	}
	return utils.WriteJSON(w, ConvertEvent(ev))
}

func (s *Stakes) handleClose(w http.ResponseWriter, req *http.Request) error {
	var body CloseRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Caller == nil {
		return utils.BadRequest(errors.New("caller: missing"))
	}

	var (
		ev  *staker.StakeClosed
		err error
	)
	if body.Index != nil {
		ev, err = s.ledger.Close(req.Context(), *body.Caller, *body.Index, body.ID)
	} else {
		ev, err = s.ledger.CloseByID(req.Context(), *body.Caller, body.ID)
	}
	if err != nil {
		return utils.LedgerError(err)
	}
	return utils.WriteJSON(w, ConvertEvent(ev))
}

func (s *Stakes) handleUnpool(w http.ResponseWriter, req *http.Request) error {
	var body UnpoolRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Admin == nil {
		return utils.BadRequest(errors.New("admin: missing"))
	}
	if body.Account == nil {
		return utils.BadRequest(errors.New("account: missing"))
	}

	ev, err := s.ledger.Unpool(req.Context(), *body.Admin, *body.Account, body.ID)
	if err != nil {
		return utils.LedgerError(err)
	}
	return utils.WriteJSON(w, ConvertEvent(ev))
}

func (s *Stakes) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /stakes").
		HandlerFunc(utils.WrapHandlerFunc(s.handleOpen))
	sub.Path("/close").
		Methods(http.MethodPost).
		Name("POST /stakes/close").
		HandlerFunc(utils.WrapHandlerFunc(s.handleClose))
	sub.Path("/unpool").
		Methods(http.MethodPost).
		Name("POST /stakes/unpool").
		HandlerFunc(utils.WrapHandlerFunc(s.handleUnpool))
}
