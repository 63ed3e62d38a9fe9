// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/api/utils"
	"github.com/lockstake/lockstake/ledger"
	"github.com/lockstake/lockstake/lockstake"
)

type Accounts struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Accounts {
	return &Accounts{ledger: l}
}

func parseAddress(req *http.Request) (lockstake.Address, error) {
	addr, err := lockstake.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return lockstake.Address{}, utils.BadRequest(errors.WithMessage(err, "address"))
	}
	return addr, nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	balance, err := a.ledger.Balance(addr)
	if err != nil {
		return err
	}
	isAdmin, err := a.ledger.IsAdmin(addr)
	if err != nil {
		return err
	}
	pos, err := a.ledger.Position(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Account{
		Balance:          utils.Amount(balance),
		IsAdmin:          isAdmin,
		RewardDebt:       utils.Amount(pos.RewardDebt),
		LastStakeID:      pos.LastStakeID,
		StakeSharesTotal: utils.Amount(pos.StakeSharesTotal),
		TotalAmount:      utils.Amount(pos.TotalAmount),
		StakeCount:       pos.StakeCount,
	})
}

func (a *Accounts) handleGetStakes(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	stakes, err := a.ledger.Stakes(addr)
	if err != nil {
		return err
	}
	day := a.ledger.Config().DayIndex(a.ledger.Now())
	result := make([]*Stake, 0, len(stakes))
	for i, s := range stakes {
		result = append(result, convertStake(s, uint64(i), day))
	}
	return utils.WriteJSON(w, result)
}

func (a *Accounts) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	stake, est, err := a.ledger.Stake(addr, id)
	if err != nil {
		return utils.LedgerError(err)
	}
	detail := &StakeDetail{
		Stake:    *convertStake(stake, est.Index, 0),
		Estimate: convertEstimate(est),
	}
	detail.Status = est.Status.String()
	return utils.WriteJSON(w, detail)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/stakes").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/stakes").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetStakes))
	sub.Path("/{address}/stakes/{id}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/stakes/{id}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetStake))
}
