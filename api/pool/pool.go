// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lockstake/lockstake/api/utils"
	"github.com/lockstake/lockstake/ledger"
)

func New(l *ledger.Ledger) *PoolAPI {
	return &PoolAPI{ledger: l}
}

// PoolAPI serves the pool accumulator and the ledger constants.
type PoolAPI struct {
	ledger *ledger.Ledger
}

func (p *PoolAPI) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	pl, now, err := p.ledger.Pool()
	if err != nil {
		return err
	}
	day := p.ledger.Config().DayIndex(now)
	return utils.WriteJSON(w, convertPool(pl, now, day, p.ledger.GenesisID()))
}

func (p *PoolAPI) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, convertConfig(p.ledger.Config()))
}

func (p *PoolAPI) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pool").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/config").
		Methods(http.MethodGet).
		Name("GET /pool/config").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetConfig))
}
