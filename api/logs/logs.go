// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/api/utils"
	"github.com/lockstake/lockstake/ledger"
	"github.com/lockstake/lockstake/logdb"
)

type Logs struct {
	ledger *ledger.Ledger
	limit  uint64
}

func New(l *ledger.Ledger, logsLimit uint64) *Logs {
	return &Logs{
		ledger: l,
		limit:  logsLimit,
	}
}

func (l *Logs) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter StakeFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if filter.Options != nil && filter.Options.Limit > l.limit {
		return utils.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", l.limit))
	}
	if filter.Options != nil && filter.Options.Offset > maxTime {
		return utils.BadRequest(fmt.Errorf("options.offset exceeds the maximum allowed value of %d", uint64(maxTime)))
	}
	if filter.Range != nil && filter.Range.From != nil && filter.Range.To != nil && *filter.Range.From > *filter.Range.To {
		return utils.BadRequest(errors.New("filter.Range.To must be greater than or equal to filter.Range.From"))
	}
	if filter.Range != nil && filter.Range.To != nil && *filter.Range.To > maxTime {
		return utils.BadRequest(fmt.Errorf("filter.Range.To exceeds the maximum allowed value of %d", uint64(maxTime)))
	}
	switch filter.Order {
	case "", logdb.ASC, logdb.DESC:
	default:
		return utils.BadRequest(fmt.Errorf("order: unsupported value %q", filter.Order))
	}
	if filter.Options == nil {
		// one above the limit to detect whether there are more events than allowed
		filter.Options = &Options{
			Offset: 0,
			Limit:  l.limit + 1,
		}
	}

	events, err := l.ledger.FilterEvents(req.Context(), convertFilter(&filter))
	if err != nil {
		return err
	}
	if len(events) > int(l.limit) {
		return utils.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", l.limit))
	}

	fes := make([]*FilteredEvent, len(events))
	for i, ev := range events {
		fes[i] = convertEvent(ev)
	}
	return utils.WriteJSON(w, fes)
}

func (l *Logs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/stakes").
		Methods(http.MethodPost).
		Name("POST /logs/stakes").
		HandlerFunc(utils.WrapHandlerFunc(l.handleFilter))
}
