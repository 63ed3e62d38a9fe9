// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"log/slog"
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/lockstake/lockstake/api/accounts"
	"github.com/lockstake/lockstake/api/admin"
	"github.com/lockstake/lockstake/api/logs"
	"github.com/lockstake/lockstake/api/pool"
	"github.com/lockstake/lockstake/api/stakes"
	"github.com/lockstake/lockstake/api/subscriptions"
	"github.com/lockstake/lockstake/ledger"
	"github.com/lockstake/lockstake/log"
	"github.com/lockstake/lockstake/metrics"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	PprofOn         bool
	SkipLogs        bool
	EnableReqLogger bool
	EnableMetrics   bool
	LogsLimit       uint64
	// LogLevel, when set, is exposed under /admin/loglevel.
	LogLevel *slog.LevelVar
}

// New return api router
func New(l *ledger.Ledger, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	pool.New(l).
		Mount(router, "/pool")
	accounts.New(l).
		Mount(router, "/accounts")
	stakes.New(l).
		Mount(router, "/stakes")
	admin.New(l, opts.LogLevel).
		Mount(router, "/admin")
	if !opts.SkipLogs {
		logs.New(l, opts.LogsLimit).
			Mount(router, "/logs")
	}
	subs := subscriptions.New(l, origins)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Path("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	compressed := handlers.CompressHandler(router)
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// websocket upgrades need the raw connection
		if r.Header.Get("Upgrade") != "" {
			router.ServeHTTP(w, r)
			return
		}
		compressed.ServeHTTP(w, r)
	})
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id"}),
	)(handler)
	handler = genesisIDHandler(handler, l.GenesisID().String())

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}

// genesisIDHandler stamps responses with the genesis id the ledger was built from.
func genesisIDHandler(h http.Handler, genesisID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-genesis-id", genesisID)
		h.ServeHTTP(w, r)
	})
}
