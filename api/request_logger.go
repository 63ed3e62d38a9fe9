// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/lockstake/lockstake/log"
)

// maxLoggedBody caps the request body copied into the log line.
const maxLoggedBody = 4096

// RequestLoggerHandler logs every request once it is served, with its body, status and duration.
func RequestLoggerHandler(handler http.Handler, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil && r.Body != http.NoBody {
			var err error
			body, err = io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("unexpected body read error", "err", err)
				http.Error(w, "unable to read request body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		start := time.Now()
		mrw := newMetricsResponseWriter(w)
		handler.ServeHTTP(mrw, r)

		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody]
		}
		logger.Info("API request",
			"method", r.Method,
			"uri", r.URL.String(),
			"status", mrw.statusCode,
			"elapsed", time.Since(start),
			"body", string(body),
		)
	})
}
