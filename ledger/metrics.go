// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/lockstake/lockstake/metrics"
)

var (
	metricOpCounter     = metrics.LazyLoadCounterVec("ledger_ops_count", []string{"op", "outcome"})
	metricOpDuration    = metrics.LazyLoadHistogramVec("ledger_op_duration_us", []string{"op"}, metrics.BucketLedgerOps)
	metricPoolGauge     = metrics.LazyLoadGaugeVec("pool_state", []string{"field"})
	metricLogDBFailures = metrics.LazyLoadCounter("ledger_logdb_failures_count")
)

// gaugeValue clamps v to the gauge range.
func gaugeValue(v *uint256.Int) int64 {
	if !v.IsUint64() || v.Uint64() > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v.Uint64())
}
