// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strings"

	"github.com/lockstake/lockstake/metrics"
)

var (
	metricQueryParameters   = metrics.LazyLoadCounterVec("logdb_query_parameters", []string{"parameters"})
	metricQueryOrderCounter = metrics.LazyLoadCounterVec("logdb_query_order", []string{"order"})
	metricOffsetBucket      = metrics.LazyLoadHistogram("logdb_query_offset_bucket", []int64{
		0, 1_000, 5_000, 10_000, 25_000, 50_000, 100_000, 250_000, 500_000, 1_000_000,
	})
	metricLimitBucket = metrics.LazyLoadHistogram("logdb_query_limit_bucket", []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
	metricInsertedEvents = metrics.LazyLoadCounterVec("logdb_inserted_events", []string{"kind"})
)

func metricsHandleFilter(filter *Filter) {
	if metrics.NoOp() {
		return
	}

	paramsUsed := make([]string, 0, 4)
	if len(filter.Kinds) > 0 {
		paramsUsed = append(paramsUsed, "kind")
	}
	if filter.Account != nil {
		paramsUsed = append(paramsUsed, "account")
	}
	if filter.StakeID != nil {
		paramsUsed = append(paramsUsed, "stakeID")
	}
	if filter.Range != nil {
		paramsUsed = append(paramsUsed, "range")
	}
	metricQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(paramsUsed, ",")})

	if filter.Order == DESC {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "desc"})
	} else {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "asc"})
	}

	if filter.Options != nil {
		metricOffsetBucket().Observe(int64(min(filter.Options.Offset, 1_000_001)))
		metricLimitBucket().Observe(int64(min(filter.Options.Limit, 1001)))
	}
}
