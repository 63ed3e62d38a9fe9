// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lockstake/lockstake/log"
)

var (
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a custom genesis file (devnet if not set)",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a yaml file overriding the devnet ledger constants",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for ledger databases",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "keep ledger data in data-dir (in memory if not set)",
	}
	cacheFlag = cli.Uint64Flag{
		Name:  "cache",
		Usage: "megabytes of ram allocated to the ledger database cache",
		Value: 128,
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: "pool.ntp.org",
		Usage: "NTP server used to check the local clock at startup (empty to skip)",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /logs API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	skipLogsFlag = cli.BoolFlag{
		Name:  "skip-logs",
		Usage: "skip writing stake events (/logs API will be disabled)",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "expose the log level under /admin/loglevel",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "",
		Usage: "serve metrics on a separate address (the API serves /metrics if not set)",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}

	// command flags
	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address of the account sending the operation",
	}
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "address of the stake owner",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "token amount, hex or decimal",
	}
	daysFlag = cli.Uint64Flag{
		Name:  "days",
		Usage: "lock length in days",
	}
	stakeIDFlag = cli.Uint64Flag{
		Name:  "id",
		Usage: "stake id",
	}
	rateFlag = cli.StringFlag{
		Name:  "rate",
		Usage: "emission per second, hex or decimal",
	}
)
