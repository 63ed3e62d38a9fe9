// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/lockstake/lockstake/api"
	"github.com/lockstake/lockstake/log"
	"github.com/lockstake/lockstake/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	networkFlags := []cli.Flag{
		genesisFlag,
		configFlag,
		dataDirFlag,
		verbosityFlag,
		jsonLogsFlag,
	}

	app := cli.App{
		Version: fullVersion(),
		Name:    "Lockstake",
		Usage:   "Time-locked staking ledger with dual rewards",
		Flags: append(networkFlags,
			persistFlag,
			cacheFlag,
			ntpServerFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			skipLogsFlag,
			enableAdminFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			pprofFlag,
		),
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "pool",
				Usage:  "print the reward pool",
				Flags:  networkFlags,
				Action: poolAction,
			},
			{
				Name:   "stakes",
				Usage:  "list the active stakes of an account",
				Flags:  append(networkFlags, accountFlag),
				Action: stakesAction,
			},
			{
				Name:   "open",
				Usage:  "lock tokens into a new stake",
				Flags:  append(networkFlags, callerFlag, amountFlag, daysFlag),
				Action: openAction,
			},
			{
				Name:   "close",
				Usage:  "close a stake and settle it",
				Flags:  append(networkFlags, callerFlag, stakeIDFlag),
				Action: closeAction,
			},
			{
				Name:   "unpool",
				Usage:  "remove a stake from the pool ahead of close",
				Flags:  append(networkFlags, callerFlag, accountFlag, stakeIDFlag),
				Action: unpoolAction,
			},
			{
				Name:   "set-rate",
				Usage:  "change the emission rate",
				Flags:  append(networkFlags, callerFlag, rateFlag),
				Action: setRateAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { logger.Info("exited") }()

	level := initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	n := openNode(ctx, ctx.Bool(persistFlag.Name))
	defer n.Close()

	var metricsURL string
	if ctx.Bool(enableMetricsFlag.Name) && ctx.String(metricsAddrFlag.Name) != "" {
		url, closeFunc, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		metricsURL = url
	}

	opts := api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		SkipLogs:        ctx.Bool(skipLogsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
	}
	if ctx.Bool(enableAdminFlag.Name) {
		opts.LogLevel = level
	}
	handler, closeSubs := api.New(n.ledger, opts)
	defer func() { logger.Info("closing subscriptions..."); closeSubs() }()

	apiURL, srvCloser := startAPIServer(ctx, handler)
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	printStartupMessage(n, apiURL, metricsURL)

	if server := ctx.String(ntpServerFlag.Name); server != "" {
		go checkClockOffset(server)
	}

	<-exitSignal.Done()
	return nil
}
