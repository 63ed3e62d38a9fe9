// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/lockstake/lockstake/co"
	"github.com/lockstake/lockstake/genesis"
	"github.com/lockstake/lockstake/ledger"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/log"
	"github.com/lockstake/lockstake/logdb"
	"github.com/lockstake/lockstake/lvldb"
	"github.com/lockstake/lockstake/metrics"
)

const maxClockOffset = 5 * time.Second

func initLogger(ctx *cli.Context) *slog.LevelVar {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name))))
	log.SetDefault(log.NewLogger(log.NewStderrHandler(&level, ctx.Bool(jsonLogsFlag.Name))))
	return &level
}

// loadConfig reads ledger constant overrides from a yaml file.
func loadConfig(path string) (*lockstake.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	var cfg lockstake.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config file")
	}
	return &cfg, nil
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	if path := ctx.String(genesisFlag.Name); path != "" {
		custom, err := genesis.LoadCustomGenesis(path)
		if err != nil {
			return nil, err
		}
		return genesis.NewCustomNet(custom)
	}

	dev := genesis.DevGenesis()
	if path := ctx.String(configFlag.Name); path != "" {
		cfg, err := loadConfig(path)
		if err != nil {
			return nil, err
		}
		dev.Config = cfg
	}
	return genesis.NewCustomNet(dev)
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	dataDir := makeDataDir(ctx)

	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create instance dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

func openMainDB(ctx *cli.Context, dir string) *lvldb.LevelDB {
	cacheMB := normalizeCacheSize(int(ctx.Uint64(cacheFlag.Name)))
	logger.Debug("cache size(MB)", "size", cacheMB)

	fdCache := suggestFDCache()
	logger.Debug("fd cache", "n", fdCache)

	path := filepath.Join(dir, "main.db")
	db, err := lvldb.New(path, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		fatal(fmt.Sprintf("open ledger database [%v]: %v", path, err))
	}
	return db
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 16 {
		sizeMB = 16
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/4 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 4)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		fatal("failed to get fd limit:", err)
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 1024 {
		return 1024
	}
	return n
}

// checkClockOffset warns when the local clock, which decides the current day, drifts from NTP.
func checkClockOffset(server string) {
	resp, err := ntp.Query(server)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > maxClockOffset {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

func openLogDB(dir string) *logdb.LogDB {
	path := filepath.Join(dir, "logs.db")
	db, err := logdb.New(path)
	if err != nil {
		fatal(fmt.Sprintf("open log database [%v]: %v", path, err))
	}
	return db
}

func openMemMainDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open ledger database: %v", err))
	}
	return db
}

func openMemLogDB() *logdb.LogDB {
	db, err := logdb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open log database: %v", err))
	}
	return db
}

type node struct {
	gene        *genesis.Genesis
	ledger      *ledger.Ledger
	instanceDir string
	mainDB      *lvldb.LevelDB
	logDB       *logdb.LogDB
}

func (n *node) Close() {
	if n.logDB != nil {
		logger.Info("closing log database...")
		n.logDB.Close()
	}
	logger.Info("closing ledger database...")
	n.mainDB.Close()
}

// openNode opens the ledger of the selected genesis, on disk when persist is set.
func openNode(ctx *cli.Context, persist bool) *node {
	gene, err := selectGenesis(ctx)
	if err != nil {
		fatal(fmt.Sprintf("select genesis: %v", err))
	}

	n := &node{gene: gene}
	if persist {
		n.instanceDir = makeInstanceDir(ctx, gene)
		n.mainDB = openMainDB(ctx, n.instanceDir)
		if !ctx.Bool(skipLogsFlag.Name) {
			n.logDB = openLogDB(n.instanceDir)
		}
	} else {
		n.instanceDir = "Memory"
		n.mainDB = openMemMainDB()
		if !ctx.Bool(skipLogsFlag.Name) {
			n.logDB = openMemLogDB()
		}
	}

	var opts []ledger.Opt
	if n.logDB != nil {
		opts = append(opts, ledger.WithLogDB(n.logDB))
	}
	n.ledger, err = ledger.New(n.mainDB, gene, opts...)
	if err != nil {
		n.Close()
		fatal(fmt.Sprintf("open ledger: %v", err))
	}
	return n
}

func startAPIServer(ctx *cli.Context, handler http.Handler) (string, func()) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen API addr [%v]: %v", addr, err))
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		goes.Wait()
	}
}

func startMetricsServer(addr string) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen metrics API addr [%v]", addr)
	}

	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	handler := handlers.CompressHandler(router)

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/metrics", func() {
		srv.Close()
		goes.Wait()
	}, nil
}

func printStartupMessage(n *node, apiURL, metricsURL string) {
	p, now, err := n.ledger.Pool()
	if err != nil {
		fatal(fmt.Sprintf("read pool: %v", err))
	}
	if metricsURL == "" {
		metricsURL = "Disabled"
	}

	fmt.Printf(`Starting %v
    Network      [ %v %v ]
    Launched     [ %v ]
    Current day  [ %v ]
    Pool         [ %v pooled, %v per second ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		"Lockstake "+fullVersion(),
		n.gene.ID(), n.gene.Name(),
		time.Unix(int64(n.gene.LaunchTime()), 0),
		n.ledger.DayOf(time.Unix(int64(now), 0)),
		p.TotalPooled, p.RewardsPerSecond,
		n.instanceDir,
		apiURL,
		metricsURL)
}
