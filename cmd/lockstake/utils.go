// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lockstake/lockstake/lockstake"
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "io.lockstake")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "io.lockstake")
		default:
			return filepath.Join(home, ".io.lockstake")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func requireAddress(ctx *cli.Context, flag cli.StringFlag) (lockstake.Address, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return lockstake.Address{}, errors.Errorf("--%s is required", flag.Name)
	}
	addr, err := lockstake.ParseAddress(s)
	if err != nil {
		return lockstake.Address{}, errors.Wrapf(err, "--%s", flag.Name)
	}
	return addr, nil
}

// parseAmount accepts a hex (0x prefixed) or decimal integer below 2^256.
func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, errors.New("missing")
	}
	b, ok := math.ParseBig256(s)
	if !ok || b.Sign() < 0 {
		return nil, errors.Errorf("invalid amount %q", s)
	}
	v, _ := uint256.FromBig(b)
	return v, nil
}

func requireAmount(ctx *cli.Context, flag cli.StringFlag) (*uint256.Int, error) {
	v, err := parseAmount(ctx.String(flag.Name))
	if err != nil {
		return nil, errors.Wrapf(err, "--%s", flag.Name)
	}
	return v, nil
}
