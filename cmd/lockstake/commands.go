// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/lockstake/lockstake/api/stakes"
	"github.com/lockstake/lockstake/builtin/staker"
	"github.com/lockstake/lockstake/ledger"
)

// withLedger runs f against the persisted ledger of the selected network.
func withLedger(ctx *cli.Context, f func(l *ledger.Ledger) error) error {
	initLogger(ctx)
	n := openNode(ctx, true)
	defer n.Close()
	return f(n.ledger)
}

func printEvent(w io.Writer, ev staker.Event) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stakes.ConvertEvent(ev))
}

func poolAction(ctx *cli.Context) error {
	return withLedger(ctx, func(l *ledger.Ledger) error {
		p, now, err := l.Pool()
		if err != nil {
			return err
		}
		fmt.Printf(`Pool at %v (day %v)
    Total pooled        [ %v ]
    Rewards per second  [ %v ]
    Acc reward / share  [ %v ]
    Last reward time    [ %v ]
`,
			time.Unix(int64(now), 0), l.DayOf(time.Unix(int64(now), 0)),
			p.TotalPooled, p.RewardsPerSecond, p.AccRewardPerShare,
			time.Unix(int64(p.LastRewardTime), 0))
		return nil
	})
}

func stakesAction(ctx *cli.Context) error {
	account, err := requireAddress(ctx, accountFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		list, err := l.Stakes(account)
		if err != nil {
			return err
		}
		day := l.DayOf(time.Unix(int64(l.Now()), 0))
		fmt.Printf("%-6s %-6s %-28s %-10s %-10s %-10s\n", "INDEX", "ID", "AMOUNT", "POOLED", "DAYS", "STATUS")
		for i, s := range list {
			fmt.Printf("%-6d %-6d %-28v %-10d %-10d %-10v\n", i, s.ID, s.StakedAmount, s.PooledDay, s.StakedDays, s.Status(day))
		}
		return nil
	})
}

func openAction(ctx *cli.Context) error {
	caller, err := requireAddress(ctx, callerFlag)
	if err != nil {
		return err
	}
	amount, err := requireAmount(ctx, amountFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		ev, err := l.Open(context.Background(), caller, amount, ctx.Uint64(daysFlag.Name))
		if err != nil {
			return err
		}
		return printEvent(os.Stdout, ev)
	})
}

func closeAction(ctx *cli.Context) error {
	caller, err := requireAddress(ctx, callerFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		ev, err := l.CloseByID(context.Background(), caller, ctx.Uint64(stakeIDFlag.Name))
		if err != nil {
			return err
		}
		return printEvent(os.Stdout, ev)
	})
}

func unpoolAction(ctx *cli.Context) error {
	admin, err := requireAddress(ctx, callerFlag)
	if err != nil {
		return err
	}
	account, err := requireAddress(ctx, accountFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		ev, err := l.Unpool(context.Background(), admin, account, ctx.Uint64(stakeIDFlag.Name))
		if err != nil {
			return err
		}
		return printEvent(os.Stdout, ev)
	})
}

func setRateAction(ctx *cli.Context) error {
	admin, err := requireAddress(ctx, callerFlag)
	if err != nil {
		return err
	}
	rate, err := requireAmount(ctx, rateFlag)
	if err != nil {
		return err
	}
	return withLedger(ctx, func(l *ledger.Ledger) error {
		ev, err := l.SetEmissionRate(context.Background(), admin, rate)
		if err != nil {
			return err
		}
		return printEvent(os.Stdout, ev)
	})
}
