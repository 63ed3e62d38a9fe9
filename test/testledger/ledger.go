// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testledger builds in-memory ledgers driven by a fake clock.
package testledger

import (
	"time"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/genesis"
	"github.com/lockstake/lockstake/ledger"
	"github.com/lockstake/lockstake/lockstake"
	"github.com/lockstake/lockstake/logdb"
	"github.com/lockstake/lockstake/lvldb"
)

const (
	// LaunchTime is the genesis timestamp, the start of day 0.
	LaunchTime = 1_000_000
	// DayLength is the day length in seconds.
	DayLength = 100
	// Balance is the genesis balance of every dev account.
	Balance = 10_000
	// Reserve is the genesis custody reserve.
	Reserve = 1_000_000
)

// Ledger is an in-memory ledger with its clock and event index exposed.
type Ledger struct {
	*ledger.Ledger
	Clock clockwork.FakeClock
	LogDB *logdb.LogDB

	db *lvldb.LevelDB
}

// Config returns the small constants used by test ledgers.
func Config() *lockstake.Config {
	return &lockstake.Config{
		DayLength:        DayLength,
		LPBAmountCap:     uint256.NewInt(1000),
		LPBDayDivisor:    uint256.NewInt(1000),
		LPBAmountDivisor: uint256.NewInt(1000),
		Precision:        uint256.NewInt(1e12),
	}
}

// Admin returns the admin of test ledgers.
func Admin() lockstake.Address {
	return genesis.DevAccounts()[0]
}

// Accounts returns the funded non-admin accounts.
func Accounts() []lockstake.Address {
	return genesis.DevAccounts()[1:]
}

// Genesis creates the test genesis with the given emission rate.
func Genesis(rate uint64) (*genesis.Genesis, error) {
	accounts := make([]genesis.Account, 0, len(genesis.DevAccounts()))
	for _, addr := range genesis.DevAccounts() {
		accounts = append(accounts, genesis.Account{Address: addr, Balance: uint256.NewInt(Balance)})
	}
	return genesis.NewCustomNet(&genesis.CustomGenesis{
		Name:           "testledger",
		LaunchTime:     LaunchTime,
		EmissionRate:   uint256.NewInt(rate),
		CustodyReserve: uint256.NewInt(Reserve),
		Admins:         []lockstake.Address{Admin()},
		Accounts:       accounts,
		Config:         Config(),
	})
}

// NewDefault creates a ledger without emission, ten seconds into day 0.
func NewDefault() (*Ledger, error) {
	return New(0)
}

// New creates a ledger with the given emission rate.
func New(rate uint64) (*Ledger, error) {
	gen, err := Genesis(rate)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create genesis")
	}
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	logDB, err := logdb.NewMem()
	if err != nil {
		db.Close()
		return nil, err
	}

	clock := clockwork.NewFakeClockAt(time.Unix(LaunchTime+10, 0))
	l, err := ledger.New(db, gen, ledger.WithClock(clock), ledger.WithLogDB(logDB))
	if err != nil {
		logDB.Close()
		db.Close()
		return nil, err
	}
	return &Ledger{Ledger: l, Clock: clock, LogDB: logDB, db: db}, nil
}

// AdvanceDays moves the clock forward by whole days.
func (l *Ledger) AdvanceDays(days int) {
	l.Clock.Advance(time.Duration(days*DayLength) * time.Second)
}

// Day returns the current day index.
func (l *Ledger) Day() uint64 {
	return l.DayOf(l.Clock.Now())
}

// Close releases the underlying stores.
func (l *Ledger) Close() error {
	if err := l.LogDB.Close(); err != nil {
		return err
	}
	return l.db.Close()
}
