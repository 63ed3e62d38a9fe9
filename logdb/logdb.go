// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb indexes ledger events in sqlite for filtered queries.
package logdb

import (
	"context"
	"database/sql"
	"strings"

	"github.com/holiman/uint256"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/lockstake/lockstake/lockstake"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	insertStmt    *sql.Stmt
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	if path == ":memory:" {
		// every connection would open its own in-memory database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(stakeEventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	insertStmt, err := db.Prepare(insertStakeEvent)
	if err != nil {
		return nil, errors.Wrap(err, "prepare insert")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
		insertStmt,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	_ = db.insertStmt.Close()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

func decimalOrNil(v *uint256.Int) any {
	if v == nil {
		return nil
	}
	return v.Dec()
}

// Insert stores events in one transaction. Seq of every event is set on success.
func (db *LogDB) Insert(ctx context.Context, events ...*Event) (err error) {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txStmt := tx.StmtContext(ctx, db.insertStmt)
	seqs := make([]uint64, 0, len(events))
	for _, ev := range events {
		res, err := txStmt.ExecContext(ctx,
			ev.Kind,
			ev.Time,
			ev.Account.Bytes(),
			ev.StakeID,
			decimalOrNil(ev.Amount),
			ev.Days,
			decimalOrNil(ev.Payout),
			decimalOrNil(ev.Penalty),
			decimalOrNil(ev.Returned),
			ev.ServedDays,
		)
		if err != nil {
			return errors.Wrapf(err, "insert %v event", ev.Kind)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		seqs = append(seqs, uint64(id))
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	for i, ev := range events {
		ev.Seq = seqs[i]
		metricInsertedEvents().AddWithLabel(1, map[string]string{"kind": ev.Kind})
	}
	return nil
}

// Filter returns the events matching filter, all events for a nil filter.
func (db *LogDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	const query = "SELECT " + stakeEventColumns + " FROM stakeEvent"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC")
	}
	metricsHandleFilter(filter)

	var args []any
	stmt := query + " WHERE 1"
	if len(filter.Kinds) > 0 {
		stmt += " AND kind IN (?" + strings.Repeat(",?", len(filter.Kinds)-1) + ")"
		for _, k := range filter.Kinds {
			args = append(args, k)
		}
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ?"
	}
	if filter.StakeID != nil {
		args = append(args, *filter.StakeID)
		stmt += " AND stakeID = ?"
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND time >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND time <= ?"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

// LastSeq returns the seq of the latest event, 0 when empty.
func (db *LogDB) LastSeq(ctx context.Context) (uint64, error) {
	var seq sql.NullInt64
	if err := db.db.QueryRowContext(ctx, "SELECT MAX(seq) FROM stakeEvent").Scan(&seq); err != nil {
		return 0, err
	}
	return uint64(seq.Int64), nil
}

func parseDecimal(s sql.NullString) (*uint256.Int, error) {
	if !s.Valid {
		return nil, nil
	}
	return uint256.FromDecimal(s.String)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			ev                                Event
			account                           []byte
			amount, payout, penalty, returned sql.NullString
		)
		if err := rows.Scan(
			&ev.Seq,
			&ev.Kind,
			&ev.Time,
			&account,
			&ev.StakeID,
			&amount,
			&ev.Days,
			&payout,
			&penalty,
			&returned,
			&ev.ServedDays,
		); err != nil {
			return nil, err
		}
		ev.Account = lockstake.BytesToAddress(account)
		if ev.Amount, err = parseDecimal(amount); err != nil {
			return nil, errors.Wrap(err, "amount")
		}
		if ev.Payout, err = parseDecimal(payout); err != nil {
			return nil, errors.Wrap(err, "payout")
		}
		if ev.Penalty, err = parseDecimal(penalty); err != nil {
			return nil, errors.Wrap(err, "penalty")
		}
		if ev.Returned, err = parseDecimal(returned); err != nil {
			return nil, errors.Wrap(err, "returned")
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
