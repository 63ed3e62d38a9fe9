// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// amounts are stored as decimal text, sqlite integers are 64 bits
const stakeEventTableSchema = `CREATE TABLE IF NOT EXISTS stakeEvent (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	time INTEGER NOT NULL,
	account BLOB(20) NOT NULL,
	stakeID INTEGER NOT NULL,
	amount TEXT,
	days INTEGER NOT NULL DEFAULT 0,
	payout TEXT,
	penalty TEXT,
	returned TEXT,
	servedDays INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS stakeEventAccountIndex ON stakeEvent(account, stakeID);
CREATE INDEX IF NOT EXISTS stakeEventTimeIndex ON stakeEvent(time);
CREATE INDEX IF NOT EXISTS stakeEventKindIndex ON stakeEvent(kind);`

const stakeEventColumns = "seq, kind, time, account, stakeID, amount, days, payout, penalty, returned, servedDays"

const insertStakeEvent = `INSERT INTO stakeEvent(kind, time, account, stakeID, amount, days, payout, penalty, returned, servedDays)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
