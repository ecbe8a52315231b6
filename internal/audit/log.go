/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package audit

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Log writes invocation rows to a SQLite database
//   - nil Log is valid and Record is then a no-op, so shellspawn.Spawn can
//     hold a *Log unconditionally without a nil-interface check at call sites
type Log struct {
	db *sql.DB
}

// Open opens (creating if necessary) a SQLite database at dsn and ensures
// its schema exists
func Open(dsn string) (log *Log, err error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return
	}
	const schema = `
CREATE TABLE IF NOT EXISTS invocation (
	correlation_id TEXT PRIMARY KEY,
	command        TEXT NOT NULL,
	status         INTEGER NOT NULL,
	exit_code      INTEGER NOT NULL,
	started_at     TEXT NOT NULL,
	ended_at       TEXT NOT NULL
)`
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return
	}
	log = &Log{db: db}
	return
}

// Record inserts one invocation row
func (l *Log) Record(correlationID, command string, status, exitCode int, started, ended time.Time) (err error) {
	if l == nil || l.db == nil {
		return
	}
	const insert = `
INSERT OR REPLACE INTO invocation(correlation_id, command, status, exit_code, started_at, ended_at)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err = l.db.Exec(insert, correlationID, command, status, exitCode, TimeToDB(started), TimeToDB(ended))
	return
}

// Close closes the underlying database handle
func (l *Log) Close() (err error) {
	if l == nil || l.db == nil {
		return
	}
	return l.db.Close()
}
