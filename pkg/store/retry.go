// retry.go shields store writes from SQLite contention.
//
// Several chron invocations can hit one timeline database at once — a
// solve recording its result while another shell edits events. WAL mode
// plus the busy_timeout pragma absorb most of that, but modernc.org/sqlite
// still surfaces transient failures (BUSY, LOCKED, IOERR_SHORT_READ) that
// are worth a second try at the application level.
//
// Not every write deserves the same patience. Event and assertion edits
// sit on an interactive command, so they give up quickly and let the user
// rerun. Solve-log appends are bookkeeping after the answer is already
// computed; losing one to a momentary lock would be worse than waiting,
// so they retry longer with a higher delay ceiling.
package store

import (
	"math/rand"
	"strings"
	"time"
)

// retryPolicy decides which errors are worth retrying and how patiently.
// The delay doubles after every failed attempt, capped at ceiling, with
// up to base/2 of jitter so colliding invocations spread out.
type retryPolicy struct {
	attempts  int           // total tries, including the first
	base      time.Duration // delay before the first retry
	ceiling   time.Duration // upper bound on the doubled delay
	transient []string      // error substrings that justify another try
}

// sqliteContention lists the failure signatures modernc.org/sqlite emits
// under concurrent access: SQLITE_BUSY (5), SQLITE_LOCKED (6) and the WAL
// short-read IOERR (522), by name and by embedded code.
var sqliteContention = []string{
	"SQLITE_BUSY",
	"SQLITE_LOCKED",
	"IOERR_SHORT_READ",
	"database is locked",
	"database table is locked",
	"(5)",
	"(6)",
	"(522)",
}

// editPolicy covers interactive writes: events, assertions, toggles.
var editPolicy = retryPolicy{
	attempts:  3,
	base:      25 * time.Millisecond,
	ceiling:   100 * time.Millisecond,
	transient: sqliteContention,
}

// logPolicy covers solve-log appends, which should survive contention
// rather than drop an already-computed result.
var logPolicy = retryPolicy{
	attempts:  6,
	base:      50 * time.Millisecond,
	ceiling:   800 * time.Millisecond,
	transient: sqliteContention,
}

// retriable reports whether err matches one of the policy's transient
// signatures. Anything else (constraint violations, schema errors) is
// permanent and must surface immediately.
func (p retryPolicy) retriable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, sig := range p.transient {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// run executes fn under the policy: permanent errors and successes return
// at once, transient errors sleep and try again until the attempt budget
// is spent.
func (p retryPolicy) run(fn func() error) error {
	delay := p.base
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !p.retriable(err) || attempt >= p.attempts {
			return err
		}
		time.Sleep(delay + time.Duration(rand.Int63n(int64(p.base/2)+1)))
		delay *= 2
		if delay > p.ceiling {
			delay = p.ceiling
		}
	}
}
