package tenant

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// poolEntry is a cached tenant pool plus its last-access timestamp. pool is
// immutable for the entry's lifetime; lastAccessed mutates under the
// cache's lock.
type poolEntry struct {
	pool         *pgxpool.Pool
	lastAccessed time.Time
}
