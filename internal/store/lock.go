package store

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
)

// lockKey maps a sync type to a stable advisory lock key.
func lockKey(syncType string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("dirsync:" + syncType))
	return int64(h.Sum64())
}

// TryAdvisoryLock attempts to take a session-scoped Postgres advisory lock
// for the given sync type. Advancing next_due_at only protects against
// re-triggering from a future tick; the advisory lock is what prevents two
// concurrent runs of the same sync type from racing on the mirror table.
//
// On success it returns a release function that must be called exactly once.
// When the lock is held elsewhere it returns acquired=false and no release
// function.
func (s *Store) TryAdvisoryLock(ctx context.Context, syncType string) (release func(), acquired bool, err error) {
	// The lock is session-scoped, so the connection must be pinned until release.
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire connection for advisory lock: %w", err)
	}

	key := lockKey(syncType)

	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, key).Scan(&acquired); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("failed to take advisory lock for %s: %w", syncType, err)
	}

	if !acquired {
		conn.Release()
		return nil, false, nil
	}

	release = func() {
		// Unlock on a background context so release still happens when the
		// caller's context is already cancelled.
		if _, err := conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, key); err != nil {
			slog.Error("Failed to release advisory lock", "sync_type", syncType, "error", err)
		}
		conn.Release()
	}

	return release, true, nil
}
