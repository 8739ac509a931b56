package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserSyncStatus is the mirror row state (must match the user_sync_status
// PostgreSQL enum values).
type UserSyncStatus string

const (
	// UserSyncActive means the row corresponds to a currently-eligible directory record
	UserSyncActive UserSyncStatus = "ACTIVE"

	// UserSyncInactive means the external identifier disappeared from the eligible set
	UserSyncInactive UserSyncStatus = "INACTIVE"
)

// ErrUserNotFound is returned when a mirror user can't be found.
var ErrUserNotFound = errors.New("mirror user not found")

// MirrorUser is one persisted row of the directory mirror. Rows are never
// physically deleted, only transitioned to INACTIVE.
type MirrorUser struct {
	ID                uuid.UUID
	ExternalID        string
	DisplayName       string
	Email             string
	PrincipalName     string
	JobTitle          string
	Department        string
	AccountEnabled    bool
	ExternalCreatedAt *time.Time
	LastSyncedAt      time.Time
	SyncStatus        UserSyncStatus
}

// UpsertUser inserts a new mirror row or unconditionally overwrites all
// mutable fields of an existing one (last-fetch-wins), setting the row
// ACTIVE and stamping last_synced_at. Returns true when a row was created.
func (s *Store) UpsertUser(ctx context.Context, u MirrorUser, now time.Time) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO mirror_users (
			external_id, display_name, email, principal_name, job_title,
			department, account_enabled, external_created_at, last_synced_at, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'ACTIVE')
		ON CONFLICT (external_id) DO UPDATE SET
			display_name        = EXCLUDED.display_name,
			email               = EXCLUDED.email,
			principal_name      = EXCLUDED.principal_name,
			job_title           = EXCLUDED.job_title,
			department          = EXCLUDED.department,
			account_enabled     = EXCLUDED.account_enabled,
			external_created_at = EXCLUDED.external_created_at,
			last_synced_at      = EXCLUDED.last_synced_at,
			sync_status         = 'ACTIVE'
		RETURNING (xmax = 0)`,
		u.ExternalID,
		nilIfEmpty(u.DisplayName),
		nilIfEmpty(u.Email),
		nilIfEmpty(u.PrincipalName),
		nilIfEmpty(u.JobTitle),
		nilIfEmpty(u.Department),
		u.AccountEnabled,
		u.ExternalCreatedAt,
		now,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("failed to upsert mirror user %s: %w", u.ExternalID, err)
	}

	return created, nil
}

// DeactivateAbsent transitions every ACTIVE row whose external identifier is
// not in presentIDs to INACTIVE in a single bulk update, stamping
// last_synced_at. Callers must not invoke this with an empty presentIDs set;
// the empty-set guard belongs to the reconciler, and this method enforces it
// again as a hard error.
func (s *Store) DeactivateAbsent(ctx context.Context, presentIDs []string, now time.Time) (int64, error) {
	if len(presentIDs) == 0 {
		return 0, fmt.Errorf("refusing to deactivate with an empty present set")
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE mirror_users
		SET sync_status = 'INACTIVE', last_synced_at = $2
		WHERE sync_status = 'ACTIVE' AND NOT (external_id = ANY($1))`,
		presentIDs, now)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate absent mirror users: %w", err)
	}

	return tag.RowsAffected(), nil
}

// GetUserByExternalID looks up a single mirror row.
func (s *Store) GetUserByExternalID(ctx context.Context, externalID string) (*MirrorUser, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, external_id, display_name, email, principal_name, job_title,
		       department, account_enabled, external_created_at, last_synced_at, sync_status
		FROM mirror_users
		WHERE external_id = $1`,
		externalID)

	u, err := scanMirrorUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// CountUsersByStatus returns the number of mirror rows per sync status.
func (s *Store) CountUsersByStatus(ctx context.Context) (map[UserSyncStatus]int64, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sync_status, COUNT(*)
		FROM mirror_users
		GROUP BY sync_status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count mirror users: %w", err)
	}
	defer rows.Close()

	counts := make(map[UserSyncStatus]int64)
	for rows.Next() {
		var status UserSyncStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func scanMirrorUser(row pgx.Row) (*MirrorUser, error) {
	var u MirrorUser
	var displayName, email, principalName, jobTitle, department *string

	err := row.Scan(
		&u.ID,
		&u.ExternalID,
		&displayName,
		&email,
		&principalName,
		&jobTitle,
		&department,
		&u.AccountEnabled,
		&u.ExternalCreatedAt,
		&u.LastSyncedAt,
		&u.SyncStatus,
	)
	if err != nil {
		return nil, err
	}

	u.DisplayName = orEmpty(displayName)
	u.Email = orEmpty(email)
	u.PrincipalName = orEmpty(principalName)
	u.JobTitle = orEmpty(jobTitle)
	u.Department = orEmpty(department)

	return &u, nil
}
