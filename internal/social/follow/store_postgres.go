// Copyright (c) 2026 Socio. All rights reserved.

package follow

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socioapp/socio/internal/platform/dberr"
	"github.com/socioapp/socio/internal/users/user"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed follow store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Create persists a new follow edge row.

Parameters:
  - context: context.Context
  - follow: *Follow

Returns:
  - error: dberr.ErrDuplicate on repeated edge, dberr.ErrNotFound on a
    missing endpoint (foreign key violation)
*/
func (repository *PostgresRepository) Create(context context.Context, follow *Follow) error {
	const query = `
		INSERT INTO social.follow (id, followerid, followeeid)
		VALUES ($1, $2, $3)
		RETURNING createdat
	`

	err := repository.db.QueryRow(context, query,
		follow.ID, follow.FollowerID, follow.FolloweeID,
	).Scan(&follow.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "follow_create")
	}

	return nil
}

/*
Delete removes the edge from followerID to followeeID.

Parameters:
  - context: context.Context
  - followerID, followeeID: string

Returns:
  - error: dberr.ErrNotFound when no edge was removed
*/
func (repository *PostgresRepository) Delete(context context.Context, followerID, followeeID string) error {
	const query = `DELETE FROM social.follow WHERE followerid = $1 AND followeeid = $2`

	tag, err := repository.db.Exec(context, query, followerID, followeeID)
	if err != nil {
		return dberr.Wrap(err, "follow_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// Exists reports whether followerID follows followeeID.
func (repository *PostgresRepository) Exists(context context.Context, followerID, followeeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM social.follow WHERE followerid = $1 AND followeeid = $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, followerID, followeeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "follow_exists")
	}

	return exists, nil
}

// followPageColumns projects the joined account the same way the user store
// does, so both stores hydrate identical entities.
const followPageColumns = `
	a.id, a.email, a.name, a.passwordhash, a.dateofbirth,
	a.isadmin, a.isprivate,
	(SELECT COUNT(*) FROM social.follow fc WHERE fc.followeeid = a.id) AS followercount,
	a.createdat, a.updatedat,
	COUNT(*) OVER() AS total
`

/*
ListFollowers returns a page of accounts that follow userID.

Parameters:
  - context: context.Context
  - userID: string
  - limit, offset: int

Returns:
  - []*user.User: Page ordered by newest edge first
  - int: Total follower count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListFollowers(context context.Context, userID string, limit, offset int) ([]*user.User, int, error) {
	const query = `
		SELECT ` + followPageColumns + `
		FROM social.follow f
		JOIN users.account a ON a.id = f.followerid
		WHERE f.followeeid = $1
		ORDER BY f.createdat DESC, f.id ASC
		LIMIT $2 OFFSET $3
	`
	return repository.listUsers(context, query, "follow_list_followers", userID, limit, offset)
}

/*
ListFollowing returns a page of accounts that userID follows.

Parameters:
  - context: context.Context
  - userID: string
  - limit, offset: int

Returns:
  - []*user.User: Page ordered by newest edge first
  - int: Total following count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListFollowing(context context.Context, userID string, limit, offset int) ([]*user.User, int, error) {
	const query = `
		SELECT ` + followPageColumns + `
		FROM social.follow f
		JOIN users.account a ON a.id = f.followeeid
		WHERE f.followerid = $1
		ORDER BY f.createdat DESC, f.id ASC
		LIMIT $2 OFFSET $3
	`
	return repository.listUsers(context, query, "follow_list_following", userID, limit, offset)
}

// listUsers runs a follow page query and hydrates the joined accounts.
func (repository *PostgresRepository) listUsers(context context.Context, query, action string, args ...any) ([]*user.User, int, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var users []*user.User
	var total int
	for rows.Next() {
		entry := &user.User{}
		err := rows.Scan(
			&entry.ID, &entry.Email, &entry.Name, &entry.PasswordHash, &entry.DateOfBirth,
			&entry.IsAdmin, &entry.IsPrivate, &entry.FollowerCount,
			&entry.CreatedAt, &entry.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_follow_user")
		}
		users = append(users, entry)
	}

	return users, total, nil
}
