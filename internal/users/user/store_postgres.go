// Copyright (c) 2026 Socio. All rights reserved.

package user

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socioapp/socio/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed user store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// userColumns is the shared projection for hydrating a [User], including the
// denormalized follower count read in the same statement.
const userColumns = `
	a.id, a.email, a.name, a.passwordhash, a.dateofbirth,
	a.isadmin, a.isprivate,
	(SELECT COUNT(*) FROM social.follow f WHERE f.followeeid = a.id) AS followercount,
	a.createdat, a.updatedat
`

/*
FindByID retrieves a single user record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated entity
  - error: dberr.ErrNotFound if missing
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account a WHERE a.id = $1`
	return repository.scanUser(context, query, id)
}

/*
FindByEmail retrieves a single user record by its unique email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated entity
  - error: dberr.ErrNotFound if missing
*/
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account a WHERE a.email = $1`
	return repository.scanUser(context, query, email)
}

// ExistsByEmail reports whether an account with the email exists.
func (repository *PostgresRepository) ExistsByEmail(context context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users.account WHERE email = $1)`

	var exists bool
	if err := repository.db.QueryRow(context, query, email).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "user_exists_by_email")
	}

	return exists, nil
}

/*
Create persists a new account row.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: dberr.ErrDuplicate on email collision
*/
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (id, email, name, passwordhash, dateofbirth, isadmin, isprivate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING createdat, updatedat
	`

	err := repository.db.QueryRow(context, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.DateOfBirth,
		user.IsAdmin, user.IsPrivate,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "user_create")
	}

	return nil
}

/*
Update modifies the mutable profile fields of an existing account.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: dberr.ErrNotFound if the row vanished
*/
func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET name = $2, dateofbirth = $3, isprivate = $4, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`

	err := repository.db.QueryRow(context, query,
		user.ID, user.Name, user.DateOfBirth, user.IsPrivate,
	).Scan(&user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "user_update")
	}

	return nil
}

/*
ListByFollowerCount returns a page of member statistics ordered by follower
count descending, ties broken by registration date then id.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Stats: Ordered page
  - int: Total member count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByFollowerCount(context context.Context, limit, offset int) ([]*Stats, int, error) {
	const query = `
		SELECT
			a.id, a.email, a.name,
			(SELECT COUNT(*) FROM social.follow f WHERE f.followeeid = a.id) AS followercount,
			a.createdat,
			COUNT(*) OVER() AS total
		FROM users.account a
		ORDER BY followercount DESC, a.createdat DESC, a.id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "user_list_by_followers")
	}
	defer rows.Close()

	var stats []*Stats
	var total int
	for rows.Next() {
		entry := &Stats{}
		err := rows.Scan(&entry.UserID, &entry.Email, &entry.Name, &entry.FollowerCount, &entry.RegistrationDate, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user_stats")
		}
		stats = append(stats, entry)
	}

	return stats, total, nil
}

/*
ListByBirthday returns every user whose date of birth falls on the given
month and day.

Parameters:
  - context: context.Context
  - month: time.Month
  - day: int

Returns:
  - []*User: Matching users, no particular order
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByBirthday(context context.Context, month time.Month, day int) ([]*User, error) {
	const query = `SELECT ` + userColumns + `
		FROM users.account a
		WHERE a.dateofbirth IS NOT NULL
		  AND EXTRACT(MONTH FROM a.dateofbirth) = $1
		  AND EXTRACT(DAY FROM a.dateofbirth) = $2
	`

	rows, err := repository.db.Query(context, query, int(month), day)
	if err != nil {
		return nil, dberr.Wrap(err, "user_list_by_birthday")
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		err := rows.Scan(
			&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.DateOfBirth,
			&user.IsAdmin, &user.IsPrivate, &user.FollowerCount,
			&user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	return users, nil
}

// scanUser runs a single-row user query and hydrates the entity.
func (repository *PostgresRepository) scanUser(context context.Context, query string, args ...any) (*User, error) {
	user := &User{}
	err := repository.db.QueryRow(context, query, args...).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.DateOfBirth,
		&user.IsAdmin, &user.IsPrivate, &user.FollowerCount,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "user_find")
	}

	return user, nil
}
