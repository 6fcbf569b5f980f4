// Copyright (c) 2026 Socio. All rights reserved.

package group

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socioapp/socio/internal/platform/dberr"
	"github.com/socioapp/socio/internal/social/visibility"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed group store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// groupColumns is the shared projection for hydrating a [Group] with its
// member count read in the same statement.
const groupColumns = `
	g.id, g.creatorid, g.name, g.slug, g.isprivate,
	(SELECT COUNT(*) FROM social.groupmember m WHERE m.groupid = g.id) AS membercount,
	g.createdat
`

/*
CreateWithCreator persists the group and the creator's membership atomically.

Description: Both inserts run in one transaction. A slug collision rolls the
whole operation back, so a half-created group never becomes visible.

Parameters:
  - context: context.Context
  - group: *Group

Returns:
  - error: dberr.ErrDuplicate on slug collision
*/
func (repository *PostgresRepository) CreateWithCreator(context context.Context, group *Group) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_group_create_tx")
	}
	defer transaction.Rollback(context)

	const groupQuery = `
		INSERT INTO social.usergroup (id, creatorid, name, slug, isprivate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING createdat
	`
	err = transaction.QueryRow(context, groupQuery,
		group.ID, group.CreatorID, group.Name, group.Slug, group.IsPrivate,
	).Scan(&group.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "group_create")
	}

	const memberQuery = `
		INSERT INTO social.groupmember (groupid, userid)
		VALUES ($1, $2)
	`
	if _, err := transaction.Exec(context, memberQuery, group.ID, group.CreatorID); err != nil {
		return dberr.Wrap(err, "group_create_member")
	}

	return transaction.Commit(context)
}

/*
FindByID retrieves a single group with its member count.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Group: Hydrated entity
  - error: dberr.ErrNotFound if missing
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Group, error) {
	const query = `SELECT ` + groupColumns + ` FROM social.usergroup g WHERE g.id = $1`

	group := &Group{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&group.ID, &group.CreatorID, &group.Name, &group.Slug, &group.IsPrivate,
		&group.MemberCount, &group.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "group_find")
	}

	return group, nil
}

// UpdatePrivacy switches the privacy flag of an existing group.
func (repository *PostgresRepository) UpdatePrivacy(context context.Context, groupID string, isPrivate bool) error {
	const query = `UPDATE social.usergroup SET isprivate = $2 WHERE id = $1`

	tag, err := repository.db.Exec(context, query, groupID, isPrivate)
	if err != nil {
		return dberr.Wrap(err, "group_update_privacy")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// GroupMeta returns the creator and privacy projection for policy checks.
func (repository *PostgresRepository) GroupMeta(context context.Context, groupID string) (visibility.GroupMeta, error) {
	const query = `SELECT creatorid, isprivate FROM social.usergroup WHERE id = $1`

	var meta visibility.GroupMeta
	if err := repository.db.QueryRow(context, query, groupID).Scan(&meta.CreatorID, &meta.IsPrivate); err != nil {
		return visibility.GroupMeta{}, dberr.Wrap(err, "group_meta")
	}

	return meta, nil
}

// IsMember reports whether userID belongs to the group.
func (repository *PostgresRepository) IsMember(context context.Context, groupID, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM social.groupmember WHERE groupid = $1 AND userid = $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, groupID, userID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "group_is_member")
	}

	return exists, nil
}

/*
AddMember persists a membership edge row.

Parameters:
  - context: context.Context
  - member: *Member

Returns:
  - error: dberr.ErrDuplicate on repeated membership, dberr.ErrNotFound on
    an unknown group or user (foreign key violation)
*/
func (repository *PostgresRepository) AddMember(context context.Context, member *Member) error {
	const query = `
		INSERT INTO social.groupmember (groupid, userid)
		VALUES ($1, $2)
		RETURNING joinedat
	`

	err := repository.db.QueryRow(context, query, member.GroupID, member.UserID).Scan(&member.JoinedAt)
	if err != nil {
		return dberr.Wrap(err, "group_add_member")
	}

	return nil
}

// RemoveMember deletes a membership edge.
func (repository *PostgresRepository) RemoveMember(context context.Context, groupID, userID string) error {
	const query = `DELETE FROM social.groupmember WHERE groupid = $1 AND userid = $2`

	tag, err := repository.db.Exec(context, query, groupID, userID)
	if err != nil {
		return dberr.Wrap(err, "group_remove_member")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
ListMembers returns a page of the group's members joined with their names.

Parameters:
  - context: context.Context
  - groupID: string
  - limit, offset: int

Returns:
  - []*Member: Page ordered by earliest joiner first
  - int: Total member count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListMembers(context context.Context, groupID string, limit, offset int) ([]*Member, int, error) {
	const query = `
		SELECT m.groupid, m.userid, a.name, m.joinedat, COUNT(*) OVER() AS total
		FROM social.groupmember m
		JOIN users.account a ON a.id = m.userid
		WHERE m.groupid = $1
		ORDER BY m.joinedat ASC, m.userid ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(context, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "group_list_members")
	}
	defer rows.Close()

	var members []*Member
	var total int
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(&member.GroupID, &member.UserID, &member.Name, &member.JoinedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_group_member")
		}
		members = append(members, member)
	}

	return members, total, nil
}

/*
ListByMember returns a page of groups the user belongs to.

Parameters:
  - context: context.Context
  - userID: string
  - limit, offset: int

Returns:
  - []*Group: Page ordered by newest membership first
  - int: Total group count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByMember(context context.Context, userID string, limit, offset int) ([]*Group, int, error) {
	const query = `
		SELECT ` + groupColumns + `, COUNT(*) OVER() AS total
		FROM social.usergroup g
		JOIN social.groupmember m ON m.groupid = g.id
		WHERE m.userid = $1
		ORDER BY m.joinedat DESC, g.id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "group_list_by_member")
	}
	defer rows.Close()

	var groups []*Group
	var total int
	for rows.Next() {
		group := &Group{}
		err := rows.Scan(
			&group.ID, &group.CreatorID, &group.Name, &group.Slug, &group.IsPrivate,
			&group.MemberCount, &group.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_group")
		}
		groups = append(groups, group)
	}

	return groups, total, nil
}
