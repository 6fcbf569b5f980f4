// Copyright (c) 2026 Socio. All rights reserved.

package report

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socioapp/socio/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed report store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Create persists a report row.

Parameters:
  - context: context.Context
  - report: *Report

Returns:
  - error: dberr.ErrDuplicate on a repeated report by the same user,
    dberr.ErrNotFound on a missing post or reporter
*/
func (repository *PostgresRepository) Create(context context.Context, report *Report) error {
	const query = `
		INSERT INTO social.postreport (id, postid, reporterid, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING createdat
	`

	err := repository.db.QueryRow(context, query,
		report.ID, report.PostID, report.ReporterID, report.Reason,
	).Scan(&report.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "report_create")
	}

	return nil
}

// List returns a page of open reports, oldest first.
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Report, int, error) {
	const query = `
		SELECT id, postid, reporterid, reason, createdat, COUNT(*) OVER() AS total
		FROM social.postreport
		ORDER BY createdat ASC, id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "report_list")
	}
	defer rows.Close()

	var reports []*Report
	var total int
	for rows.Next() {
		report := &Report{}
		err := rows.Scan(&report.ID, &report.PostID, &report.ReporterID, &report.Reason, &report.CreatedAt, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_report")
		}
		reports = append(reports, report)
	}

	return reports, total, nil
}

// Delete removes a report by id.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM social.postreport WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "report_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
