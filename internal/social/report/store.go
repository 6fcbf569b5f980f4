// Copyright (c) 2026 Socio. All rights reserved.

package report

import "context"

// # Report Data Access

// Repository defines the data access contract for post reports.
type Repository interface {

	/*
		Create persists a report.

		Parameters:
		  - context: context.Context
		  - report: *Report

		Returns:
		  - error: dberr.ErrNotFound if the post or reporter is missing,
		    dberr.ErrDuplicate if the reporter already flagged the post
	*/
	Create(context context.Context, report *Report) error

	/*
		List returns a page of open reports, oldest first so the queue
		drains in arrival order.

		Parameters:
		  - context: context.Context
		  - limit, offset: int

		Returns:
		  - []*Report: Ordered page
		  - int: Total report count
		  - error: Retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Report, int, error)

	/*
		Delete removes a resolved report.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: dberr.ErrNotFound if missing
	*/
	Delete(context context.Context, id string) error
}
