// Package repository contains data access logic for the events,
// participants and users tables.  Repositories hold a *sql.DB and
// expose context-aware CRUD methods; multi-step mutations run inside
// transactions so seat counters never drift from the participant rows.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uowclimb/society-seats/internal/model"
)

// eventColumns is the column list shared by every event SELECT.
const eventColumns = `event_id, event_location, event_date, meet_location, meet_time,
	total_seats, seats_taken, require_member, open_datetime, close_datetime, event_status`

// EventRepo manages persistence for events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that need to span a
// transaction across repositories.
func (r *EventRepo) DB() *sql.DB {
	return r.db
}

func scanEvent(row interface{ Scan(...any) error }, e *model.Event) error {
	return row.Scan(
		&e.ID,
		&e.Location,
		&e.Date,
		&e.MeetPoint,
		&e.MeetTime,
		&e.TotalSeats,
		&e.SeatsTaken,
		&e.RequireMember,
		&e.OpenDate,
		&e.CloseDate,
		&e.Status,
	)
}

// List returns every event ordered by id.  When no events exist it
// returns an empty slice and nil error.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events ORDER BY event_id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByID retrieves an event by its ID.  It returns ErrEventNotFound
// if there is no matching row.
func (r *EventRepo) GetByID(ctx context.Context, id int) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE event_id = ?`
	var e model.Event
	if err := scanEvent(r.db.QueryRowContext(ctx, q, id), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event and assigns the generated ID back to the
// struct.  New events start with zero seats taken and scheduled status.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events
		(event_location, event_date, meet_location, meet_time, total_seats, require_member, open_datetime, close_datetime, event_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.Location, e.Date, e.MeetPoint, e.MeetTime,
		e.TotalSeats, e.RequireMember, e.OpenDate, e.CloseDate,
		model.EventStatusScheduled,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = int(id)
	e.SeatsTaken = 0
	e.Status = model.EventStatusScheduled
	return nil
}

// Update rewrites the editable fields of an event.  The seats_taken
// counter is owned by the participant repository and the status by the
// close sweep, so both are persisted as given on the struct; callers
// load the current row first and apply edits on top of it.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events SET
		event_location = ?, event_date = ?, meet_location = ?, meet_time = ?,
		total_seats = ?, seats_taken = ?, require_member = ?,
		open_datetime = ?, close_datetime = ?, event_status = ?
		WHERE event_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Location, e.Date, e.MeetPoint, e.MeetTime,
		e.TotalSeats, e.SeatsTaken, e.RequireMember,
		e.OpenDate, e.CloseDate, e.Status,
		e.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also zero for a no-op update, so confirm the
		// row actually exists before reporting not-found.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE event_id = ? LIMIT 1`, e.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrEventNotFound
			}
			return err
		}
	}
	return nil
}

// MarkClosed flips a scheduled event to closed.  It reports whether
// the transition happened, so the close sweep notifies exactly once
// even when two sweeps race.
func (r *EventRepo) MarkClosed(ctx context.Context, id int) (bool, error) {
	const q = `UPDATE events SET event_status = ? WHERE event_id = ? AND event_status = ?`
	res, err := r.db.ExecContext(ctx, q, model.EventStatusClosed, id, model.EventStatusScheduled)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes an event and cascades to its participants inside a
// transaction.  Returns ErrEventNotFound when no such event exists.
func (r *EventRepo) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(ctx, `DELETE FROM events WHERE event_id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrEventNotFound
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM participants WHERE event_id = ?`, id)
	return err
}
