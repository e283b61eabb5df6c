package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uowclimb/society-seats/internal/model"
)

const participantColumns = `participant_id, event_id, first_name, surname, member`

// ParticipantRepo manages persistence for event participants.  The
// seats_taken counter on events is maintained here, inside the same
// transaction as the participant row, so the two can never diverge.
type ParticipantRepo struct {
	db *sql.DB
}

// NewParticipantRepo constructs a ParticipantRepo with the given DB handle.
func NewParticipantRepo(db *sql.DB) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

// ListByEvent returns all participants of an event.  When none exist
// it returns an empty slice and nil error, which serializes to a JSON
// array rather than null.
func (r *ParticipantRepo) ListByEvent(ctx context.Context, eventID int) ([]model.Participant, error) {
	const q = `SELECT ` + participantColumns + ` FROM participants WHERE event_id = ? ORDER BY participant_id ASC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	participants := []model.Participant{}
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ID, &p.EventID, &p.FirstName, &p.LastName, &p.Member); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return participants, nil
}

// GetByID retrieves a participant by its ID.
func (r *ParticipantRepo) GetByID(ctx context.Context, id int) (*model.Participant, error) {
	const q = `SELECT ` + participantColumns + ` FROM participants WHERE participant_id = ?`
	var p model.Participant
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.EventID, &p.FirstName, &p.LastName, &p.Member)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Register adds a participant to an event and takes a seat, all in
// one transaction.  It fails with ErrNoSeats when the event is full
// and ErrDuplicateParticipant when the same name is already
// registered for the event.  The seat check re-reads the counter
// inside the transaction, so two concurrent registrations cannot
// both take the last seat.
func (r *ParticipantRepo) Register(ctx context.Context, p *model.Participant) error {
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

	var total, taken int
	err = tx.QueryRowContext(ctx,
		`SELECT total_seats, seats_taken FROM events WHERE event_id = ? FOR UPDATE`,
		p.EventID).Scan(&total, &taken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrEventNotFound
		}
		return err
	}
	if total-taken <= 0 {
		err = ErrNoSeats
		return err
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participants WHERE event_id = ? AND first_name = ? AND surname = ?`,
		p.EventID, p.FirstName, p.LastName).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		err = ErrDuplicateParticipant
		return err
	}

	var res sql.Result
	res, err = tx.ExecContext(ctx,
		`INSERT INTO participants (event_id, first_name, surname, member) VALUES (?, ?, ?, ?)`,
		p.EventID, p.FirstName, p.LastName, p.Member)
	if err != nil {
		return err
	}
	id, idErr := res.LastInsertId()
	if idErr != nil {
		err = idErr
		return err
	}
	p.ID = int(id)

	_, err = tx.ExecContext(ctx,
		`UPDATE events SET seats_taken = seats_taken + 1 WHERE event_id = ?`, p.EventID)
	return err
}

// Delete removes a participant and releases their seat in one
// transaction.  It returns the ID of the event the seat belonged to,
// or ErrParticipantNotFound when no such row exists.
func (r *ParticipantRepo) Delete(ctx context.Context, id int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var eventID int
	err = tx.QueryRowContext(ctx,
		`SELECT event_id FROM participants WHERE participant_id = ?`, id).Scan(&eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrParticipantNotFound
		}
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM participants WHERE participant_id = ?`, id)
	if err != nil {
		return 0, err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE events SET seats_taken = seats_taken - 1 WHERE event_id = ? AND seats_taken > 0`, eventID)
	if err != nil {
		return 0, err
	}
	return eventID, nil
}
