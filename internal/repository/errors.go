// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNoSeats signals that a registration cannot proceed
// because the event is full, while ErrDuplicateParticipant means the
// same name is already on the roster for that event.
package repository

import "errors"

// ErrEventNotFound indicates that an event was not located in the DB.
var ErrEventNotFound = errors.New("event not found")

// ErrParticipantNotFound indicates that a participant was not located in the DB.
var ErrParticipantNotFound = errors.New("participant not found")

// ErrUserNotFound indicates that a user was not located in the DB.
var ErrUserNotFound = errors.New("user not found")

// ErrNoSeats is returned when a registration is attempted on an
// event that has no seats left. Handlers should translate this into
// an HTTP 403 response with a friendly message.
var ErrNoSeats = errors.New("no seats available")

// ErrDuplicateParticipant is returned when the same first/last name
// is already registered for the event.
var ErrDuplicateParticipant = errors.New("participant name already exists for the event")

// ErrUserExists is returned when creating a user whose username is
// already taken.
var ErrUserExists = errors.New("user already exists")
