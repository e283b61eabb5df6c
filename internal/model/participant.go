package model

// Participant is a person registered for an event.  The surname
// column is exposed as `last_name` on the wire.
//
// Fields map onto columns of the `participants` table.
type Participant struct {
	ID        int    `json:"participant_id"` // participants.participant_id
	EventID   int    `json:"event_id"`       // participants.event_id
	FirstName string `json:"first_name"`     // participants.first_name
	LastName  string `json:"last_name"`      // participants.surname
	Member    bool   `json:"member"`         // participants.member
}
