package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uowclimb/society-seats/internal/model"
)

type captureSender struct {
	address string
	subject string
	body    string
	err     error
}

func (s *captureSender) Send(address, subject, body string) error {
	s.address = address
	s.subject = subject
	s.body = body
	return s.err
}

func TestHandleMessageEmailsClosureSummary(t *testing.T) {
	sender := &captureSender{}
	cc := &ClosureConsumer{Mailer: sender, Address: "committee@example.com"}

	body, err := json.Marshal(EventClosedEvent{
		EventID:    7,
		Location:   "Boulder Shack",
		TotalSeats: 12,
		SeatsTaken: 2,
		Participants: []model.Participant{
			{FirstName: "Jane", LastName: "Smith"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, cc.handleMessage(body))
	assert.Equal(t, "committee@example.com", sender.address)
	assert.Equal(t, "Society Session Event 7 Closed Today!", sender.subject)
	assert.Contains(t, sender.body, "## Event 7 has closed! ##")
	assert.Contains(t, sender.body, "Jane Smith")
}

func TestHandleMessageRejectsMalformedPayload(t *testing.T) {
	cc := &ClosureConsumer{Mailer: &captureSender{}}
	assert.Error(t, cc.handleMessage([]byte("{not json")))
}

func TestEventReconstructsModel(t *testing.T) {
	ev := EventClosedEvent{EventID: 7, Location: "Boulder Shack", SeatsTaken: 2}
	e := ev.Event()
	assert.Equal(t, 7, e.ID)
	assert.Equal(t, model.EventStatusClosed, e.Status)
}
