package notify

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/uowclimb/society-seats/internal/model"
)

// closureTemplate renders the roster summary mailed to the committee
// when an event's registration window closes.
const closureTemplate = `
## Event {{ .Event.ID }} has closed! ##

Event Details:
- Event Location: {{ .Event.Location }}
- Event Date: {{ .Event.Date }}
- Meet Location: {{ .Event.MeetPoint }}
- Meet Time: {{ .Event.MeetTime }}
- Seats Taken: {{ .Event.SeatsTaken }}/{{ .Event.TotalSeats }}
- Membership Required: {{ .Event.RequireMember }}

Participants:
{{- range .Participants }}
{{ .FirstName }} {{ .LastName }}
{{- end }}
`

var closureTmpl = template.Must(template.New("closure").Parse(closureTemplate))

// ClosureMessage renders the closure email body for an event and its
// final roster.
func ClosureMessage(event model.Event, participants []model.Participant) (string, error) {
	data := struct {
		Event        model.Event
		Participants []model.Participant
	}{Event: event, Participants: participants}

	var out strings.Builder
	if err := closureTmpl.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}

// DigestEntry formats one event's block of the daily posting digest.
// The digest reminds the committee which signups should be announced
// to which group today.
func DigestEntry(group string, postAt string, event model.Event, baseURL string) string {
	return fmt.Sprintf(
		"## Post Event To %s Group At %v ##\nClimbing Session Signup!\nClimbing Location: %s\nMeet Time: %s\nMeet Location: %s\nSignups Close at: %s\n\n%s\n\n",
		group, postAt, event.Location, event.MeetTime, event.MeetPoint, event.CloseDate, event.ShareLink(baseURL))
}
