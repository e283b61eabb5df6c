// Package scheduler runs the recurring jobs: the 8am posting digest
// and the minutely close sweep that retires events whose registration
// window has passed.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/uowclimb/society-seats/internal/config"
	"github.com/uowclimb/society-seats/internal/model"
	"github.com/uowclimb/society-seats/internal/notify"
	"github.com/uowclimb/society-seats/internal/queue"
	queue_publisher "github.com/uowclimb/society-seats/internal/service"
)

// EventStore is the slice of the event repository the jobs need.
type EventStore interface {
	List(ctx context.Context) ([]model.Event, error)
	MarkClosed(ctx context.Context, id int) (bool, error)
}

// ParticipantStore loads the roster mailed out on closure.
type ParticipantStore interface {
	ListByEvent(ctx context.Context, eventID int) ([]model.Participant, error)
}

// Scheduler owns the cron instance and the dependencies its jobs use.
type Scheduler struct {
	Cfg          config.Config
	Events       EventStore
	Participants ParticipantStore
	Mailer       notify.Sender

	cron *cron.Cron
	now  func() time.Time
}

// New builds a Scheduler.  Jobs are registered by Start.
func New(cfg config.Config, events EventStore, participants ParticipantStore, mailer notify.Sender) *Scheduler {
	return &Scheduler{
		Cfg:          cfg,
		Events:       events,
		Participants: participants,
		Mailer:       mailer,
		cron:         cron.New(),
		now:          time.Now,
	}
}

// Start registers the jobs and starts the cron loop in its own
// goroutine.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc("0 8 * * *", s.sendDailyDigest); err != nil {
		log.Println("scheduler: failed to register digest job:", err)
	}
	if _, err := s.cron.AddFunc("@every 1m", s.closeExpiredEvents); err != nil {
		log.Println("scheduler: failed to register close sweep:", err)
	}
	s.cron.Start()
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// sendDailyDigest mails one digest covering every event whose
// committee-reminder day (24h before opening) or opening day is
// today.  No email is sent on days with nothing to post.
func (s *Scheduler) sendDailyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	events, err := s.Events.List(ctx)
	if err != nil {
		log.Println("scheduler: digest list failed:", err)
		return
	}

	today := s.now().Round(time.Minute)
	var message string
	for _, event := range events {
		open, err := event.OpenTime()
		if err != nil {
			log.Printf("scheduler: event %d has invalid open date: %v", event.ID, err)
			continue
		}
		open = open.Round(time.Minute)
		reminder := open.Add(-24 * time.Hour)

		if sameDate(reminder, today) {
			message += notify.DigestEntry("Committee", reminder.String(), event, s.Cfg.BaseURL)
		}
		if sameDate(open, today) {
			message += notify.DigestEntry("Members", open.String(), event, s.Cfg.BaseURL)
		}
	}

	if message == "" {
		return
	}
	if err := s.Mailer.Send(s.Cfg.DigestEmail, "Society Session Event Posts to Send Today!", message); err != nil {
		log.Println("scheduler: digest email failed:", err)
	}
}

// closeExpiredEvents flips every scheduled event whose close time has
// passed to closed and publishes an EventClosedEvent carrying the
// final roster.  MarkClosed is a compare-and-set, so overlapping
// sweeps cannot publish the same closure twice.
func (s *Scheduler) closeExpiredEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	events, err := s.Events.List(ctx)
	if err != nil {
		log.Println("scheduler: close sweep list failed:", err)
		return
	}

	now := s.now().Round(time.Minute)
	for _, event := range events {
		if event.Status == model.EventStatusClosed {
			continue
		}
		closeAt, err := event.CloseTime()
		if err != nil {
			log.Printf("scheduler: event %d has invalid close date: %v", event.ID, err)
			continue
		}
		if !now.After(closeAt.Round(time.Minute)) {
			continue
		}

		closed, err := s.Events.MarkClosed(ctx, event.ID)
		if err != nil {
			log.Printf("scheduler: failed to close event %d: %v", event.ID, err)
			continue
		}
		if !closed {
			continue // another sweep got there first
		}

		participants, err := s.Participants.ListByEvent(ctx, event.ID)
		if err != nil {
			log.Printf("scheduler: failed to load roster for event %d: %v", event.ID, err)
			participants = nil
		}

		// Without a broker the summary is mailed synchronously;
		// with one, the consumer does it off the sweep's back.
		if s.Cfg.AMQPURL == "" {
			closedEvent := event
			closedEvent.Status = model.EventStatusClosed
			message, err := notify.ClosureMessage(closedEvent, participants)
			if err != nil {
				log.Printf("scheduler: failed to render closure summary for event %d: %v", event.ID, err)
				continue
			}
			subject := fmt.Sprintf("Society Session Event %d Closed Today!", event.ID)
			if err := s.Mailer.Send(s.Cfg.ClosureEmail, subject, message); err != nil {
				log.Printf("scheduler: failed to email closure of event %d: %v", event.ID, err)
			}
			continue
		}
		ev := queue.EventClosedEvent{
			EventID:       event.ID,
			Location:      event.Location,
			Date:          event.Date,
			MeetPoint:     event.MeetPoint,
			MeetTime:      event.MeetTime,
			TotalSeats:    event.TotalSeats,
			SeatsTaken:    event.SeatsTaken,
			RequireMember: event.RequireMember,
			CloseDate:     event.CloseDate,
			Participants:  participants,
			ClosedAt:      s.now().UTC().Format(time.RFC3339),
		}
		if err := queue_publisher.PublishEventClosed(ctx, s.Cfg.AMQPURL, ev); err != nil {
			log.Printf("scheduler: failed to publish closure of event %d: %v", event.ID, err)
		}
	}
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
