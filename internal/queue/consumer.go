package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/uowclimb/society-seats/internal/notify"
)

// ClosureConsumer listens on the event.closed queue and mails the
// roster summary for each closed event to the committee address.
type ClosureConsumer struct {
	URL     string
	Mailer  notify.Sender
	Address string
}

// Start connects to RabbitMQ, declares the event.closed queue
// (durable), and consumes messages until the connection dies, then
// reconnects with exponential backoff.  Processing errors are logged
// and the message rejected without requeue so a poison message cannot
// spin the consumer.
func (cc *ClosureConsumer) Start() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(cc.URL)
		if err != nil {
			log.Printf("closure-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := cc.consumeLoop(conn); err != nil {
			log.Printf("closure-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func (cc *ClosureConsumer) consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Printf("closure-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(EventClosedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(EventClosedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := cc.handleMessage(d.Body); err != nil {
			log.Printf("closure-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func (cc *ClosureConsumer) handleMessage(body []byte) error {
	var ev EventClosedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	message, err := notify.ClosureMessage(ev.Event(), ev.Participants)
	if err != nil {
		return fmt.Errorf("render closure message: %w", err)
	}

	subject := fmt.Sprintf("Society Session Event %d Closed Today!", ev.EventID)
	if err := cc.Mailer.Send(cc.Address, subject, message); err != nil {
		return fmt.Errorf("email closure summary: %w", err)
	}
	return nil
}
