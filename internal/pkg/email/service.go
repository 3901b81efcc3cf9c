package email

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sender interface for sending emails
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Service handles async email delivery
type Service struct {
	client Sender
	brand  Branding
	notify string
	queue  chan *Message
	wg     sync.WaitGroup
}

// NewService creates the email service and starts its worker. notifyEmail,
// when set, receives a copy of every booking confirmation.
func NewService(client Sender, brand Branding, notifyEmail string) *Service {
	s := &Service{
		client: client,
		brand:  brand,
		notify: notifyEmail,
		queue:  make(chan *Message, 100),
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

// worker processes queued emails asynchronously
func (s *Service) worker() {
	defer s.wg.Done()

	for msg := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := s.client.Send(ctx, msg); err != nil {
			log.Error().Err(err).
				Strs("to", msg.To).
				Str("subject", msg.Subject).
				Msg("Failed to send email")
		}
		cancel()
	}
}

// Queue adds an email to the async send queue
func (s *Service) Queue(msg *Message) {
	select {
	case s.queue <- msg:
	default:
		log.Warn().Strs("to", msg.To).Msg("Email queue full, dropping email")
	}
}

// SendSync sends an email synchronously (blocking)
func (s *Service) SendSync(ctx context.Context, msg *Message) error {
	return s.client.Send(ctx, msg)
}

// Close stops the email worker
func (s *Service) Close() {
	close(s.queue)
	s.wg.Wait()
}

// QueueBookingConfirmation renders and queues the booking confirmation for
// the agent, with a copy to the internal notification address.
func (s *Service) QueueBookingConfirmation(data BookingConfirmation) {
	to := []string{data.AgentEmail}
	if s.notify != "" && s.notify != data.AgentEmail {
		to = append(to, s.notify)
	}

	s.Queue(&Message{
		To:          to,
		Subject:     ConfirmationSubject,
		TextContent: BuildConfirmationBody(data, s.brand),
	})
}
