package mailservice

import (
	"context"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/blogplatform/internal/common"
	"golang.org/x/exp/rand"
)

func NewMailService(mb common.MessageConsumer, cfg SMTPConfig, logger MailLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:     mb,
		m:      NewMailer(cfg, NewTemplate()),
		logger: logger,
		retry:  DefaultRetryPolicy,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SendWelcomeEmails starts consuming user.created events in the background.
// It returns once the consumer is registered.
func (s *MailService) SendWelcomeEmails() error {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handle(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping welcome mail consumer")
				return
			}
		}
	}()

	return nil
}

// handle sends one welcome mail, retrying with exponential backoff and jitter.
// The delivery is acked either way so a bad address cannot block the queue.
func (s *MailService) handle(msg amqp.Delivery) {
	defer msg.Ack(false)

	event, err := common.DecodeUserCreatedEvent(msg.Body)
	if err != nil {
		s.logger.Error("could not decode user.created", slog.String("error", err.Error()))
		return
	}

	data := welcomeData{Login: event.Login, Email: event.Email}

	for attempt := 0; attempt < s.retry.MaxRetries; attempt++ {
		err = s.m.send(event.Email, data, welcomeTemplate)
		if err == nil {
			s.logger.Info("welcome email sent", slog.String("email", event.Email))
			return
		}

		delay := time.Duration(rand.Int63n(int64(s.retry.BaseDelay) << uint(attempt)))
		s.logger.Info("delaying welcome email", slog.String("email", event.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Error("could not send welcome email", slog.String("email", event.Email), slog.Any("error", err))
}

func (s *MailService) Close() {
	s.cancel()
}
