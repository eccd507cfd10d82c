package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sreeram023/event-approval-backend/config"
	"github.com/sreeram023/event-approval-backend/utils"
)

// Service fans notifications out to recipients. Delivery is best effort:
// failures are logged and recorded, never returned to the workflow that
// triggered them.
type Service interface {
	// Notify queues one message for the recipient. When the queue is down the
	// message is delivered inline on the caller's goroutine.
	Notify(ctx context.Context, recipient, subject, body string) error

	ListByRecipient(ctx context.Context, recipient string, limit int) ([]NotificationLog, error)
}

type service struct {
	repo  Repository
	email *EmailSender
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:  repo,
		email: NewEmailSender(cfg),
	}
}

// queuedMessage is the wire payload; LogID lets the consumer mark the
// matching log row after delivery.
type queuedMessage struct {
	LogID uint `json:"log_id"`
	Message
}

func (s *service) Notify(ctx context.Context, recipient, subject, body string) error {
	logRow := &NotificationLog{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		Status:    StatusQueued,
	}
	if err := s.repo.Create(ctx, logRow); err != nil {
		fmt.Printf("❌ Failed to record notification for %s: %v\n", recipient, err)
		// Still attempt delivery, the log row is bookkeeping.
	}

	if utils.KafkaEnabled() {
		payload, err := json.Marshal(queuedMessage{
			LogID:   logRow.ID,
			Message: Message{Recipient: recipient, Subject: subject, Body: body},
		})
		if err == nil {
			if err := utils.PublishMessage(ctx, recipient, payload); err == nil {
				return nil
			}
			fmt.Printf("⚠️ Kafka publish failed, sending directly: %v\n", err)
		}
	}

	return s.deliver(ctx, logRow)
}

// deliver sends the email and updates the log row in place.
func (s *service) deliver(ctx context.Context, logRow *NotificationLog) error {
	err := s.email.Send(logRow.Recipient, logRow.Subject, logRow.Body)
	if err != nil {
		msg := err.Error()
		logRow.Status = StatusFailed
		logRow.Error = &msg
	} else {
		logRow.Status = StatusSent
		logRow.Error = nil
	}

	if logRow.ID != 0 {
		if updateErr := s.repo.Update(ctx, logRow); updateErr != nil {
			fmt.Printf("❌ Failed to update notification log %d: %v\n", logRow.ID, updateErr)
		}
	}
	return err
}

func (s *service) ListByRecipient(ctx context.Context, recipient string, limit int) ([]NotificationLog, error) {
	return s.repo.FindByRecipient(ctx, recipient, limit)
}
