package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sreeram023/event-approval-backend/config"
	"github.com/sreeram023/event-approval-backend/utils"
)

// StartKafkaConsumer drains the notification topic and delivers each message
// over SMTP. Runs until ctx is cancelled. Call in its own goroutine.
func StartKafkaConsumer(ctx context.Context, cfg *config.Config, repo Repository) {
	if cfg.KafkaBrokers == "" {
		return
	}

	reader := utils.NewKafkaReader(cfg)
	defer reader.Close()

	email := NewEmailSender(cfg)
	fmt.Println("✅ Notification consumer started")

	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Println("Notification consumer stopped")
				return
			}
			fmt.Printf("❌ Kafka read error: %v\n", err)
			continue
		}

		var msg queuedMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			fmt.Printf("❌ Malformed notification message, skipping: %v\n", err)
			continue
		}

		sendErr := email.Send(msg.Recipient, msg.Subject, msg.Body)

		if msg.LogID == 0 {
			continue
		}
		logRow := &NotificationLog{ID: msg.LogID, Recipient: msg.Recipient, Subject: msg.Subject, Body: msg.Body}
		if sendErr != nil {
			errMsg := sendErr.Error()
			logRow.Status = StatusFailed
			logRow.Error = &errMsg
		} else {
			logRow.Status = StatusSent
		}
		if err := repo.Update(ctx, logRow); err != nil {
			fmt.Printf("❌ Failed to update notification log %d: %v\n", msg.LogID, err)
		}
	}
}
