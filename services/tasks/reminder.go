package tasks

import (
	"encoding/json"
	"time"

	"ceremo/models"

	"github.com/hibiken/asynq"
)

const TypePendingReminder = "booking:pending_reminder"

// ReminderScheduler enqueues a delayed check for bookings that sit pending
// too long. The handler re-reads the booking before acting; a stale task on
// an already-answered booking is a no-op.
type ReminderScheduler interface {
	SchedulePendingReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// AsynqReminderScheduler is the production implementation.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

func NewAsynqReminderScheduler(client *asynq.Client) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: client}
}

func (s *AsynqReminderScheduler) SchedulePendingReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewPendingReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}

func NewPendingReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePendingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
