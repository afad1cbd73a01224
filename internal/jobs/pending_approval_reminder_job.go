// Package jobs contains the scheduled background jobs of the application.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// PendingApprovalReminderJob periodically reminds the admin pool about orders
// that have been waiting in pending status for too long. Reminders are plain
// notifications; the job never mutates orders.
type PendingApprovalReminderJob struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  ports.NotificationPublisher
	staleAfter time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPendingApprovalReminderJob creates the reminder job.
// staleAfter is how long an order may sit in pending before reminders start.
func NewPendingApprovalReminderJob(
	uowFactory ports.UnitOfWorkFactory,
	publisher ports.NotificationPublisher,
	staleAfter time.Duration,
	logger *slog.Logger,
) *PendingApprovalReminderJob {
	return &PendingApprovalReminderJob{
		uowFactory: uowFactory,
		publisher:  publisher,
		staleAfter: staleAfter,
		cron:       cron.New(),
		logger:     logger.With("component", "pending_approval_reminder_job"),
	}
}

// Start schedules the job to run every minute.
func (j *PendingApprovalReminderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "pending approval reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending approval reminder job started (running every minute)")
	return nil
}

// Stop stops the job.
func (j *PendingApprovalReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending approval reminder job stopped")
}

// run publishes one reminder per stale pending order.
// Reads happen outside any transaction; the repository uses the main
// connection when no transaction was begun.
func (j *PendingApprovalReminderJob) run(ctx context.Context) error {
	uow := j.uowFactory.Create()
	pending, err := uow.OrderRepository().GetAllInStatus(ctx, order.StatusPending)
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-j.staleAfter)
	for _, ord := range pending {
		if ord.CreatedAt().After(cutoff) {
			continue
		}

		notification := ports.Notification{
			OrderID:    ord.ID(),
			Event:      "order.pending_approval_reminder",
			Message:    "order " + ord.ID().String() + " is still awaiting admin approval",
			OccurredAt: time.Now().UTC(),
		}

		if err := j.publisher.Publish(ctx, notification); err != nil {
			j.logger.ErrorContext(ctx, "failed to publish reminder",
				"order_id", ord.ID().String(), "error", err)
		}
	}

	return nil
}
