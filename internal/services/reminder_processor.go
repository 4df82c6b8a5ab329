package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"paydown/internal/amqp"
	"paydown/internal/analytics"
	"paydown/internal/core"
)

// ReminderPublisher publishes upcoming-payment reminders. The AMQP client
// implements it.
type ReminderPublisher interface {
	PublishPaymentReminder(ctx context.Context, msg *amqp.PaymentReminderMessage) error
}

// DebtScanner lists debts the reminder worker must inspect.
type DebtScanner interface {
	ListActiveScheduledDebts(ctx context.Context) ([]core.Debt, error)
}

// ReminderProcessor periodically scans active scheduled debts and
// publishes a reminder for each one due within the threshold.
type ReminderProcessor struct {
	scanner   DebtScanner
	publisher ReminderPublisher
	threshold int // days
	interval  time.Duration
}

func NewReminderProcessor(scanner DebtScanner, publisher ReminderPublisher, thresholdDays int, interval time.Duration) *ReminderProcessor {
	return &ReminderProcessor{
		scanner:   scanner,
		publisher: publisher,
		threshold: thresholdDays,
		interval:  interval,
	}
}

// Run scans immediately, then on every tick until ctx ends.
func (p *ReminderProcessor) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Reminder processor started",
		"interval", p.interval,
		"threshold_days", p.threshold)

	if err := p.ProcessOnce(ctx, time.Now()); err != nil {
		slog.ErrorContext(ctx, "Reminder scan failed", "error", err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Reminder processor stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := p.ProcessOnce(ctx, time.Now()); err != nil {
				slog.ErrorContext(ctx, "Reminder scan failed", "error", err)
			}
		}
	}
}

// ProcessOnce runs a single scan and returns the first hard error.
// Individual publish failures are logged and skipped so one bad debt
// does not starve the rest.
func (p *ReminderProcessor) ProcessOnce(ctx context.Context, now time.Time) error {
	debts, err := p.scanner.ListActiveScheduledDebts(ctx)
	if err != nil {
		return fmt.Errorf("list scheduled debts: %w", err)
	}

	published := 0
	for _, d := range debts {
		days := analytics.DaysUntilDue(now, d.DueDateDay)
		if days > p.threshold {
			continue
		}

		msg := &amqp.PaymentReminderMessage{
			DebtID:       d.ID,
			UserID:       d.UserID,
			Name:         d.Name,
			DaysUntilDue: days,
			Urgency:      string(analytics.ClassifyUrgency(days)),
			Timestamp:    now,
		}
		if err := p.publisher.PublishPaymentReminder(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish reminder",
				"debtId", d.ID, "error", err)
			continue
		}
		published++
	}

	slog.InfoContext(ctx, "Reminder scan complete",
		"scanned", len(debts),
		"published", published)
	return nil
}
