package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/wishify/wishify/internal/domain"
	"github.com/wishify/wishify/internal/email"
	"github.com/wishify/wishify/internal/metrics"
	"github.com/wishify/wishify/internal/repository"
)

// Dispatcher periodically claims due unsent wishes and emails the greeting.
// A claim marks the wish sent up front; a failed send resets it so the next
// cycle picks it up again.
type Dispatcher struct {
	wishes    repository.WishRepository
	sender    email.Sender
	logger    *slog.Logger
	schedule  cron.Schedule
	batchSize int
}

func New(wishes repository.WishRepository, sender email.Sender, logger *slog.Logger, cronExpr string, batchSize int) (*Dispatcher, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse dispatch cron %q: %w", cronExpr, err)
	}

	return &Dispatcher{
		wishes:    wishes,
		sender:    sender,
		logger:    logger.With("component", "dispatcher"),
		schedule:  schedule,
		batchSize: batchSize,
	}, nil
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("dispatcher started", "batch_size", d.batchSize)

	for {
		next := d.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			d.logger.Info("dispatcher shut down")
			return
		case <-timer.C:
			d.Dispatch(ctx)
		}
	}
}

// Dispatch runs one cycle: claim due wishes, send each greeting, reset the
// ones that failed.
func (d *Dispatcher) Dispatch(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.DispatchCycleDuration.Observe(time.Since(start).Seconds())
		metrics.DispatcherLastRun.SetToCurrentTime()
	}()

	claimed, err := d.wishes.ClaimDue(ctx, time.Now(), d.batchSize)
	if err != nil {
		d.logger.Error("claim due wishes", "error", err)
		return
	}
	if len(claimed) == 0 {
		return
	}

	d.logger.Info("claimed due wishes", "count", len(claimed))

	for _, wish := range claimed {
		subject, body := Greeting(wish)
		if err := d.sender.Send(ctx, wish.Email, subject, body); err != nil {
			d.logger.Error("send greeting", "wish_id", wish.ID, "error", err)
			metrics.GreetingsSentTotal.WithLabelValues("failure").Inc()
			if resetErr := d.wishes.ResetSent(ctx, wish.ID); resetErr != nil {
				d.logger.Error("reset sent flag", "wish_id", wish.ID, "error", resetErr)
			}
			continue
		}
		metrics.GreetingsSentTotal.WithLabelValues("success").Inc()
	}
}

// Greeting builds the subject and HTML body for a wish's occasion.
func Greeting(w *domain.Wish) (subject, body string) {
	switch w.Type {
	case domain.WishTypeBirthday:
		subject = fmt.Sprintf("Happy Birthday, %s!", w.Name)
	case domain.WishTypeAnniversary:
		subject = fmt.Sprintf("Happy Anniversary, %s!", w.Name)
	case domain.WishTypeHoliday:
		subject = fmt.Sprintf("Happy Holidays, %s!", w.Name)
	default:
		subject = fmt.Sprintf("Thinking of you, %s!", w.Name)
	}

	body = fmt.Sprintf("<p>Dear %s,</p><p>%s Wishing you a wonderful day!</p>", w.Name, subject)
	return subject, body
}
