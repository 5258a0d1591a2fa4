// Package email delivers booking notifications. The current sender writes to
// the log; a real SMTP or provider integration slots in behind the same
// interface.
package email

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/tripflow/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	slog.Info("send email",
		"to", event.OwnerEmail,
		"event", event.Type,
		"booking_id", event.BookingID,
		"offer", event.OfferTitle,
	)
	return nil
}
