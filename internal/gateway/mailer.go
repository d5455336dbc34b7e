package gateway

import (
	"context"
	"fmt"

	"fairshare-booking/internal/usecase"
	"fairshare-booking/pkg/utils"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Mailer sends booking lifecycle emails over SMTP. Delivery happens after
// the booking transaction commits; a failure is the caller's to log, never
// to roll back on.
type Mailer struct {
	client   *mail.Client
	from     string
	fromName string
	log      *zap.Logger
}

func NewMailer(config utils.EmailConfig, log *zap.Logger) (*Mailer, error) {
	if config.Host == "" {
		return nil, nil
	}

	client, err := mail.NewClient(
		config.Host,
		mail.WithPort(config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(config.User),
		mail.WithPassword(config.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize smtp client: %w", err)
	}

	return &Mailer{
		client:   client,
		from:     config.From,
		fromName: config.FromName,
		log:      log.With(zap.String("gateway", "mailer")),
	}, nil
}

func (m *Mailer) Send(ctx context.Context, n usecase.Notification) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(n.To); err != nil {
		return fmt.Errorf("set to address %s: %w", n.To, err)
	}

	msg.Subject(subjectFor(n))
	msg.SetBodyString(mail.TypeTextPlain, bodyFor(n))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send %s mail for %s: %w", n.Kind, n.Booking.Reference, err)
	}

	m.log.Info("Notification sent",
		zap.String("kind", string(n.Kind)),
		zap.String("reference", n.Booking.Reference),
	)
	return nil
}

func subjectFor(n usecase.Notification) string {
	switch n.Kind {
	case usecase.NotificationBookingModified:
		return fmt.Sprintf("Booking %s updated", n.Booking.Reference)
	case usecase.NotificationBookingCancelled:
		return fmt.Sprintf("Booking %s cancelled", n.Booking.Reference)
	default:
		return fmt.Sprintf("Booking %s confirmed", n.Booking.Reference)
	}
}

func bodyFor(n usecase.Notification) string {
	b := n.Booking

	switch n.Kind {
	case usecase.NotificationBookingCancelled:
		return fmt.Sprintf(
			"Dear %s,\n\nYour booking %s at %s (%s to %s) has been cancelled.\n",
			n.OwnerName, b.Reference, n.PropertyName,
			b.Checkin.Format(utils.DateLayout), b.Checkout.Format(utils.DateLayout),
		)
	case usecase.NotificationBookingModified:
		return fmt.Sprintf(
			"Dear %s,\n\nYour booking %s at %s has been updated.\n\n"+
				"Check-in: %s from %02d:00\nCheck-out: %s by %02d:00\n"+
				"Guests: %d, pets: %d\nTotal fees: %s\n",
			n.OwnerName, b.Reference, n.PropertyName,
			b.Checkin.Format(utils.DateLayout), b.CheckInHour,
			b.Checkout.Format(utils.DateLayout), b.CheckOutHour,
			b.Guests, b.Pets, b.TotalFee.StringFixed(2),
		)
	default:
		return fmt.Sprintf(
			"Dear %s,\n\nYour booking %s at %s is confirmed.\n\n"+
				"Check-in: %s from %02d:00\nCheck-out: %s by %02d:00\n"+
				"Guests: %d, pets: %d\nTotal fees: %s\n",
			n.OwnerName, b.Reference, n.PropertyName,
			b.Checkin.Format(utils.DateLayout), b.CheckInHour,
			b.Checkout.Format(utils.DateLayout), b.CheckOutHour,
			b.Guests, b.Pets, b.TotalFee.StringFixed(2),
		)
	}
}
