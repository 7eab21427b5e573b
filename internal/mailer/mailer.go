// Package mailer delivers booking confirmation mail over SMTP.  Delivery
// runs behind a circuit breaker so a misbehaving mail server cannot tie up
// the booking consumer with repeated slow failures.
package mailer

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"

	"github.com/iliyamo/hotel-booking/internal/queue"
)

// ErrDisabled is returned when no SMTP host is configured.  Callers treat
// it like any other delivery failure: log and move on.
var ErrDisabled = errors.New("mailer: smtp not configured")

// Mailer sends confirmation mail for booking events.
type Mailer struct {
	host   string
	port   int
	user   string
	pass   string
	sender string
	cb     *gobreaker.CircuitBreaker
}

// New constructs a Mailer.  An empty host disables delivery.
func New(host string, port int, user, pass, sender string) *Mailer {
	return &Mailer{
		host:   host,
		port:   port,
		user:   user,
		pass:   pass,
		sender: sender,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "booking-mailer",
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
		}),
	}
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool { return m.host != "" }

// SendBookingConfirmation renders and sends the confirmation mail for a
// booking event.  The send goes through the circuit breaker; when the
// breaker is open the error is returned immediately without dialing.
func (m *Mailer) SendBookingConfirmation(ev queue.BookingCreatedEvent) error {
	if !m.Enabled() {
		return ErrDisabled
	}
	if ev.UserEmail == "" {
		return errors.New("mailer: event has no recipient address")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", ev.UserEmail)
	msg.SetHeader("Subject", "Hotel Booking Details")
	msg.SetBody("text/html", confirmationBody(ev))

	_, err := m.cb.Execute(func() (interface{}, error) {
		dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
		return nil, dialer.DialAndSend(msg)
	})
	return err
}

func confirmationBody(ev queue.BookingCreatedEvent) string {
	name := ev.UserName
	if name == "" {
		name = "Guest"
	}
	total := fmt.Sprintf("%.2f %s", float64(ev.TotalAmountCents)/100, ev.Currency)
	return fmt.Sprintf(`<h2>Your Booking Details</h2>
<p>Dear %s,</p>
<p>Thank you for your booking! Here are your details:</p>
<ul>
  <li><strong>Booking ID:</strong> %d</li>
  <li><strong>Hotel Name:</strong> %s</li>
  <li><strong>Location:</strong> %s</li>
  <li><strong>Check-in Date:</strong> %s</li>
  <li><strong>Check-out Date:</strong> %s</li>
  <li><strong>Total Amount:</strong> %s</li>
  <li><strong>Nights:</strong> %d</li>
  <li><strong>Guests:</strong> %d</li>
</ul>
<p>We look forward to welcoming you!</p>
<p>If you need to make any changes, feel free to contact us.</p>`,
		name, ev.BookingID, ev.HotelName, ev.HotelAddress,
		ev.CheckInDate, ev.CheckOutDate, total, ev.Nights, ev.Guests)
}
