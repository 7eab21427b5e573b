// Package payment creates hosted checkout sessions with the Stripe payment
// provider.  The application never handles card data itself; it only
// requests a redirect URL for an existing booking.
package payment

import (
	"fmt"
	"strconv"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// Checkout builds Stripe checkout sessions for bookings.
type Checkout struct {
	currency string
}

// NewCheckout configures the Stripe client with the given secret key and
// returns a Checkout that prices sessions in the given currency.
func NewCheckout(secretKey, currency string) *Checkout {
	stripe.Key = secretKey
	return &Checkout{currency: currency}
}

// CreateSession requests a hosted checkout session for a booking: a single
// line item named after the hotel, priced at the booking total in minor
// currency units.  Success and cancel redirects point back at the given
// origin.  It returns the session's redirect URL.
func (c *Checkout) CreateSession(bookingID uint64, hotelName string, amountCents int64, origin string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(c.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(hotelName),
				},
				UnitAmount: stripe.Int64(amountCents),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(origin + "/loader/my-bookings"),
		CancelURL:  stripe.String(origin + "/my-bookings"),
	}
	params.AddMetadata("booking_id", strconv.FormatUint(bookingID, 10))

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.URL, nil
}
