package client

import (
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"
	"github.com/stripe/stripe-go/v84/webhook"
)

//go:generate mockgen -destination=../test/mock_provider.go -package=test tourbook/internal/bookings/client Provider
type Provider interface {
	CreateCheckoutSession(email, tourName, tourID, userID string, amount int64) (*stripe.CheckoutSession, error)
	ConstructEvent(body []byte, signature string) (stripe.Event, error)
}

type stripeProvider struct {
	webhookSecret string
	appUrl        string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	AppUrl        string
}

func NewStripeProvider(config StripeConfig) (Provider, error) {
	stripe.Key = config.SecretKey
	return &stripeProvider{
		webhookSecret: config.WebhookSecret,
		appUrl:        config.AppUrl,
	}, nil
}

func (s *stripeProvider) CreateCheckoutSession(email, tourName, tourID, userID string, amount int64) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String("payment"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(tourName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:    stripe.String(s.appUrl + "/bookings/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(s.appUrl + "/tours/" + tourID),
		CustomerEmail: stripe.String(email),
		Metadata: map[string]string{
			"tour_id": tourID,
			"user_id": userID,
		},
	}

	return session.New(params)
}

func (s *stripeProvider) ConstructEvent(body []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(
		body,
		signature,
		s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
}
