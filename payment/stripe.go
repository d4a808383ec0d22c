// Package payment wraps the external card gateway behind a small
// interface so the order workflow never talks to Stripe directly.
package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"go-commerce-api/config"
)

// IntentStatus is the internal view of a gateway-side payment attempt.
type IntentStatus string

const (
	StatusSucceeded IntentStatus = "succeeded"
	StatusFailed    IntentStatus = "failed"
	// StatusUnknown covers every in-flight gateway state (requires_action,
	// processing, ...). Orders are left untouched for these.
	StatusUnknown IntentStatus = "unknown"
)

// Intent is a gateway payment intent. Status is authoritative; client
// claims about it are always re-verified through RetrieveIntent.
type Intent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
}

// Gateway is what the order workflow depends on.
type Gateway interface {
	CreateIntent(ctx context.Context, orderID string, amount float64) (*Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)
}

// StripeGateway implements Gateway on the Stripe API.
type StripeGateway struct {
	api      *client.API
	currency string
}

// NewStripeGateway builds a gateway with its own API client, constructed
// once at startup and injected where needed.
func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.APIKey, nil)
	return &StripeGateway{api: api, currency: cfg.Currency}
}

// CreateIntent creates a payment intent for the given amount (in major
// currency units), keyed by order id through the intent metadata.
func (g *StripeGateway) CreateIntent(ctx context.Context, orderID string, amount float64) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", orderID)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return fromStripe(pi), nil
}

// RetrieveIntent fetches the authoritative state of an intent.
func (g *StripeGateway) RetrieveIntent(ctx context.Context, intentID string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent %s: %w", intentID, err)
	}
	return fromStripe(pi), nil
}

func fromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       mapStatus(pi.Status),
	}
}

func mapStatus(s stripe.PaymentIntentStatus) IntentStatus {
	switch s {
	case stripe.PaymentIntentStatusSucceeded:
		return StatusSucceeded
	case stripe.PaymentIntentStatusCanceled:
		return StatusFailed
	default:
		return StatusUnknown
	}
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
