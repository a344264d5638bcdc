package topup

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"

	"campuspay/internal/money"
)

// CardGateway charges a tokenized card and returns the provider's
// charge id. Card numbers never reach this service; tokenization
// happens client-side.
type CardGateway interface {
	Charge(ctx context.Context, amount money.Amount, currency, token, description string) (string, error)
}

// StripeGateway charges cards through Stripe.
type StripeGateway struct{}

// NewStripeGateway configures the Stripe client with the secret key.
func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{}
}

func (g *StripeGateway) Charge(ctx context.Context, amount money.Amount, currency, token, description string) (string, error) {
	params := &stripe.ChargeParams{
		// IDR is a zero-decimal currency in Stripe terms; the amount
		// is sent in whole units.
		Amount:      stripe.Int64(amount.IntPart()),
		Currency:    stripe.String(strings.ToLower(currency)),
		Description: stripe.String(description),
	}
	params.Context = ctx
	if err := params.SetSource(token); err != nil {
		return "", fmt.Errorf("invalid card token: %w", err)
	}

	ch, err := charge.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe charge failed: %w", err)
	}
	return ch.ID, nil
}
