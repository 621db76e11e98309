package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeGateway resolves payment intents against Stripe. The global stripe
// key is set in main from config.
type StripeGateway struct{}

func (StripeGateway) IntentStatus(ctx context.Context, ref string) (string, error) {
	pi, err := paymentintent.Get(ref, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch payment intent %s: %w", ref, err)
	}
	return string(pi.Status), nil
}
