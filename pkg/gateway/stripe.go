package gateway

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
)

// PaymentIntent is the slice of the processor response the core cares about.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway creates payment intents with the external processor. The booking
// core only ever sees this interface.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (*PaymentIntent, error)
}

type stripeGateway struct {
	client *client.API
	log    *zap.Logger
}

func NewStripeGateway(secretKey string, log *zap.Logger) PaymentGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &stripeGateway{
		client: sc,
		log:    log.With(zap.String("gateway", "stripe")),
	}
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amount float64, currency string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(math.Round(amount * 100))),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.client.PaymentIntents.New(params)
	if err != nil {
		g.log.Error("Failed to create payment intent",
			zap.Error(err),
			zap.Float64("amount", amount),
		)
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}
