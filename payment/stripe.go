package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// StripeProvider creates hosted checkout sessions and verifies webhook
// deliveries against the shared endpoint secret.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
	domain        string
}

func NewStripeProvider(secretKey, webhookSecret, domain string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{
		api:           api,
		webhookSecret: webhookSecret,
		domain:        domain,
	}
}

func (p *StripeProvider) CreateSession(ctx context.Context, customerEmail string, items []LineItem) (*Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Image != "" {
			productData.Images = stripe.StringSlice([]string{item.Image})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount:  stripe.Int64(item.UnitCents),
				ProductData: productData,
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:      stripe.String(customerEmail),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(p.domain + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(p.domain + "/cancel"),
	}

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

func (p *StripeProvider) VerifyEvent(payload []byte, signature string) (*Event, error) {
	ev, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook: %w", err)
	}

	out := &Event{Type: string(ev.Type)}
	if out.Type == EventCheckoutCompleted {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("decode session: %w", err)
		}
		out.SessionID = sess.ID
		out.CustomerEmail = sess.CustomerEmail
	}
	return out, nil
}
