// Package payment abstracts the hosted-checkout provider. The handlers only
// ever see sessions and verified events, never the provider SDK.
package payment

import "context"

// LineItem is one cart entry priced in minor units.
type LineItem struct {
	Name      string
	Image     string
	UnitCents int64
	Quantity  int64
}

// Session is a created hosted-checkout session.
type Session struct {
	ID  string
	URL string
}

// EventCheckoutCompleted is the provider event that triggers fulfillment.
const EventCheckoutCompleted = "checkout.session.completed"

// Event is a signature-verified webhook delivery.
type Event struct {
	Type          string
	SessionID     string
	CustomerEmail string
}

type Provider interface {
	// CreateSession opens a hosted checkout for the given line items.
	CreateSession(ctx context.Context, customerEmail string, items []LineItem) (*Session, error)
	// VerifyEvent checks the webhook signature and decodes the event.
	VerifyEvent(payload []byte, signature string) (*Event, error)
}
