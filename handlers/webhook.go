package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DeepaShriSG/EcomBE/metrics"
	"github.com/DeepaShriSG/EcomBE/models"
	"github.com/DeepaShriSG/EcomBE/payment"
	"github.com/DeepaShriSG/EcomBE/store"
)

// HandleWebhook is the single authoritative fulfillment trigger. The provider
// signs each delivery; a bad signature is rejected before any processing.
func (h *Handler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return message(c, http.StatusBadRequest, "Webhook Error: unreadable body")
	}

	event, err := h.Payments.VerifyEvent(payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("Webhook Error: %v", err)
		return message(c, http.StatusBadRequest, "Webhook Error: signature verification failed")
	}

	switch event.Type {
	case payment.EventCheckoutCompleted:
		if err := h.fulfill(c.Request().Context(), event.SessionID, event.CustomerEmail); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return message(c, http.StatusNotFound, fmt.Sprintf("User with email %s not found", event.CustomerEmail))
			}
			return internalError(c, err)
		}
	default:
		log.Printf("Unhandled event type %s", event.Type)
	}

	return c.String(http.StatusOK, "Event received")
}

// fulfill walks the stored cart, reserving stock per line, then clears the
// cart, appends the order and notifies the user. Redelivery of the same
// session id short-circuits: the recorded paymentId is the idempotency key.
func (h *Handler) fulfill(ctx context.Context, sessionID, email string) error {
	user, err := h.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	done, err := h.Users.HasOrderWithPayment(ctx, user.ID, sessionID)
	if err != nil {
		return err
	}
	if done {
		log.Printf("Session %s already fulfilled for %s", sessionID, email)
		return nil
	}

	fulfilled := []models.OrderLine{}
	for _, line := range user.Cart {
		err := h.Products.ReserveStock(ctx, line.Product, user.ID, line.Quantity)
		switch {
		case errors.Is(err, store.ErrNotFound):
			log.Printf("Product not found for ID %s", line.Product.Hex())
			metrics.SkippedLines.Inc()
			continue
		case errors.Is(err, store.ErrInsufficientStock):
			log.Printf("Insufficient stock for product %s", line.Product.Hex())
			metrics.SkippedLines.Inc()
			continue
		case err != nil:
			return err
		}
		metrics.FulfilledLines.Inc()
		fulfilled = append(fulfilled, models.OrderLine{Product: line.Product, Quantity: line.Quantity})
	}

	order := models.Order{
		Products:  fulfilled,
		PaymentID: sessionID,
		CreatedAt: time.Now(),
	}
	if err := h.Users.CompleteOrder(ctx, user.ID, order); err != nil {
		return err
	}

	// Delivery failure is logged only; the caller already has its response.
	details := make([]string, 0, len(fulfilled))
	for _, line := range fulfilled {
		details = append(details, fmt.Sprintf("Product ID: %s, Quantity: %d", line.Product.Hex(), line.Quantity))
	}
	text := fmt.Sprintf("Hi %s, your order for %s has been successfully placed! Thank you for shopping with us.",
		user.Name, strings.Join(details, ", "))
	if err := h.SMS.Send(h.Config.SMSSender, user.PhoneNumber, text); err != nil {
		log.Printf("SMS Error: %v", err)
		metrics.SMSFailures.Inc()
	}

	return nil
}
