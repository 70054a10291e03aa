package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DeepaShriSG/EcomBE/metrics"
	"github.com/DeepaShriSG/EcomBE/payment"
	"github.com/DeepaShriSG/EcomBE/store"
)

type CheckoutItem struct {
	ProductTitle string   `json:"ProductTitle"`
	ImgURL       []string `json:"imgurl"`
	Price        float64  `json:"price"`
	Quantity     int      `json:"quantity"`
}

type CheckoutRequest struct {
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phonenumber"`
	Name        string         `json:"name"`
	Address     string         `json:"address"`
	Cart        []CheckoutItem `json:"cart"`
}

// toCents converts a price to minor units the way the provider expects.
func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// Checkout validates the cart and opens a hosted payment session. A 200 here
// only means the session exists; fulfillment runs from the provider webhook
// once payment completes.
func (h *Handler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request format")
	}

	if req.Email == "" || req.PhoneNumber == "" || req.Name == "" || req.Address == "" || len(req.Cart) == 0 {
		return message(c, http.StatusBadRequest, "Email, phonenumber, name, address, and cart are required")
	}

	user, err := h.Users.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, fmt.Sprintf("User with %s doesn't exist", req.Email))
		}
		return internalError(c, err)
	}

	// Every line must be priceable and displayable before anything is sent
	// to the provider. Totals round to cents per line, not once at the end.
	var total float64
	items := make([]payment.LineItem, 0, len(req.Cart))
	for _, item := range req.Cart {
		if item.ProductTitle == "" || item.Price <= 0 || len(item.ImgURL) == 0 {
			return message(c, http.StatusBadRequest, "Product details are incomplete")
		}
		if item.Quantity <= 0 {
			return message(c, http.StatusBadRequest, "Invalid quantity")
		}
		total += math.Round(item.Price*float64(item.Quantity)*100) / 100
		items = append(items, payment.LineItem{
			Name:      item.ProductTitle,
			Image:     item.ImgURL[0],
			UnitCents: toCents(item.Price),
			Quantity:  int64(item.Quantity),
		})
	}

	sess, err := h.Payments.CreateSession(c.Request().Context(), req.Email, items)
	if err != nil {
		c.Logger().Error(err)
		return message(c, http.StatusBadGateway, "Error creating checkout session")
	}

	metrics.CheckoutSessions.Inc()
	log.Printf("Checkout session %s created for %s, total %.2f", sess.ID, user.Email, total)

	return c.JSON(http.StatusOK, map[string]string{
		"id":  sess.ID,
		"url": sess.URL,
	})
}
