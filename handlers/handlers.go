package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DeepaShriSG/EcomBE/config"
	"github.com/DeepaShriSG/EcomBE/notify"
	"github.com/DeepaShriSG/EcomBE/otp"
	"github.com/DeepaShriSG/EcomBE/payment"
	"github.com/DeepaShriSG/EcomBE/store"
)

// Handler bundles the injected dependencies every route needs.
type Handler struct {
	Users    store.UserStore
	Products store.ProductStore
	Payments payment.Provider
	SMS      notify.Sender
	OTP      *otp.Service
	Config   *config.Config
}

func New(users store.UserStore, products store.ProductStore, payments payment.Provider, sms notify.Sender, otpSvc *otp.Service, cfg *config.Config) *Handler {
	return &Handler{
		Users:    users,
		Products: products,
		Payments: payments,
		SMS:      sms,
		OTP:      otpSvc,
		Config:   cfg,
	}
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"message": msg})
}

// internalError logs the cause and returns a redacted 500 body.
func internalError(c echo.Context, err error) error {
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"message": "Internal Server Error",
	})
}
