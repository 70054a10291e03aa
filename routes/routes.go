package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DeepaShriSG/EcomBE/handlers"
	"github.com/DeepaShriSG/EcomBE/metrics"
	custommw "github.com/DeepaShriSG/EcomBE/middleware"
)

// SetupRoutes wires the HTTP surface to the handlers.
func SetupRoutes(e *echo.Echo, h *handlers.Handler) {
	auth := custommw.Authenticate(h.Config.JWTSecret)

	// Public routes
	e.POST("/user/signup", h.SignUp)
	e.POST("/user/login", h.Login)
	e.GET("/products/allproducts", h.AllProducts)
	e.POST("/webhook", h.HandleWebhook)

	user := e.Group("/user", auth)
	user.GET("/", h.GetUsers)
	user.GET("/userId", h.GetCurrentUser)
	user.POST("/cart", h.AddToCart)
	user.POST("/checkout", h.Checkout)
	user.POST("/sendotp", h.SendOTP)
	user.POST("/verify", h.VerifyOTP)
	user.POST("/resetpassword", h.ResetPassword)
	user.POST("/wishlist", h.ToggleWishlist)
	user.GET("/wishlist", h.GetWishlist)

	products := e.Group("/products", auth)
	products.GET("/:id", h.ProductByID)

	admin := products.Group("", custommw.RequireAdmin)
	admin.POST("/create", h.CreateProduct)
	admin.PUT("/:id", h.EditProduct)
	admin.POST("/filter", h.FilterProducts)
	admin.DELETE("/:id", h.DeleteProduct)

	e.GET("/metrics", metrics.Handler())
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
