package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DeepaShriSG/EcomBE/middleware"
	"github.com/DeepaShriSG/EcomBE/models"
	"github.com/DeepaShriSG/EcomBE/store"
	"github.com/DeepaShriSG/EcomBE/utils"
)

var phonePattern = regexp.MustCompile(`^(\()?\d{3}(\))?(-)?\d{3}(-)?\d{4}$`)

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func isValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

type SignUpRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phonenumber"`
	Address     string `json:"address"`
	Role        string `json:"role"`
}

// SignUp registers a user or admin account.
func (h *Handler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request format")
	}

	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		return message(c, http.StatusBadRequest, fmt.Sprintf("Invalid role: %s", req.Role))
	}
	if req.Email == "" || req.Password == "" || req.PhoneNumber == "" || req.Address == "" {
		return message(c, http.StatusBadRequest, "Email, password, phonenumber and address are required")
	}
	if !isValidEmail(req.Email) {
		return message(c, http.StatusBadRequest, "Invalid email format")
	}
	if !isValidPhone(req.PhoneNumber) {
		return message(c, http.StatusBadRequest, "Invalid phone number")
	}

	hash, err := utils.HashPassword(req.Password, h.Config.SaltRounds)
	if err != nil {
		return internalError(c, err)
	}

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hash,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Role:        req.Role,
		Cart:        []models.CartItem{},
		Orders:      []models.Order{},
		Wishlist:    []primitive.ObjectID{},
		Status:      true,
		CreatedAt:   time.Now(),
	}

	if err := h.Users.Create(c.Request().Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return message(c, http.StatusConflict, fmt.Sprintf("%s with %s already exists", req.Role, req.Email))
		}
		return internalError(c, err)
	}

	return message(c, http.StatusCreated, fmt.Sprintf("%s created successfully", req.Role))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login checks credentials and returns a signed token plus the user record.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request format")
	}

	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		return message(c, http.StatusBadRequest, fmt.Sprintf("Invalid role: %s", req.Role))
	}

	user, err := h.Users.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, fmt.Sprintf("%s not found", req.Role))
		}
		return internalError(c, err)
	}
	if user.Role != req.Role {
		return message(c, http.StatusBadRequest, "Incorrect role")
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return message(c, http.StatusBadRequest, "Incorrect password")
	}

	token, err := utils.GenerateJWT(h.Config.JWTSecret, h.Config.TokenExpires,
		user.Name, user.Email, user.PhoneNumber, user.Role)
	if err != nil {
		return internalError(c, err)
	}

	user.Password = ""
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("%s Logged in successfully", user.Role),
		"token":   token,
		"user":    user,
	})
}

// GetUsers lists every user record.
func (h *Handler) GetUsers(c echo.Context) error {
	users, err := h.Users.FindAll(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "All users",
		"users":   users,
	})
}

// GetCurrentUser returns the record behind the presented token.
func (h *Handler) GetCurrentUser(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return message(c, http.StatusBadRequest, "Token not found")
	}

	user, err := h.Users.FindByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "User not found. Invalid ID.")
		}
		return internalError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Data is fetched successfully",
		"user":    user,
	})
}

type AddToCartRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// AddToCart merges a product line into the caller's cart.
func (h *Handler) AddToCart(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return message(c, http.StatusBadRequest, "Token not found")
	}

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request format")
	}
	if req.ProductID == "" || req.Quantity <= 0 || req.Price <= 0 {
		return message(c, http.StatusBadRequest, "Invalid ProductId or quantity")
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return message(c, http.StatusBadRequest, "Invalid product ID")
	}

	ctx := c.Request().Context()
	product, err := h.Products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, fmt.Sprintf("Product with ProductId %s doesn't exist", req.ProductID))
		}
		return internalError(c, err)
	}

	user, err := h.Users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "User not found")
		}
		return internalError(c, err)
	}

	item := models.CartItem{
		Product:  product.ID,
		Quantity: req.Quantity,
		Price:    req.Price,
		Name:     product.ProductTitle,
	}
	if err := h.Users.AddToCart(ctx, user.ID, item); err != nil {
		return internalError(c, err)
	}

	return message(c, http.StatusCreated, "Product added to cart successfully")
}

type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// SendOTP dispatches a fresh verification code by SMS.
func (h *Handler) SendOTP(c echo.Context) error {
	var req SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.Users.FindByPhone(c.Request().Context(), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "Invalid user")
		}
		return internalError(c, err)
	}

	code, err := h.OTP.Send(c.Request().Context(), user)
	if err != nil {
		return message(c, http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("OTP is sent to %s", user.PhoneNumber),
		"code":    code,
	})
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

// VerifyOTP compares the submitted code with the persisted one.
func (h *Handler) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.Users.FindByPhone(c.Request().Context(), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "User not found")
		}
		return internalError(c, err)
	}

	if user.OTP == "" || user.OTP != req.OTP {
		return message(c, http.StatusBadRequest, "Invalid OTP")
	}
	return message(c, http.StatusOK, "OTP verified successfully")
}

type ResetPasswordRequest struct {
	NewPassword     string `json:"newpassword"`
	ConfirmPassword string `json:"confirmpassword"`
}

// ResetPassword replaces the caller's password hash.
func (h *Handler) ResetPassword(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return message(c, http.StatusBadRequest, "Token not found")
	}

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request format")
	}
	if req.NewPassword == "" || req.NewPassword != req.ConfirmPassword {
		return message(c, http.StatusBadRequest, "Password Does Not match")
	}

	ctx := c.Request().Context()
	user, err := h.Users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "User not found")
		}
		return internalError(c, err)
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Config.SaltRounds)
	if err != nil {
		return internalError(c, err)
	}
	if err := h.Users.SetPassword(ctx, user.ID, hash); err != nil {
		return internalError(c, err)
	}

	return message(c, http.StatusOK, "Password Updated Successfully")
}

type WishlistRequest struct {
	ProductID string `json:"productId"`
}

// ToggleWishlist adds the product to the wishlist, or removes it if present.
func (h *Handler) ToggleWishlist(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return message(c, http.StatusBadRequest, "Token not found")
	}

	var req WishlistRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request format")
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return message(c, http.StatusBadRequest, "Invalid product ID")
	}

	ctx := c.Request().Context()
	if _, err := h.Products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "Product not found")
		}
		return internalError(c, err)
	}

	user, err := h.Users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "User not found")
		}
		return internalError(c, err)
	}

	added, err := h.Users.ToggleWishlist(ctx, user.ID, productID)
	if err != nil {
		return internalError(c, err)
	}
	if added {
		return message(c, http.StatusOK, "Product added to wishlist")
	}
	return message(c, http.StatusOK, "Product removed from wishlist")
}

// GetWishlist resolves and returns the caller's wishlist products.
func (h *Handler) GetWishlist(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return message(c, http.StatusBadRequest, "Token not found")
	}

	ctx := c.Request().Context()
	user, err := h.Users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "User not found")
		}
		return internalError(c, err)
	}

	products := make([]models.Product, 0, len(user.Wishlist))
	for _, id := range user.Wishlist {
		product, err := h.Products.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return internalError(c, err)
		}
		products = append(products, *product)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Wishlist fetched successfully",
		"products": products,
	})
}
