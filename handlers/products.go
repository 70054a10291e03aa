package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DeepaShriSG/EcomBE/models"
	"github.com/DeepaShriSG/EcomBE/store"
)

// CreateProduct inserts a catalog entry. Admin only.
func (h *Handler) CreateProduct(c echo.Context) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request format")
	}

	switch {
	case product.ProductTitle == "":
		return message(c, http.StatusBadRequest, "Title is required")
	case product.ProductCode == "":
		return message(c, http.StatusBadRequest, "Product Code is required")
	case product.Brand == "":
		return message(c, http.StatusBadRequest, "Brand is required")
	case len(product.ImgURL) == 0:
		return message(c, http.StatusBadRequest, "ImageURL is required")
	case product.Description == "":
		return message(c, http.StatusBadRequest, "Description is required")
	case product.Price <= 0:
		return message(c, http.StatusBadRequest, "Price is required")
	case product.Stock < 0:
		return message(c, http.StatusBadRequest, "Stock must not be negative")
	case product.Category == "":
		return message(c, http.StatusBadRequest, "Category is required")
	}

	product.Orders = []models.ProductOrder{}
	if err := h.Products.Create(c.Request().Context(), &product); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return message(c, http.StatusConflict, fmt.Sprintf("Product with %s already exists", product.ProductCode))
		}
		return internalError(c, err)
	}

	return message(c, http.StatusCreated, "Product created successfully")
}

// AllProducts lists the catalog. Public.
func (h *Handler) AllProducts(c echo.Context) error {
	items, err := h.Products.FindAll(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "All Products are displayed",
		"items":   items,
	})
}

// ProductByID fetches a single product.
func (h *Handler) ProductByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return message(c, http.StatusBadRequest, "Invalid product ID")
	}

	product, err := h.Products.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "Product not found")
		}
		return internalError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product found successfully",
		"product": product,
	})
}

// EditProduct applies a partial update. Admin only.
func (h *Handler) EditProduct(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return message(c, http.StatusBadRequest, "Invalid product ID")
	}

	var upd store.ProductUpdate
	if err := c.Bind(&upd); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request format")
	}

	product, err := h.Products.Update(c.Request().Context(), id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "Product not found")
		}
		return internalError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product Data Saved",
		"item":    product,
	})
}

type FilterRequest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Category string   `json:"category"`
}

// FilterProducts finds one product matching any of the given fields. Admin only.
func (h *Handler) FilterProducts(c echo.Context) error {
	var req FilterRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid request format")
	}

	var filter store.ProductFilter
	if req.ID != "" {
		id, err := primitive.ObjectIDFromHex(req.ID)
		if err != nil {
			return message(c, http.StatusBadRequest, "Invalid product ID")
		}
		filter.ID = &id
	}
	if req.Name != "" {
		filter.ProductTitle = &req.Name
	}
	if req.Price != nil {
		filter.Price = req.Price
	}
	if req.Category != "" {
		filter.Category = &req.Category
	}

	if _, err := h.Products.Filter(c.Request().Context(), filter); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "Try again, Invalid product details")
		}
		return internalError(c, err)
	}

	return message(c, http.StatusOK, "Product found successfully")
}

// DeleteProduct removes a product. Admin only.
func (h *Handler) DeleteProduct(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return message(c, http.StatusBadRequest, "Invalid product ID")
	}

	if err := h.Products.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return message(c, http.StatusNotFound, "Product not found")
		}
		return internalError(c, err)
	}

	return message(c, http.StatusOK, "Product deleted successfully")
}
