package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"intershop/models"
	"intershop/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// @Summary Get cart
// @Description Get the current user's cart with totals and balance check
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt64("user_id")

	view, err := ctrl.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to retrieve cart"})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart retrieved", Data: view})
}

// @Summary Add to cart
// @Description Add a product to the cart, incrementing quantity if present
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{id} [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	userID := c.GetInt64("user_id")
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid product id"})
		return
	}

	if err := ctrl.cartService.AddProduct(c.Request.Context(), userID, productID); err != nil {
		var notFound *services.ProductNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to add product to cart"})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product added to cart"})
}

// @Summary Decrement cart line
// @Description Decrease the quantity of a cart line, removing it at zero
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{id}/decrement [post]
func (ctrl *CartController) DecrementItem(c *gin.Context) {
	userID := c.GetInt64("user_id")
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid product id"})
		return
	}

	if err := ctrl.cartService.DecrementProduct(c.Request.Context(), userID, productID); err != nil {
		if errors.Is(err, services.ErrLineNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product is not in the cart"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart updated"})
}

// @Summary Remove cart line
// @Description Delete a cart line outright
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID := c.GetInt64("user_id")
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid product id"})
		return
	}

	if err := ctrl.cartService.RemoveProduct(c.Request.Context(), userID, productID); err != nil {
		if errors.Is(err, services.ErrLineNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product is not in the cart"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product removed from cart"})
}
