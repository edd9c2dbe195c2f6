package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"intershop/models"
	"intershop/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService *services.OrderService
}

func NewOrderController(orderService *services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// @Summary Checkout
// @Description Convert the current user's cart into a paid order
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 402 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /orders/checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	userID := c.GetInt64("user_id")

	orderID, err := ctrl.orderService.PurchaseCart(c.Request.Context(), userID)
	if err != nil {
		ctrl.writeCheckoutError(c, err)
		return
	}

	order, err := ctrl.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		// The order exists; only its read-back failed.
		c.JSON(http.StatusCreated, models.Response{
			Success: true,
			Message: "Order created",
			Data:    models.CheckoutResponse{OrderID: orderID},
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Order created",
		Data: models.CheckoutResponse{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			TotalSum:    order.TotalSum,
		},
	})
}

func (ctrl *OrderController) writeCheckoutError(c *gin.Context, err error) {
	var persistence *services.PersistenceError

	switch {
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Cart is empty"})
	case errors.Is(err, services.ErrInconsistentCart):
		c.JSON(http.StatusConflict, models.ErrorResponse{Success: false, Message: "Cart references a product that no longer exists"})
	case errors.Is(err, services.ErrPaymentDeclined):
		c.JSON(http.StatusPaymentRequired, models.ErrorResponse{Success: false, Message: "Payment declined"})
	case errors.Is(err, services.ErrPaymentServiceUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Success: false, Message: "Payment service is unavailable, please try again"})
	case errors.As(err, &persistence):
		// The user may have been charged; this must not look like a
		// generic error.
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Your payment went through but the order could not be recorded. Please contact support.",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Checkout failed"})
	}
}

// @Summary List orders
// @Description List the current user's orders with items
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	userID := c.GetInt64("user_id")

	orders, err := ctrl.orderService.FindAllWithItemsAndProducts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to retrieve orders"})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Orders retrieved", Data: orders})
}

// @Summary Get order
// @Description Get one order by id with decorated items
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid order id"})
		return
	}

	order, err := ctrl.orderService.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		var notFound *services.OrderNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to retrieve order"})
		return
	}

	userID := c.GetInt64("user_id")
	if order.UserID != userID {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: (&services.OrderNotFoundError{ID: id}).Error()})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Order retrieved", Data: order})
}
