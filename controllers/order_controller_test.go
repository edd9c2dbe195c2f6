package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"intershop/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWriteCheckoutError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"empty cart", services.ErrEmptyCart, http.StatusBadRequest},
		{"inconsistent cart", services.ErrInconsistentCart, http.StatusConflict},
		{"declined", services.ErrPaymentDeclined, http.StatusPaymentRequired},
		{"payment service down", services.ErrPaymentServiceUnavailable, http.StatusServiceUnavailable},
		{"wrapped payment service down", errors.Join(services.ErrPaymentServiceUnavailable, errors.New("dial tcp")), http.StatusServiceUnavailable},
		{"persistence failure", &services.PersistenceError{UserID: 7, Amount: 4000, Err: errors.New("deadlock")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	ctrl := NewOrderController(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			ctrl.writeCheckoutError(c, tc.err)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestWriteCheckoutErrorPersistenceMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	NewOrderController(nil).writeCheckoutError(c, &services.PersistenceError{UserID: 7, Amount: 4000, Err: errors.New("deadlock")})

	assert.Contains(t, rec.Body.String(), "contact support")
	assert.Contains(t, rec.Body.String(), "payment went through")
}
