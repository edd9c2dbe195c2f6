package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrServiceUnavailable means the payment service could not be reached or
// answered with a server error. It is never a decline: a decline is a
// reachable service saying no.
var ErrServiceUnavailable = errors.New("payment service is unavailable")

type PaymentClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPaymentClient(baseURL string, timeout time.Duration) *PaymentClient {
	return &PaymentClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chargeRequest struct {
	UserID int64 `json:"user_id"`
	Amount int64 `json:"amount"`
}

type chargeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type balanceResponse struct {
	UserID  int64 `json:"user_id"`
	Balance int64 `json:"balance"`
}

// Charge atomically checks-and-debits the user's balance on the payment
// service. It returns (false, nil) for an explicit decline and
// ErrServiceUnavailable for connectivity failures, timeouts, and 5xx
// responses. A timeout is never treated as success. No retries are
// performed here; retry policy belongs to the caller.
func (c *PaymentClient) Charge(ctx context.Context, userID, amount int64) (bool, error) {
	body, err := json.Marshal(chargeRequest{UserID: userID, Amount: amount})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return false, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		// insufficient balance or business rejection
		return false, nil
	}

	var result chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("%w: bad response: %v", ErrServiceUnavailable, err)
	}
	return result.Success, nil
}

// GetBalance fetches the user's current balance. Used by the cart view to
// decide whether the cart can be bought; checkout never relies on it.
func (c *PaymentClient) GetBalance(ctx context.Context, userID int64) (int64, error) {
	url := fmt.Sprintf("%s/balance/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var result balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("%w: bad response: %v", ErrServiceUnavailable, err)
	}
	return result.Balance, nil
}
