// Package upstream is the client for the external ordering platform API.
// It owns the normalization boundary: responses are decoded tolerantly and
// handed out as canonical models only.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-storefront-backend/internal/models"

	"github.com/pkg/errors"
)

// OrderingClient is what the storefront needs from the ordering platform.
type OrderingClient interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	FetchMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
	CreateOrder(ctx context.Context, payload *OrderPayload) (*OrderConfirmation, error)
	GetOrderStatus(ctx context.Context, orderNumber string) (*OrderStatusInfo, error)
	CheckPromo(ctx context.Context, code, restaurantID string) (*PromoResult, error)
}

// SubmissionError is a rejection from the ordering platform, carrying the
// human-readable message it returned.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order rejected: %s", e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	body, err := c.get(ctx, "/restaurants")
	if err != nil {
		return nil, err
	}

	var docs []restaurantDoc
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, errors.Wrap(err, "decode restaurants")
	}

	restaurants := make([]models.Restaurant, 0, len(docs))
	for _, doc := range docs {
		restaurants = append(restaurants, doc.Restaurant)
	}
	return restaurants, nil
}

func (c *Client) FetchMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	body, err := c.get(ctx, "/restaurants/"+restaurantID+"/menu")
	if err != nil {
		return nil, err
	}

	var docs []menuItemDoc
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, errors.Wrap(err, "decode menu")
	}

	items := make([]models.MenuItem, 0, len(docs))
	for _, doc := range docs {
		item := doc.MenuItem
		if item.RestaurantID == "" {
			item.RestaurantID = restaurantID
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Client) CreateOrder(ctx context.Context, payload *OrderPayload) (*OrderConfirmation, error) {
	body, err := c.post(ctx, "/orders", payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Order   struct {
			OrderNumber string  `json:"order_number"`
			OrderNo     string  `json:"orderNumber"`
			Status      string  `json:"status"`
			TotalAmount float64 `json:"total_amount"`
		} `json:"order"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "decode order confirmation")
	}

	if !resp.Success {
		return nil, &SubmissionError{Message: resp.Message}
	}

	orderNumber := resp.Order.OrderNumber
	if orderNumber == "" {
		orderNumber = resp.Order.OrderNo
	}

	return &OrderConfirmation{
		OrderNumber: orderNumber,
		Status:      resp.Order.Status,
		TotalAmount: resp.Order.TotalAmount,
	}, nil
}

func (c *Client) GetOrderStatus(ctx context.Context, orderNumber string) (*OrderStatusInfo, error) {
	body, err := c.get(ctx, "/orders/"+orderNumber)
	if err != nil {
		return nil, err
	}

	var raw rawObject
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "decode order status")
	}

	return &OrderStatusInfo{
		OrderNumber: raw.str("order_number", "orderNumber"),
		Status:      raw.str("status", "order_status", "orderStatus"),
		DeliveryFee: raw.num("delivery_fee", "deliveryFee"),
		TotalAmount: raw.num("total_amount", "totalAmount", "total"),
	}, nil
}

func (c *Client) CheckPromo(ctx context.Context, code, restaurantID string) (*PromoResult, error) {
	body, err := c.post(ctx, "/promos/check", map[string]string{
		"code":          code,
		"restaurant_id": restaurantID,
	})
	if err != nil {
		return nil, err
	}

	var raw rawObject
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "decode promo result")
	}

	return &PromoResult{
		Code:     code,
		Discount: raw.num("discount", "discount_amount", "discountAmount"),
	}, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "ordering API request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode >= 400 {
		var failure struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(body, &failure)
		message := failure.Message
		if message == "" {
			message = failure.Error
		}
		if message == "" {
			message = resp.Status
		}
		return nil, &SubmissionError{Message: message}
	}

	return body, nil
}
