package clientcart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cartify/cartify/internal/models"
)

// LocalEntry mirrors one line of the unauthenticated cart, keyed by item.
type LocalEntry struct {
	ItemID   uint `json:"itemId"`
	Quantity int  `json:"quantity"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// API is the slice of the backend the cart store needs.
type API interface {
	Login(ctx context.Context, email, password string, clientCart []LocalEntry) (*AuthResponse, error)
	FetchCart(ctx context.Context) ([]models.CartLine, error)
	AddItem(ctx context.Context, itemID uint, quantity int) error
	RemoveItem(ctx context.Context, itemID uint) error
	ClearCart(ctx context.Context) error
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, email, password string, clientCart []LocalEntry) (*AuthResponse, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	if len(clientCart) > 0 {
		payload["clientCart"] = clientCart
	}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) FetchCart(ctx context.Context) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Client) AddItem(ctx context.Context, itemID uint, quantity int) error {
	payload := map[string]interface{}{"itemId": itemID, "quantity": quantity}
	return c.do(ctx, http.MethodPost, "/cart", payload, nil)
}

func (c *Client) RemoveItem(ctx context.Context, itemID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", itemID), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil)
}
