package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"anoa.com/lifesaver/internal/entity"
	"github.com/google/uuid"
)

// Client is a typed HTTP client for the LifeSaver API, used by the polling
// loop and usable on its own.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type createAlertRequest struct {
	SenderName string  `json:"sender_name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type createAlertResponse struct {
	Alert         *entity.Alert         `json:"alert"`
	Notifications []entity.Notification `json:"notifications"`
	FanoutError   string                `json:"fanout_error,omitempty"`
}

func (c *Client) CreateAlert(ctx context.Context, senderName string, lat, lng float64) (*entity.Alert, error) {
	body, err := json.Marshal(createAlertRequest{
		SenderName: senderName,
		Latitude:   lat,
		Longitude:  lng,
	})
	if err != nil {
		return nil, err
	}

	var resp createAlertResponse
	if err := c.do(ctx, http.MethodPost, "/api/sos-alert", bytes.NewReader(body), http.StatusCreated, &resp); err != nil {
		return nil, err
	}
	return resp.Alert, nil
}

func (c *Client) ListUnread(ctx context.Context, phone string) ([]entity.Notification, error) {
	path := "/api/notifications/" + url.PathEscape(phone)

	var notifications []entity.Notification
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *Client) MarkRead(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	path := fmt.Sprintf("/api/notifications/%s/read", id)

	var notification entity.Notification
	if err := c.do(ctx, http.MethodPut, path, nil, http.StatusOK, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, wantStatus int, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
