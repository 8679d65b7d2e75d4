package mailerlite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://connect.mailerlite.com/api"

// APIError carries the provider's non-2xx answer. The raw body is kept for
// server-side logs and must never be echoed to end users.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mailerlite rejected request (status %d)", e.StatusCode)
}

type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

// NewClient fails fast when no token is configured so a misconfigured
// process dies at startup instead of per-request.
func NewClient(apiToken, baseURL string) (*Client, error) {
	if apiToken == "" {
		return nil, errors.New("mailerlite api token is not configured")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		http:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// CreateSubscriber upserts a subscriber keyed by email. Empty fields and
// groups are omitted from the payload entirely.
func (c *Client) CreateSubscriber(ctx context.Context, input CreateSubscriberInput) (*Subscriber, error) {
	status := "active"
	if !input.Subscribed {
		status = "unsubscribed"
	}

	payload := upsertSubscriberRequest{
		Email:  input.Email,
		Status: status,
	}
	if len(input.Fields) > 0 {
		payload.Fields = input.Fields
	}
	if len(input.Groups) > 0 {
		payload.Groups = input.Groups
	}

	var response subscriberResponse
	if err := c.do(ctx, "POST", "/subscribers", payload, &response); err != nil {
		return nil, err
	}

	log.Printf("mailerlite: subscriber upserted email=%s id=%s", input.Email, response.Data.ID)
	return &response.Data, nil
}

// GetSubscriberByEmail returns the first match for the email filter, or
// nil when the provider knows nothing about the address.
func (c *Client) GetSubscriberByEmail(ctx context.Context, email string) (*Subscriber, error) {
	path := "/subscribers?" + url.Values{"filter[email]": {email}}.Encode()

	var response subscriberListResponse
	if err := c.do(ctx, "GET", path, nil, &response); err != nil {
		return nil, err
	}

	if len(response.Data) == 0 {
		return nil, nil
	}
	return &response.Data[0], nil
}

func (c *Client) UpdateSubscriber(ctx context.Context, id string, fields map[string]string) (*Subscriber, error) {
	payload := struct {
		Fields map[string]string `json:"fields"`
	}{Fields: fields}

	var response subscriberResponse
	if err := c.do(ctx, "PUT", "/subscribers/"+id, payload, &response); err != nil {
		return nil, err
	}

	log.Printf("mailerlite: subscriber updated id=%s", id)
	return &response.Data, nil
}

func (c *Client) DeleteSubscriber(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/subscribers/"+id, nil, nil); err != nil {
		return err
	}
	log.Printf("mailerlite: subscriber deleted id=%s", id)
	return nil
}

// do runs one request against the API. Any 2xx counts as success; non-2xx
// answers are logged and surfaced as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal mailerlite payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		// Timeouts and DNS/connection failures land here.
		return fmt.Errorf("mailerlite request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		log.Printf("mailerlite: %s %s failed status=%d body=%s", method, path, resp.StatusCode, string(raw))
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode mailerlite response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
