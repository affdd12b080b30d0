package alert

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Alert is the payload posted to the configured webhook.
type Alert struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Client delivers stock alerts to an external webhook.
type Client interface {
	Send(ctx context.Context, a Alert) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookClient builds a webhook client for the given URL.
func NewWebhookClient(url string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		url:        url,
	}
}

// Send posts the alert and fails on any non-2xx response.
func (c *WebhookClient) Send(ctx context.Context, a Alert) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(a).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send alert webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("alert webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
