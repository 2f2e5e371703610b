package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ResendDispatcher usa a API HTTP do Resend.
type ResendDispatcher struct {
	apiKey string
	url    string
	from   string
	client *http.Client
}

func NewResendDispatcher(apiKey, url, from string, client *http.Client) *ResendDispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &ResendDispatcher{
		apiKey: apiKey,
		url:    url,
		from:   from,
		client: client,
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID string `json:"id"`
}

func (d *ResendDispatcher) Send(ctx context.Context, r Reminder) error {
	subject, body, err := Render(r)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(resendRequest{
		From:    d.from,
		To:      []string{r.To},
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("resend status %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	var out resendResponse
	if err := json.Unmarshal(raw, &out); err != nil || out.ID == "" {
		return fmt.Errorf("resend response without id: %s", bytes.TrimSpace(raw))
	}
	return nil
}
