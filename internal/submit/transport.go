package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Transport delivers a finished order payload to the notification backend
// and reports success or failure. Failures are recoverable: the booking
// flow stays on the pricing step and the customer may retry as-is.
type Transport interface {
	Submit(ctx context.Context, p Payload) error
}

// HTTPTransport posts the payload as JSON to a form endpoint. The client
// timeout bounds a hung backend so the flow never hangs in "submitting".
type HTTPTransport struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPTransport(endpoint string) *HTTPTransport {
	return &HTTPTransport{Endpoint: endpoint, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (t *HTTPTransport) Submit(ctx context.Context, p Payload) error {
	if t.Client == nil {
		t.Client = &http.Client{Timeout: 10 * time.Second}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("submission endpoint returned %s", resp.Status)
	}
	return nil
}
