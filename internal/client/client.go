package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lhomangroup/voyageur-malin/internal/usecase"
)

// FunctionPath is appended to the endpoint base URL.
const FunctionPath = "/functions/v1/send-checklist"

// MsgLocalFallback answers submissions made without a configured backend.
const MsgLocalFallback = "Merci ! Votre demande a bien été enregistrée."

// Values shipped in the sample environment file, treated as unset.
const (
	placeholderEndpoint = "your_supabase_project_url"
	placeholderKey      = "your_supabase_anon_key"
)

type Response struct {
	Message      string `json:"message"`
	SubscriberID string `json:"subscriber_id,omitempty"`
	Fallback     bool   `json:"fallback,omitempty"`
}

// APIError is a non-2xx answer of the submission endpoint.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("send-checklist: status %d: %s (%s)", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("send-checklist: status %d: %s", e.Status, e.Message)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type Client struct {
	endpoint string
	anonKey  string
	http     *http.Client
}

func NewClient(endpoint, anonKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		anonKey:  strings.TrimSpace(anonKey),
		http:     &http.Client{Timeout: timeout},
	}
}

// Configured reports whether both the endpoint and the key are real values.
func (c *Client) Configured() bool {
	if c.endpoint == "" || c.anonKey == "" {
		return false
	}
	return c.endpoint != placeholderEndpoint && c.anonKey != placeholderKey
}

// SubmitChecklist posts the submission. Without a configured backend it
// answers a local fallback response and makes no request.
func (c *Client) SubmitChecklist(ctx context.Context, input usecase.SendChecklistInput) (*Response, error) {
	if !c.Configured() {
		return &Response{Message: MsgLocalFallback, Fallback: true}, nil
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+FunctionPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send-checklist request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode send-checklist response: %w", err)
	}
	return &out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("apikey", c.anonKey)
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}

	var payload errorResponse
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
		apiErr.Details = payload.Details
	}
	return apiErr
}
