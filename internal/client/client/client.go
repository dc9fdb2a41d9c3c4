package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient implements Client over the proxy's JSON API.
type HTTPClient struct {
	http *resty.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// do sends the request and decodes a success body into out. Error bodies
// are turned into ErrUnauthorized or *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, query map[string]string, out any) error {
	var apiErr errorResponse

	req := c.http.R().
		SetContext(ctx).
		SetResult(out).
		SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if query != nil {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.IsError() {
		if resp.StatusCode() == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Error)
		}
		msg := apiErr.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &APIError{Status: resp.StatusCode(), Message: msg, Details: apiErr.Details}
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/ping", nil, nil, &out); err != nil {
		return err
	}
	if out.Status != "OK" {
		return fmt.Errorf("%w: unexpected ping status %q", ErrUnavailable, out.Status)
	}
	return nil
}

func (c *HTTPClient) SendCode(ctx context.Context, sessionID, phone string) (*CodeResponse, error) {
	var out CodeResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/send-code", map[string]string{
		"phoneNumber": phone,
		"sessionId":   sessionID,
	}, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VerifyCode(ctx context.Context, sessionID, phone, code, phoneCodeHash string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/verify-code", map[string]string{
		"phoneNumber":   phone,
		"phoneCode":     code,
		"phoneCodeHash": phoneCodeHash,
		"sessionId":     sessionID,
	}, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VerifyPassword(ctx context.Context, sessionID, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/verify-password", map[string]string{
		"password":  password,
		"sessionId": sessionID,
	}, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Dialogs(ctx context.Context, sessionID string) ([]Dialog, error) {
	var out dialogsResponse
	err := c.do(ctx, http.MethodGet, "/api/messages/get-dialogs", nil, map[string]string{"sessionId": sessionID}, &out)
	if err != nil {
		return nil, err
	}
	return out.Dialogs, nil
}

func (c *HTTPClient) Messages(ctx context.Context, sessionID, peerID string, limit int) ([]Message, error) {
	var out messagesResponse
	err := c.do(ctx, http.MethodPost, "/api/messages/get-messages", map[string]any{
		"sessionId": sessionID,
		"peerId":    peerID,
		"limit":     limit,
	}, nil, &out)
	if err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, sessionID, peerID, text string) (*SentResponse, error) {
	var out SentResponse
	err := c.do(ctx, http.MethodPost, "/api/messages/send-message", map[string]string{
		"sessionId": sessionID,
		"peerId":    peerID,
		"message":   text,
	}, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
