package zanapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// fallbackMessage is reported when the backend gives no usable error text.
const fallbackMessage = "Request failed"

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do performs a single JSON request. GET requests never carry a body, and
// the Authorization header is only set when token is non-empty.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil && method != http.MethodGet {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}

	return decodeJSON(resp, out)
}

// do performs a request carrying the session's bearer token.
func (s *Session) do(ctx context.Context, method, path string, body, out any) error {
	return s.client.do(ctx, method, path, s.token, body, out)
}

// enveloped is implemented by responses that embed Status.
type enveloped interface {
	status() Status
}

// decodeJSON decodes a JSON response into out.
// Non-2xx responses, malformed bodies and envelopes with ok=false all
// become an *APIError. An empty body decodes as null and leaves out untouched.
func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(resp.StatusCode, bodyBytes)
	}

	bodyBytes = bytes.TrimSpace(bodyBytes)
	if len(bodyBytes) == 0 {
		return nil
	}

	if out == nil {
		if !json.Valid(bodyBytes) {
			return &APIError{StatusCode: resp.StatusCode, Message: fallbackMessage, Err: ErrMalformedResponse}
		}
		return nil
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fallbackMessage,
			Err:        fmt.Errorf("%w: %w", ErrMalformedResponse, err),
		}
	}

	if env, ok := out.(enveloped); ok {
		if st := env.status(); !st.OK {
			msg := st.Error
			if msg == "" {
				msg = fallbackMessage
			}
			return &APIError{StatusCode: resp.StatusCode, Message: msg}
		}
	}

	return nil
}

// parseErrorResponse turns a non-2xx response into an *APIError carrying
// the backend's "error" field when there is one.
func parseErrorResponse(statusCode int, body []byte) error {
	msg := fallbackMessage

	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		msg = errResp.Error
	}

	return &APIError{StatusCode: statusCode, Message: msg}
}
