package zanapi

import (
	"net/http"
	"strings"
)

// Client is a client for the ZanConfig backend API.
// It provides access to the public account endpoints and creates Sessions
// for calls that carry a bearer token.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new backend client. The HTTP client has no timeout;
// every call is bounded by the context passed to it.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// Session is a token-bearing view of a Client. The token is sent as-is;
// the backend decides whether it is still valid.
type Session struct {
	client *Client
	token  string
}

// WithToken returns a Session that authenticates its requests with token.
func (c *Client) WithToken(token string) *Session {
	return &Session{client: c, token: token}
}

// Token returns the bearer token used by the session.
func (s *Session) Token() string {
	return s.token
}
