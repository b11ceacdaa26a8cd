package remote

import (
	"context"
	"net/http"
)

// LoginResponse is the backend's token answer.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login calls POST /login
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	reqBody := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/login", "/login", reqBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
