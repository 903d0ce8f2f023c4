package client

import (
	"context"
	"net/http"
)

type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and stores the returned session tokens.
func (c *Client) Register(ctx context.Context, email, password, role string) error {
	var pair TokenPair
	payload := registerPayload{Email: email, Password: password, Role: role}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, payload, &pair); err != nil {
		return err
	}
	c.tokens.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// Login authenticates and stores the returned session tokens.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var pair TokenPair
	payload := loginPayload{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, payload, &pair); err != nil {
		return err
	}
	c.tokens.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// Logout drops the stored session tokens. Tokens are stateless on the
// server, so nothing is sent.
func (c *Client) Logout() {
	c.tokens.Clear()
}
