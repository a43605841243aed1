package client

import (
	"context"

	"lemuel.com/eduspaceadmin/internal/entity"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *entity.User `json:"user,omitempty"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.post(ctx, "/users/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminLogin(ctx context.Context, creds Credentials) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.post(ctx, "/admin-auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a user account; the console uses it for new students and teachers.
func (c *Client) Register(ctx context.Context, payload any) (*entity.User, error) {
	var out entity.User
	if err := c.post(ctx, "/users/register", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*entity.User, error) {
	var out entity.User
	if err := c.get(ctx, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMe(ctx context.Context, payload any) (*entity.User, error) {
	var out entity.User
	if err := c.put(ctx, "/users/me", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
