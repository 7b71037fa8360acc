package refwire

import (
	"context"
	"net/url"
)

// ListAPIKeys returns all API keys. Key material is never included.
func (c *Client) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	var out []APIKey
	if err := c.get(ctx, "/api/apikeys", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAPIKey creates a key with the given name and scopes. The response is
// the only time the server reveals the key value.
func (c *Client) CreateAPIKey(ctx context.Context, name string, scopes []string) (*APIKey, error) {
	body := struct {
		Name   string   `json:"name"`
		Scopes []string `json:"scopes,omitempty"`
	}{Name: name, Scopes: scopes}

	var out APIKey
	if err := c.post(ctx, "/api/apikeys", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeAPIKey permanently revokes a key by ID.
func (c *Client) RevokeAPIKey(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/apikeys/"+url.PathEscape(id))
}
