package refwire

import "context"

// GetHealth checks server liveness. It also serves as the credential probe
// during login.
func (c *Client) GetHealth(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.get(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInstance returns descriptive information about the remote instance.
func (c *Client) GetInstance(ctx context.Context) (*Instance, error) {
	var out Instance
	if err := c.get(ctx, "/api/instance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
