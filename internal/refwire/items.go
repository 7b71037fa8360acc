package refwire

import (
	"context"
	"net/url"
	"strconv"
)

func itemsPath(datasetID string) string {
	return "/api/datasets/" + url.PathEscape(datasetID) + "/items"
}

// ListItems returns a page of a dataset's items.
func (c *Client) ListItems(ctx context.Context, datasetID string, page Page) ([]Item, error) {
	var out []Item
	if err := c.get(ctx, itemsPath(datasetID), page.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetItem returns a single item by ID.
func (c *Client) GetItem(ctx context.Context, datasetID, itemID string) (*Item, error) {
	var out Item
	if err := c.get(ctx, itemsPath(datasetID)+"/"+url.PathEscape(itemID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddItem adds one item to an existing dataset.
func (c *Client) AddItem(ctx context.Context, datasetID string, req ItemRequest) (*Item, error) {
	var out Item
	if err := c.post(ctx, itemsPath(datasetID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem replaces an item's name and data.
func (c *Client) UpdateItem(ctx context.Context, datasetID, itemID string, req ItemRequest) (*Item, error) {
	var out Item
	if err := c.put(ctx, itemsPath(datasetID)+"/"+url.PathEscape(itemID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ArchiveItem marks an item archived without deleting it.
func (c *Client) ArchiveItem(ctx context.Context, datasetID, itemID string) error {
	return c.post(ctx, itemsPath(datasetID)+"/"+url.PathEscape(itemID)+"/archive", nil, nil)
}

// DeleteItem permanently removes an item.
func (c *Client) DeleteItem(ctx context.Context, datasetID, itemID string) error {
	return c.delete(ctx, itemsPath(datasetID)+"/"+url.PathEscape(itemID))
}

// SearchItems runs a text search over a dataset's items.
func (c *Client) SearchItems(ctx context.Context, datasetID, queryText string, take int) ([]Item, error) {
	q := url.Values{}
	q.Set("q", queryText)
	if take > 0 {
		q.Set("take", strconv.Itoa(take))
	}
	var out []Item
	if err := c.get(ctx, "/api/datasets/"+url.PathEscape(datasetID)+"/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
