package refwire

import (
	"context"
	"net/url"
	"strconv"
)

// Page controls skip/take pagination on list endpoints. The zero value asks
// for the server default page.
type Page struct {
	Skip int
	Take int
}

func (p Page) query() url.Values {
	q := url.Values{}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Take > 0 {
		q.Set("take", strconv.Itoa(p.Take))
	}
	return q
}

// ListDatasets returns dataset summaries.
func (c *Client) ListDatasets(ctx context.Context, page Page) ([]DatasetSummary, error) {
	var out []DatasetSummary
	if err := c.get(ctx, "/api/datasets", page.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDataset returns the full detail for one dataset.
func (c *Client) GetDataset(ctx context.Context, id string) (*Dataset, error) {
	var out Dataset
	if err := c.get(ctx, "/api/datasets/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDataset bulk-creates a dataset with its fields and items. The
// payload is built fully in memory by the import pipeline; there is no
// partial or streaming upload.
func (c *Client) CreateDataset(ctx context.Context, req CreateDatasetRequest) (*Dataset, error) {
	var out Dataset
	if err := c.post(ctx, "/api/datasets", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDataset removes a dataset and all its items.
func (c *Client) DeleteDataset(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/datasets/"+url.PathEscape(id))
}
