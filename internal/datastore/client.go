// Package datastore is the client for the public RefWire dataset store: a
// read-only catalog of curated reference datasets downloadable as zip
// archives containing a data.json record array.
package datastore

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// DefaultBaseURL is the public dataset store.
const DefaultBaseURL = "https://store.refwire.dev"

const (
	defaultTimeout = 60 * time.Second

	// maxArchiveSize caps both the downloaded archive and the extracted
	// data.json so a misbehaving store cannot exhaust memory.
	maxArchiveSize = 128 << 20
)

// CatalogEntry describes one dataset available in the store. IDField and
// NameField are the catalog's declared designation hints, fed to the import
// pipeline when the user does not override them.
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IDField     string `json:"idField,omitempty"`
	NameField   string `json:"nameField,omitempty"`
	DownloadURL string `json:"downloadUrl"`
	Records     int    `json:"records,omitempty"`
}

// Client talks to one dataset store.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTransport injects a custom transport (used by tests).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// NewClient creates a store client. An empty baseURL selects the public
// store.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the store catalog, optionally filtered by a search query.
func (c *Client) List(ctx context.Context, query string) ([]CatalogEntry, error) {
	u := c.baseURL + "/catalog/datasets"
	if query != "" {
		u += "?q=" + url.QueryEscape(query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store returned %d for catalog", resp.StatusCode)
	}

	var entries []CatalogEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return entries, nil
}

// Get returns one catalog entry by dataset ID.
func (c *Client) Get(ctx context.Context, id string) (*CatalogEntry, error) {
	entries, err := c.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("dataset %q not found in store catalog", id)
}

// Pull downloads an entry's archive and returns the raw data.json text.
// The archive is processed entirely in memory; only the data.json member is
// read, so hostile member paths in the zip are never touched.
func (c *Client) Pull(ctx context.Context, entry *CatalogEntry) (string, error) {
	if entry.DownloadURL == "" {
		return "", fmt.Errorf("catalog entry %q has no download URL", entry.ID)
	}

	downloadURL := entry.DownloadURL
	if strings.HasPrefix(downloadURL, "/") {
		downloadURL = c.baseURL + downloadURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", entry.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("store returned %d for %s", resp.StatusCode, entry.ID)
	}

	archive, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return "", fmt.Errorf("read archive: %w", err)
	}
	if len(archive) > maxArchiveSize {
		return "", fmt.Errorf("archive for %s exceeds %d bytes", entry.ID, maxArchiveSize)
	}

	return extractDataJSON(archive)
}

// extractDataJSON finds the data.json member in a zip archive and returns
// its contents.
func extractDataJSON(archive []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}

	for _, f := range zr.File {
		if path.Base(f.Name) != "data.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open data.json: %w", err)
		}
		defer rc.Close()

		data, err := io.ReadAll(io.LimitReader(rc, maxArchiveSize+1))
		if err != nil {
			return "", fmt.Errorf("read data.json: %w", err)
		}
		if len(data) > maxArchiveSize {
			return "", fmt.Errorf("data.json exceeds %d bytes", maxArchiveSize)
		}
		return string(data), nil
	}

	return "", fmt.Errorf("archive has no data.json member")
}
