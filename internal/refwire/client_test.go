package refwire

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "secret-key")
}

func TestClientSendsAuthHeaders(t *testing.T) {
	var gotKey, gotRequestID, gotAccept string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		json.NewEncoder(w).Encode(Health{Status: "healthy"})
	})

	h, err := c.GetHealth(context.Background())
	if err != nil {
		t.Fatalf("GetHealth failed: %v", err)
	}
	if h.Status != "healthy" {
		t.Errorf("Status = %q", h.Status)
	}
	if gotKey != "secret-key" {
		t.Errorf("X-Api-Key = %q", gotKey)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID missing")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestClientDecodesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"INVALID_KEY","message":"API key is not valid"}}`))
	})

	_, err := c.GetHealth(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Code != "INVALID_KEY" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if !apiErr.IsAuthError() {
		t.Error("401 should be an auth error")
	}
}

func TestClientPlainErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.GetHealth(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d", apiErr.Status)
	}
}

func TestCreateDataset(t *testing.T) {
	var got CreateDatasetRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/datasets" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Dataset{ID: got.ID, Name: got.Name, ItemCount: len(got.Items)})
	})

	req := CreateDatasetRequest{
		ID:        "countries",
		Name:      "Countries",
		IDField:   "id",
		NameField: "name",
		Fields: []DatasetField{
			{Name: "id", DataType: "Text", IsID: true, IsRequired: true, IsIncluded: true},
			{Name: "name", DataType: "Text", IsName: true, IsRequired: true, IsIncluded: true},
		},
		Items: map[string]Item{
			"us": {ID: "us", Name: "United States", Data: map[string]any{"id": "us"}},
		},
	}

	ds, err := c.CreateDataset(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}
	if ds.ID != "countries" || ds.ItemCount != 1 {
		t.Errorf("Dataset = %+v", ds)
	}
	if got.Items["us"].Name != "United States" {
		t.Errorf("server saw items = %+v", got.Items)
	}
}

func TestListDatasetsPagination(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("skip") != "10" || r.URL.Query().Get("take") != "5" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]DatasetSummary{{ID: "a"}, {ID: "b"}})
	})

	datasets, err := c.ListDatasets(context.Background(), Page{Skip: 10, Take: 5})
	if err != nil {
		t.Fatalf("ListDatasets failed: %v", err)
	}
	if len(datasets) != 2 {
		t.Errorf("len = %d", len(datasets))
	}
}

func TestItemEndpoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/datasets/countries/items/us/archive":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/datasets/countries/items/us":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/api/datasets/countries/search":
			if r.URL.Query().Get("q") != "united" {
				t.Errorf("q = %q", r.URL.Query().Get("q"))
			}
			json.NewEncoder(w).Encode([]Item{{ID: "us"}})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	if err := c.ArchiveItem(ctx, "countries", "us"); err != nil {
		t.Errorf("ArchiveItem failed: %v", err)
	}
	if err := c.DeleteItem(ctx, "countries", "us"); err != nil {
		t.Errorf("DeleteItem failed: %v", err)
	}
	items, err := c.SearchItems(ctx, "countries", "united", 0)
	if err != nil {
		t.Fatalf("SearchItems failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "us" {
		t.Errorf("items = %+v", items)
	}
}

func TestCreateAPIKeyRevealsKeyOnce(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(APIKey{ID: "k1", Name: "ci", Key: "rw_live_abc", Scopes: []string{"datasets:write"}})
	})

	key, err := c.CreateAPIKey(context.Background(), "ci", []string{"datasets:write"})
	if err != nil {
		t.Fatalf("CreateAPIKey failed: %v", err)
	}
	if key.Key != "rw_live_abc" {
		t.Errorf("Key = %q", key.Key)
	}
}
