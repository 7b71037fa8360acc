package refwire

import "time"

// APIKey is a server-side API key. The Key value is only populated in the
// create response; list responses omit it.
type APIKey struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Key       string    `json:"key,omitempty"`
	Scopes    []string  `json:"scopes"`
	CreatedAt time.Time `json:"createdAt"`
}

// DatasetField is a field definition as the server stores it.
type DatasetField struct {
	Name         string   `json:"name"`
	DataType     string   `json:"dataType"`
	IsID         bool     `json:"isId"`
	IsName       bool     `json:"isName"`
	IsRequired   bool     `json:"isRequired"`
	IsIncluded   bool     `json:"isIncluded"`
	SampleValues []string `json:"sampleValues,omitempty"`
}

// DatasetSummary is a dataset as returned by list endpoints.
type DatasetSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ItemCount   int    `json:"itemCount"`
}

// Dataset is the full dataset detail including its field definitions.
type Dataset struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	IDField     string         `json:"idField"`
	NameField   string         `json:"nameField"`
	Fields      []DatasetField `json:"fields"`
	ItemCount   int            `json:"itemCount"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Item is a dataset item as stored on the server.
type Item struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Data       map[string]any `json:"data"`
	IsArchived bool           `json:"isArchived"`
}

// CreateDatasetRequest is the bulk-create payload: dataset identity, field
// definitions, and the full item mapping keyed by stringified ID.
type CreateDatasetRequest struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	IDField     string          `json:"idField"`
	NameField   string          `json:"nameField"`
	Fields      []DatasetField  `json:"fields"`
	Items       map[string]Item `json:"items"`
}

// ItemRequest is the body for adding or updating a single item.
type ItemRequest struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Data map[string]any `json:"data,omitempty"`
}

// Health is the server liveness report.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Instance describes the remote RefWire instance.
type Instance struct {
	Name          string    `json:"name"`
	Version       string    `json:"version"`
	DatasetCount  int       `json:"datasetCount"`
	ItemCount     int       `json:"itemCount"`
	StartedAt     time.Time `json:"startedAt"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
}
