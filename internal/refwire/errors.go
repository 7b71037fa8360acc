package refwire

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response from the RefWire server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// IsAuthError reports whether the error is an authentication/authorization
// failure, which the CLI maps to a "check your API key" suggestion.
func (e *APIError) IsAuthError() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsNotFound reports whether the server said the resource does not exist.
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// decodeAPIError turns an error response into an *APIError, keeping the
// server's structured code/message when the body carries one.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var body errorBody
	if json.Unmarshal(data, &body) == nil && body.Error.Message != "" {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	return apiErr
}
