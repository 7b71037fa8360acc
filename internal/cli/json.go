package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Global JSON output flag
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count   int `json:"count,omitempty"`
	Skipped int `json:"skipped,omitempty"`
}

// outputJSON outputs the response as JSON to stdout.
func outputJSON(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess outputs a successful JSON response.
func outputSuccess(data interface{}, meta *Meta) {
	outputJSON(Response{OK: true, Data: data, Meta: meta})
}

// outputError outputs an error JSON response.
func outputError(code, message, suggestion string) {
	outputJSON(Response{
		OK:    false,
		Error: &ErrorInfo{Code: code, Message: message, Suggestion: suggestion},
	})
}

// isJSONOutput returns true if JSON output is enabled.
func isJSONOutput() bool {
	return jsonOutput
}

// handleError handles an error appropriately based on output mode.
// In JSON mode, outputs a JSON error. In text mode, returns the error for Cobra.
func handleError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputError(code, err.Error(), suggestion)
		return nil // Don't let Cobra also print the error
	}
	return err
}

// handleErrorMsg handles an error message appropriately based on output mode.
func handleErrorMsg(code, message, suggestion string) error {
	if jsonOutput {
		outputError(code, message, suggestion)
		return nil
	}
	return fmt.Errorf("%s", message)
}
