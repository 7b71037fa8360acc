package cli

import (
	"errors"
	"time"

	"github.com/coretravis/refwire-cli/internal/refwire"
	"github.com/coretravis/refwire-cli/internal/ui"
)

// networkSpinner wraps ui.Spinner so JSON mode stays machine-readable.
type networkSpinner struct {
	s *ui.Spinner
}

func newNetworkSpinner(message string) *networkSpinner {
	if isJSONOutput() {
		return &networkSpinner{}
	}
	s := ui.NewSpinner(message)
	s.Start()
	return &networkSpinner{s: s}
}

func (n *networkSpinner) Stop() {
	if n.s != nil {
		n.s.Stop()
	}
}

// handleAPIError maps client errors to stable codes and suggestions.
func handleAPIError(err error) error {
	var apiErr *refwire.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsAuthError():
			return handleError(ErrAuthFailed, err, "Check your API key; run 'refwire login' to update it")
		case apiErr.IsNotFound():
			return handleError(ErrNotFound, err, "")
		default:
			return handleError(ErrAPIError, err, "")
		}
	}
	return handleError(ErrAPIError, err, "Is the server reachable?")
}

// formatTime renders timestamps for table output.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
