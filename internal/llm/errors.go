package llm

import "errors"

var (
	// ErrUpstream indicates the completion service answered but the response
	// was unusable (non-200 status, undecodable body, no choices).
	ErrUpstream = errors.New("completion service returned an unusable response")

	// ErrTransport indicates the request failed before or during transit.
	ErrTransport = errors.New("completion service unreachable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	// Timeouts are transport failures: errors.Is(err, ErrTransport) holds.
	ErrTimeout = errors.New("completion request timed out")

	// ErrNotConfigured indicates no endpoint was configured.
	ErrNotConfigured = errors.New("completion endpoint not configured")
)

// Error codes reported to observers and metrics.
const (
	CodeUpstream      = "UPSTREAM"
	CodeTransport     = "TRANSPORT"
	CodeTimeout       = "TIMEOUT"
	CodeNotConfigured = "NOT_CONFIGURED"
	CodeUnknown       = "UNKNOWN"
)

// ErrorCode classifies err into one of the Code* constants.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return CodeTimeout
	case errors.Is(err, ErrNotConfigured):
		return CodeNotConfigured
	case errors.Is(err, ErrTransport):
		return CodeTransport
	case errors.Is(err, ErrUpstream):
		return CodeUpstream
	default:
		return CodeUnknown
	}
}
