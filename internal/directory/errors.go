package directory

import "fmt"

// AuthenticationError indicates the provider rejected the client-credentials
// token request. It is fatal for the run.
type AuthenticationError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed: token endpoint returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// TransportError indicates a network-level failure reaching the provider,
// including timeouts. It is fatal for the run but worth retrying on the next
// scheduled tick.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError indicates the provider returned an unexpected status or an
// undecodable response body. It is fatal for the run.
type ProtocolError struct {
	StatusCode int
	Body       string
	Message    string
}

func (e *ProtocolError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("protocol error: %s (status %d): %s", e.Message, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("protocol error: %s", e.Message)
}
