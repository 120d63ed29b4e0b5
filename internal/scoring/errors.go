package scoring

import (
	"errors"
	"fmt"
	"time"
)

// ErrCircuitOpen is wrapped in a TransportError when the breaker refuses
// to call the scoring service.
var ErrCircuitOpen = errors.New("scoring circuit open")

// TransportError means the scoring service could not be reached or was
// temporarily unable to answer. The submission may be retried unchanged.
type TransportError struct {
	StatusCode int           // 0 when no HTTP response was received
	RetryAfter time.Duration // from a Retry-After header, if any
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("scoring service unavailable (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("scoring service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ContractError means the scoring service answered with something that
// breaks the agreed response contract: a malformed body, a missing field,
// an unknown tier label, a score out of range, or an incompatible version.
// Resubmitting the same answers will not help.
type ContractError struct {
	StatusCode int
	Reason     string
	Body       []byte
	Err        error
}

func (e *ContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scoring response rejected: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("scoring response rejected: %s", e.Reason)
}

func (e *ContractError) Unwrap() error { return e.Err }

// Error kinds recorded in the submission history.
const (
	KindTransport = "transport"
	KindContract  = "contract"
	KindOther     = "other"
)

// Kind classifies err for logging and history. A nil error has no kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsContract(err):
		return KindContract
	case IsTransport(err):
		return KindTransport
	default:
		return KindOther
	}
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsContract reports whether err is, or wraps, a ContractError.
func IsContract(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}
