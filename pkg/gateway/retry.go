package gateway

import "time"

// ErrorKind classifies a failed outbound call so callers can pick a
// stage-appropriate reaction instead of matching on message text.
type ErrorKind string

const (
	// KindNetworkError means no response was obtained at all.
	KindNetworkError ErrorKind = "NETWORK_ERROR"
	// KindTimeout means the attempt exceeded its own deadline.
	KindTimeout ErrorKind = "TIMEOUT"
	// KindUnavailable means the upstream explicitly signaled transient
	// failure (502/503/504 class).
	KindUnavailable ErrorKind = "UNAVAILABLE"
	// KindMalformedResponse means the body claimed to be JSON but did not parse.
	KindMalformedResponse ErrorKind = "MALFORMED_RESPONSE"
)

// Decision is the outcome of the retry policy for one failed attempt.
type Decision struct {
	Retry bool
	Delay time.Duration
}

// Policy decides whether a failed attempt should be retried and how long
// to wait first. It is a pure value so it can be tested without timers.
type Policy struct {
	// MaxRetries bounds additional attempts after the first one.
	MaxRetries int
	// BackoffBase scales the linear backoff: delay = base * attempt.
	BackoffBase time.Duration
	// RetryOn lists the error kinds that are worth another attempt.
	// Malformed responses are never retried regardless of this list:
	// re-sending the request cannot fix a body the upstream already sent.
	RetryOn []ErrorKind
}

// DefaultPolicy retries transient transport failures a small number of times.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:  2,
		BackoffBase: 500 * time.Millisecond,
		RetryOn:     []ErrorKind{KindNetworkError, KindTimeout, KindUnavailable},
	}
}

// Decide returns the retry decision for the given 0-based attempt index and
// failure kind. The delay grows linearly with the attempt index so the first
// retry waits base*1, the second base*2, and so on. No delay is ever produced
// for the final attempt because Decide refuses it outright.
func (p Policy) Decide(attempt int, kind ErrorKind) Decision {
	if attempt >= p.MaxRetries {
		return Decision{}
	}
	if kind == KindMalformedResponse {
		return Decision{}
	}
	for _, k := range p.RetryOn {
		if k == kind {
			return Decision{Retry: true, Delay: p.BackoffBase * time.Duration(attempt+1)}
		}
	}
	return Decision{}
}
