package gateway

import (
	"testing"
	"time"
)

func TestPolicyDecide(t *testing.T) {
	policy := Policy{
		MaxRetries:  2,
		BackoffBase: 100 * time.Millisecond,
		RetryOn:     []ErrorKind{KindNetworkError, KindTimeout, KindUnavailable},
	}

	tests := []struct {
		name      string
		attempt   int
		kind      ErrorKind
		wantRetry bool
		wantDelay time.Duration
	}{
		{"first network failure retried", 0, KindNetworkError, true, 100 * time.Millisecond},
		{"second failure waits longer", 1, KindTimeout, true, 200 * time.Millisecond},
		{"budget exhausted", 2, KindUnavailable, false, 0},
		{"way past budget", 5, KindNetworkError, false, 0},
		{"malformed never retried", 0, KindMalformedResponse, false, 0},
		{"kind not in list", 0, ErrorKind("SOMETHING_ELSE"), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := policy.Decide(tt.attempt, tt.kind)
			if d.Retry != tt.wantRetry {
				t.Errorf("Retry = %v, want %v", d.Retry, tt.wantRetry)
			}
			if d.Delay != tt.wantDelay {
				t.Errorf("Delay = %v, want %v", d.Delay, tt.wantDelay)
			}
		})
	}
}

func TestPolicyDecideMalformedInRetryOn(t *testing.T) {
	// Even an explicitly configured malformed entry must not cause a retry.
	policy := Policy{
		MaxRetries:  3,
		BackoffBase: time.Millisecond,
		RetryOn:     []ErrorKind{KindMalformedResponse},
	}
	if d := policy.Decide(0, KindMalformedResponse); d.Retry {
		t.Error("malformed response was retried")
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", p.MaxRetries)
	}
	if !p.Decide(0, KindUnavailable).Retry {
		t.Error("default policy should retry unavailable")
	}
	if p.Decide(0, KindMalformedResponse).Retry {
		t.Error("default policy retried malformed response")
	}
}
