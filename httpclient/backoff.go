package httpclient

import (
	"context"
	crand "crypto/rand"
	"math/big"
	"time"
)

// maxBackoff caps the exponential delay between attempts.
const maxBackoff = 30 * time.Second

// backoffDelay returns the delay before retry attempt+1: base * 2^attempt,
// capped at maxBackoff, plus up to 10% random jitter to avoid synchronized
// retry storms.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = DefaultRetryDelay
	}
	// Cap the exponent to avoid overflow when computing the multiplier
	if attempt > 20 {
		attempt = 20
	}
	d := base * time.Duration(1<<attempt)
	if d > maxBackoff {
		d = maxBackoff
	}

	jitterMax := int64(d / 10)
	if jitterMax > 0 {
		if n, err := crand.Int(crand.Reader, big.NewInt(jitterMax)); err == nil {
			d += time.Duration(n.Int64())
		}
	}
	return d
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
