package probe

import (
	"context"
	"time"
)

// Outcome is the terminal, reportable result for one URL.
type Outcome struct {
	URL      string
	Verdict  Verdict
	Attempts int
}

type checkFunc func(ctx context.Context, probeURL string) Verdict

// checkWithRetries is the retry decision loop: run a check, return on
// success, sleep delay*attempt (linear backoff) and retry while the verdict
// is retryable and attempts remain. It is pure over the injected check and
// sleep functions so the schedule is testable without a network or a clock.
func checkWithRetries(ctx context.Context, probeURL string, retries int, baseDelay time.Duration, sleep func(context.Context, time.Duration) error, check checkFunc) Outcome {
	attempts := retries + 1
	var verdict Verdict
	for attempt := 1; attempt <= attempts; attempt++ {
		verdict = check(ctx, probeURL)
		if verdict.OK {
			return Outcome{URL: probeURL, Verdict: verdict, Attempts: attempt}
		}
		if verdict.Retryable && attempt < attempts {
			if err := sleep(ctx, time.Duration(attempt)*baseDelay); err != nil {
				return Outcome{URL: probeURL, Verdict: verdict, Attempts: attempt}
			}
			continue
		}
		return Outcome{URL: probeURL, Verdict: verdict, Attempts: attempt}
	}
	return Outcome{URL: probeURL, Verdict: verdict, Attempts: attempts}
}

// CheckURL checks one URL with bounded retries for transient failures.
func (c *Client) CheckURL(ctx context.Context, probeURL string) Outcome {
	baseDelay := time.Duration(c.cfg.RetryDelay * float64(time.Second))
	check := func(ctx context.Context, u string) Verdict {
		v := c.CheckOnce(ctx, u)
		if !v.OK {
			c.cfg.Logger.Debug("probe failed",
				"url", u,
				"detail", v.Detail,
				"retryable", v.Retryable,
			)
		}
		return v
	}
	return checkWithRetries(ctx, probeURL, c.cfg.Retries, baseDelay, sleepCtx, check)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
