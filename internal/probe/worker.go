package probe

import (
	"context"
	"sync"
	"sync/atomic"
)

// CheckAll probes every URL through a bounded worker pool. Each URL gets
// exactly one outcome slot, indexed by its position in urls, so the final
// report comes out in input order no matter which worker finishes first.
// A cancelled context returns nil: partial outcomes are discarded, never
// reported.
func (c *Client) CheckAll(ctx context.Context, urls []string, progress func(completed int, probeURL string)) []Outcome {
	outcomes := make([]Outcome, len(urls))
	indexes := make(chan int, len(urls))

	var completed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < c.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				select {
				case <-ctx.Done():
					return
				default:
				}
				outcomes[idx] = c.CheckURL(ctx, urls[idx])
				if progress != nil {
					progress(int(completed.Add(1)), urls[idx])
				}
			}
		}()
	}

	for i := range urls {
		indexes <- i
	}
	close(indexes)

	wg.Wait()

	if ctx.Err() != nil {
		return nil
	}
	return outcomes
}
