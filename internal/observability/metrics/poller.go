package metrics

import (
	"context"
	"time"
)

// PollFunc is a single round of a background poller.
type PollFunc func(ctx context.Context) error

// InstrumentPoller times every round of poll under the poller name, labelled
// by whether the round failed.
func InstrumentPoller(name string, poll PollFunc) PollFunc {
	return func(ctx context.Context) error {
		start := time.Now()
		err := poll(ctx)

		outcome := Success
		if err != nil {
			outcome = Error
		}
		pollerDurationHistogram.WithLabelValues(name, outcome.String()).Observe(time.Since(start).Seconds())

		return err
	}
}
