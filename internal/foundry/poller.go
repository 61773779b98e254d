package foundry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/JaideepCherukuri/vercelgateway-azurefoundry/internal/infra"
)

// ErrPollTimeout indicates that a video job stayed in flight past the
// configured wait ceiling.
var ErrPollTimeout = errors.New("foundry: video job did not reach a terminal state in time")

// StatusFetcher retrieves the current state of a video job by id. *Client
// satisfies it; tests substitute fakes.
type StatusFetcher interface {
	RetrieveVideo(ctx context.Context, id string) (*VideoJob, error)
}

// PollOptions tunes the polling loop. Zero values select the defaults: a 10
// second interval and a 10 minute wait ceiling. MaxWait < 0 disables the
// ceiling entirely.
type PollOptions struct {
	Interval time.Duration
	MaxWait  time.Duration
	Logger   *infra.Logger
}

const (
	defaultPollInterval = 10 * time.Second
	defaultPollMaxWait  = 10 * time.Minute
)

// PollVideo blocks until job reaches a terminal status, replacing the local
// copy with a fresh retrieve after each interval. All transitions are driven
// by the remote service; this loop only observes them. The returned job's
// status is always terminal. A retrieve error aborts the poll immediately and
// propagates unwrapped logic-wise; there is no retry here.
//
// The wait ceiling and context cancellation have no counterpart in the remote
// contract: a job that never terminates would otherwise hang the process.
func PollVideo(ctx context.Context, fetcher StatusFetcher, job *VideoJob, opts PollOptions) (*VideoJob, error) {
	if fetcher == nil {
		return nil, errors.New("foundry: status fetcher is required")
	}
	if job == nil || job.ID == "" {
		return nil, errors.New("foundry: job with an id is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	maxWait := opts.MaxWait
	if maxWait == 0 {
		maxWait = defaultPollMaxWait
	}
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	deadline := time.Time{}
	if maxWait > 0 {
		deadline = time.Now().Add(maxWait)
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for !job.Status.Terminal() {
		logger.Info().
			Str("video_id", job.ID).
			Str("status", string(job.Status)).
			Int("progress", job.Progress).
			Dur("interval", interval).
			Msg("video job in flight, waiting")

		if !deadline.IsZero() && time.Now().Add(interval).After(deadline) {
			return nil, fmt.Errorf("%w: last status %q", ErrPollTimeout, job.Status)
		}

		timer.Reset(interval)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		fresh, err := fetcher.RetrieveVideo(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		job = fresh
	}

	logger.Info().
		Str("video_id", job.ID).
		Str("status", string(job.Status)).
		Int("progress", job.Progress).
		Msg("video job reached terminal state")
	return job, nil
}
