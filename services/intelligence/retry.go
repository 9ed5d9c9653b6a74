// File: services/intelligence/retry.go
package ai

import (
	"context"
	"strings"
	"time"

	"repairdesk/models"
	"repairdesk/utils"

	"go.uber.org/zap"
)

// RetryPolicy controls how many times the primary model is attempted and
// how long to wait between attempts. Delays beyond the schedule reuse the
// last entry.
type RetryPolicy struct {
	MaxAttempts int
	Delays      []time.Duration
}

// DefaultRetryPolicy returns the standard schedule of three attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delays:      []time.Duration{1 * time.Second, 2 * time.Second, 5 * time.Second},
	}
}

// ParseBackoffSchedule parses a comma-separated list of durations such as
// "1s,2s,5s". Invalid entries are skipped; an empty result falls back to
// the default schedule.
func ParseBackoffSchedule(s string) []time.Duration {
	var delays []time.Duration
	for _, part := range strings.Split(s, ",") {
		d, err := time.ParseDuration(strings.TrimSpace(part))
		if err != nil || d < 0 {
			continue
		}
		delays = append(delays, d)
	}
	if len(delays) == 0 {
		return DefaultRetryPolicy().Delays
	}
	return delays
}

func (p RetryPolicy) delayFor(attempt int) time.Duration {
	if len(p.Delays) == 0 {
		return 0
	}
	if attempt >= len(p.Delays) {
		return p.Delays[len(p.Delays)-1]
	}
	return p.Delays[attempt]
}

// invokeWithFailover drives the invocation ladder: the primary model gets
// the full retry schedule, then the fallback model gets a single shot.
// Credential failures abort immediately. Unclassified failures carry a
// one-retry budget shared across the whole ladder.
func invokeWithFailover(
	ctx context.Context,
	invoker modelInvoker,
	primary, fallback, system string,
	history []models.ChatTurn,
	message string,
	image []byte,
	imageMIME string,
	policy RetryPolicy,
) (string, error) {
	logger := utils.GetLogger()
	unknownRetried := false

primary:
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(policy.delayFor(attempt - 1)):
			case <-ctx.Done():
				return "", ErrServiceUnavailable
			}
		}

		reply, err := invoker.Invoke(ctx, primary, system, history, message, image, imageMIME)
		if err == nil {
			return reply, nil
		}

		inv := Classify(err)
		logger.Warn("primary model attempt failed",
			zap.String("model", primary),
			zap.Int("attempt", attempt+1),
			zap.String("kind", inv.Kind.String()),
			zap.Error(inv.Err),
		)

		switch inv.Kind {
		case KindFatal:
			return "", ErrCredentialRejected
		case KindUnknown:
			if unknownRetried {
				// Budget spent, stop hammering the primary.
				break primary
			}
			unknownRetried = true
		}
	}

	if fallback == "" || fallback == primary {
		return "", ErrServiceUnavailable
	}

	reply, err := invoker.Invoke(ctx, fallback, system, history, message, image, imageMIME)
	if err == nil {
		logger.Info("fallback model served the turn", zap.String("model", fallback))
		return reply, nil
	}

	inv := Classify(err)
	logger.Error("fallback model attempt failed",
		zap.String("model", fallback),
		zap.String("kind", inv.Kind.String()),
		zap.Error(inv.Err),
	)
	if inv.Kind == KindFatal {
		return "", ErrCredentialRejected
	}
	return "", ErrServiceUnavailable
}
