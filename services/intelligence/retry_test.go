package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"repairdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

// stubInvoker scripts the outcome of each call and records which model
// served it.
type stubInvoker struct {
	calls   int
	models  []string
	outcome func(call int, modelName string) (string, error)
}

func (s *stubInvoker) Invoke(ctx context.Context, modelName, system string, history []models.ChatTurn, message string, image []byte, imageMIME string) (string, error) {
	s.calls++
	s.models = append(s.models, modelName)
	return s.outcome(s.calls, modelName)
}

func zeroDelayPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delays: []time.Duration{0}}
}

func TestFailoverExhaustsPrimaryThenFallback(t *testing.T) {
	transient := &InvocationError{Kind: KindTransient, Err: errors.New("overloaded")}
	stub := &stubInvoker{outcome: func(int, string) (string, error) { return "", transient }}

	_, err := invokeWithFailover(context.Background(), stub, "primary", "fallback", "sys",
		nil, "hi", nil, "", zeroDelayPolicy())

	assert.ErrorIs(t, err, ErrServiceUnavailable)
	require.Equal(t, 4, stub.calls)
	assert.Equal(t, []string{"primary", "primary", "primary", "fallback"}, stub.models)
}

func TestFailoverFatalShortCircuits(t *testing.T) {
	fatal := &InvocationError{Kind: KindFatal, Err: errors.New("unauthorized")}
	stub := &stubInvoker{outcome: func(int, string) (string, error) { return "", fatal }}

	_, err := invokeWithFailover(context.Background(), stub, "primary", "fallback", "sys",
		nil, "hi", nil, "", zeroDelayPolicy())

	assert.ErrorIs(t, err, ErrCredentialRejected)
	assert.Equal(t, 1, stub.calls)
}

func TestFailoverRecoversMidSchedule(t *testing.T) {
	transient := &InvocationError{Kind: KindTransient, Err: errors.New("busy")}
	stub := &stubInvoker{outcome: func(call int, _ string) (string, error) {
		if call == 1 {
			return "", transient
		}
		return "hello sir", nil
	}}

	reply, err := invokeWithFailover(context.Background(), stub, "primary", "fallback", "sys",
		nil, "hi", nil, "", zeroDelayPolicy())

	require.NoError(t, err)
	assert.Equal(t, "hello sir", reply)
	assert.Equal(t, 2, stub.calls)
}

func TestFailoverUnknownErrorsSpendSingleRetry(t *testing.T) {
	stub := &stubInvoker{outcome: func(int, string) (string, error) {
		return "", errors.New("something odd")
	}}

	_, err := invokeWithFailover(context.Background(), stub, "primary", "fallback", "sys",
		nil, "hi", nil, "", zeroDelayPolicy())

	assert.ErrorIs(t, err, ErrServiceUnavailable)
	// One unknown retry on the primary, then straight to the fallback.
	require.Equal(t, 3, stub.calls)
	assert.Equal(t, "fallback", stub.models[2])
}

func TestFallbackServesTheTurn(t *testing.T) {
	transient := &InvocationError{Kind: KindTransient, Err: errors.New("overloaded")}
	stub := &stubInvoker{outcome: func(_ int, modelName string) (string, error) {
		if modelName == "fallback" {
			return "served by fallback", nil
		}
		return "", transient
	}}

	reply, err := invokeWithFailover(context.Background(), stub, "primary", "fallback", "sys",
		nil, "hi", nil, "", zeroDelayPolicy())

	require.NoError(t, err)
	assert.Equal(t, "served by fallback", reply)
	assert.Equal(t, 4, stub.calls)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"quota", &googleapi.Error{Code: 429}, KindTransient},
		{"server", &googleapi.Error{Code: 500}, KindTransient},
		{"overloaded", &googleapi.Error{Code: 503}, KindTransient},
		{"unauthorized", &googleapi.Error{Code: 401}, KindFatal},
		{"forbidden", &googleapi.Error{Code: 403}, KindFatal},
		{"deadline", context.DeadlineExceeded, KindTransient},
		{"mystery", errors.New("boom"), KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err).Kind)
		})
	}
}

func TestParseBackoffSchedule(t *testing.T) {
	delays := ParseBackoffSchedule("1s, 2s,5s")
	require.Len(t, delays, 3)
	assert.Equal(t, time.Second, delays[0])
	assert.Equal(t, 5*time.Second, delays[2])

	// Garbage falls back to the default schedule.
	assert.Equal(t, DefaultRetryPolicy().Delays, ParseBackoffSchedule("nonsense"))
}
