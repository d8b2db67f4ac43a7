package metrics

import (
	"context"
	"net/http"
	"time"
)

type CallRecorder interface {
	RecordCall(d time.Duration, statusCode int)
}

// Timed wraps op so every invocation is recorded as a call: 200 when op
// succeeds, 500 when it fails. The result and error pass through untouched.
func Timed[A, R any](recorder CallRecorder, op func(context.Context, A) (R, error)) func(context.Context, A) (R, error) {
	return func(ctx context.Context, arg A) (R, error) {
		start := time.Now()
		res, err := op(ctx, arg)

		status := http.StatusOK
		if err != nil {
			status = http.StatusInternalServerError
		}
		recorder.RecordCall(time.Since(start), status)

		return res, err
	}
}
