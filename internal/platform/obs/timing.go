package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const requestIDKey ctxKey = "req_id"

// WithRequestID tags ctx so Time and Logf can correlate log lines per request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Logf prefixes format with the request id carried by ctx.
func Logf(ctx context.Context, format string, args ...any) {
	log.Printf("req_id=%s "+format, append([]any{RequestID(ctx)}, args...)...)
}

// Time logs how long op took once the returned func runs, along with the
// error it ended with, if any.
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		ms := time.Since(start).Milliseconds()
		if errp != nil && *errp != nil {
			Logf(ctx, "op=%s dur=%dms err=%v", op, ms, *errp)
			return
		}
		Logf(ctx, "op=%s dur=%dms", op, ms)
	}
}
