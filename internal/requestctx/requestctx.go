// Package requestctx carries the per-request correlation ID through context.
package requestctx

import "context"

type ctxKey int

const keyRequestID ctxKey = iota

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

func GetRequestID(ctx context.Context) string {
	value, _ := ctx.Value(keyRequestID).(string)
	return value
}
