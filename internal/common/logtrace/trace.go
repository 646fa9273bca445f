package logtrace

import "context"

type requestIdKeyType string

const requestIdKey requestIdKeyType = "requestId"

func WithRequestId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIdKey, id)
}

func RequestIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	r, ok := ctx.Value(requestIdKey).(string)
	if !ok {
		return ""
	}
	return r
}

// TODO - wire OpenTelemetry once the deployment story settles
func IsTraceEnabled() bool {
	return false
}
