package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// caller is filled in by RequireAuth so that an outer LoggingInterceptor can
// report the device after the call returns.
type caller struct {
	deviceID string
}

const callerKey contextKey = "caller"

// setCaller records deviceID on the caller slot of ctx, if there is one.
func setCaller(ctx context.Context, deviceID string) {
	if c, ok := ctx.Value(callerKey).(*caller); ok {
		c.deviceID = deviceID
	}
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, device ID, duration, and any error codes/messages.
// Expected client errors (bad input, missing records, rejected tokens) are
// logged at warn level. Install it before RequireAuth so rejected calls are
// logged too.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			c := &caller{deviceID: GetDeviceID(ctx)}
			ctx = context.WithValue(ctx, callerKey, c)

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			deviceID := c.deviceID // empty if auth is off or rejected the call
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal && connectErr.Code() != connect.CodeUnknown {
					slog.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"device_id", deviceID,
						"duration_ms", duration,
					)
				} else {
					slog.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"device_id", deviceID,
						"duration_ms", duration,
					)
				}
			} else {
				slog.Info("RPC ok",
					"procedure", procedure,
					"device_id", deviceID,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
