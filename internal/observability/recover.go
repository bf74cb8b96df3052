package observability

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"workflow-demo/internal/handlers"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	panicError          = "Something went wrong!"
	panicMessageDefault = "Internal server error"
)

// RecoverMiddleware turns a panicking handler into a 500 JSON response.
// The panic value is only sent to the client when exposeDetail is set.
func RecoverMiddleware(exposeDetail bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// net/http uses this sentinel to abort a response silently.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				ctx := r.Context()
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}

				span := trace.SpanFromContext(ctx)
				span.RecordError(err)
				span.SetStatus(codes.Error, panicError)

				LoggerWithTrace(ctx).Error("unhandled panic",
					zap.Error(err),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", RequestIDFromContext(ctx)),
					zap.ByteString("stack", debug.Stack()),
				)

				message := panicMessageDefault
				if exposeDetail {
					message = err.Error()
				}
				handlers.WriteJSON(w, http.StatusInternalServerError, handlers.ErrorResponse{
					Error:   panicError,
					Message: message,
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
