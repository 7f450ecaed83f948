package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RequestLogger logs one structured line per request. Requests that failed
// are rendered through the error handler first so the logged status is final.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			var evt *zerolog.Event
			switch {
			case res.Status >= 500:
				evt = log.Error()
			case res.Status >= 400:
				evt = log.Warn()
			default:
				evt = log.Info()
			}

			evt.
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", c.Path()).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Msg("request")

			return nil
		}
	}
}
