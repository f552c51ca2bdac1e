package echoutil

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// LogHandlerFunc logs a line on each request and response, tagged with the request id.
func LogHandlerFunc(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		meth, path := req.Method, req.URL
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		if rid == "" {
			rid = req.Header.Get(echo.HeaderXRequestID)
		}

		begin := time.Now()
		c.Logger().Infof("< request [%s] %s %s", rid, meth, path)

		err := next(c)

		c.Logger().Infof(
			"> response [%s] status = %d (for %s %s) in %v / error = %v",
			rid, c.Response().Status, meth, path, time.Since(begin), err,
		)
		return err
	}
}

// SetLevel sets the level of e.Logger by name: debug, info, warn, error or off.
//
// Unknown names and "" fall back to warn.
func SetLevel(e *echo.Echo, loglevel string) {
	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "warn", "":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", loglevel)
	}
}

// ErrorHandler logs errors and then responds with the default handler of e.
//
// Server errors (5xx) are logged at error level with their causes, others at debug level.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		status := http.StatusInternalServerError
		var cause error = err
		if he := new(echo.HTTPError); errors.As(err, &he) {
			status = he.Code
			if he.Internal != nil {
				cause = he.Internal
			}
		}

		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		if status < http.StatusInternalServerError {
			c.Logger().Debugf("[%s] %d: %v", rid, status, cause)
		} else {
			c.Logger().Errorf("[%s] %d: %+v", rid, status, cause)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
