package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSONErrorHandler returns the central echo error handler. Every error that
// escapes a handler (including router 404s and method mismatches) comes back
// as the same ErrorResponse shape the handlers emit themselves, with details
// attached in dev mode.
//
// A committed response means the chat stream already started; headers are
// gone, so the error can only be logged.
func JSONErrorHandler(h *Handlers) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			h.Logger.WithError(err).WithField("path", c.Path()).
				Warn("error after stream started")
			return
		}

		code := http.StatusInternalServerError
		msg := "internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = http.StatusText(he.Code)
		}

		resp := ErrorResponse{Error: msg, Code: code}
		if h.DevMode {
			resp.Details = err.Error()
		}
		if jerr := c.JSON(code, resp); jerr != nil {
			h.Logger.WithError(jerr).Debug("failed to write error response")
		}
	}
}
