package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// statusOf maps error kinds onto HTTP status codes. Booking persistence
// failures surface as 502: the request was well-formed but the write behind
// it did not happen, and the client must not be told otherwise.
func statusOf(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBookingFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type response struct {
	Error   Kind   `json:"error"`
	Message string `json:"message"`
}

// HTTPErrorHandler renders every error as {"error": kind, "message": text}.
// *Error values keep their kind; echo.HTTPError (bad route params, bind
// failures) passes its status through; anything else becomes a 500 with the
// detail kept out of the response body.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := response{Error: KindInternal, Message: "internal server error"}

		var ae *Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			status = statusOf(ae.Kind)
			body = response{Error: ae.Kind, Message: ae.Message}
		case errors.As(err, &he):
			status = he.Code
			body.Message = messageOf(he)
			switch status {
			case http.StatusBadRequest:
				body.Error = KindValidation
			case http.StatusUnauthorized:
				body.Error = KindAuthentication
			case http.StatusNotFound:
				body.Error = KindNotFound
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func messageOf(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return http.StatusText(he.Code)
}
