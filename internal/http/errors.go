package http

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"opdash/internal/errors"
	"opdash/internal/logging"
	"opdash/internal/validation"
)

// fieldErrorBody is one entry of the "fields" list in an error response
type fieldErrorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// statusFor maps an application error type to an HTTP status code
func statusFor(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// toHTTPError converts an error returned by the dashboard into an echo error
// carrying a JSON body with the user-facing message.
func toHTTPError(err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && errors.ShouldLogError(err) {
		logging.Logger().Error("request failed", "error", err)
	}

	body := echo.Map{
		"error": errors.GetUserMessage(err),
		"code":  errors.GetErrorCode(err),
	}

	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		fields := make([]fieldErrorBody, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			fields = append(fields, fieldErrorBody{Field: fe.Field, Message: fe.Message})
		}
		body["fields"] = fields
	}

	return echo.NewHTTPError(status, body)
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
		"error": message,
		"code":  "INVALID_INPUT",
	})
}
