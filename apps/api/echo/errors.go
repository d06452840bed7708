package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

const (
	msgValidationFailed = "Please provide all required fields"
	msgServerError      = "Server error"
	msgEndpointNotFound = "API endpoint not found"
	msgTooManyRequests  = "Too many requests from this IP, please try again after 15 minutes"
)

var (
	errMissingToken = echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
	errInvalidToken = echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
	errBadLogin     = echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		body := echo.Map{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			switch code {
			case http.StatusNotFound, http.StatusMethodNotAllowed:
				// unmatched routes
				code = http.StatusNotFound
				body["message"] = msgEndpointNotFound
			case http.StatusTooManyRequests:
				body["message"] = msgTooManyRequests
			default:
				body["message"] = origErr.Message
			}
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			body["message"] = msgValidationFailed
			body["errors"] = fldErrs
		case *core.ValidationError:
			code = http.StatusBadRequest
			body["message"] = msgValidationFailed
			if origErr.Err != nil {
				body["message"] = origErr.Error()
			}
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				body["errors"] = fldErrs
			}
		case *core.NotFoundError:
			code = http.StatusNotFound
			body["message"] = origErr.Message
		case *core.UploadRejectedError:
			code = http.StatusBadRequest
			if origErr.TooLarge {
				code = http.StatusRequestEntityTooLarge
			}
			body["message"] = origErr.Reason
		default: // any other error is a server error
			code = http.StatusInternalServerError
			body["message"] = msgServerError
			body["error"] = errors.Cause(err).Error()

			args := []interface{}{errors.Wrap(err, msgServerError)}
			if id, ok := contextIdentity(ctx); ok {
				args = append(args, id)
			}
			logger.Error(msgServerError, args...)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
