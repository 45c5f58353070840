package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the response envelope: {success, message, code?, ...payload}.
// Payload keys are written at the top level next to success and message.
type Body gin.H

// Success sends a successful JSON response. payload may be nil and an empty
// message falls back to the status text.
func Success(c *gin.Context, statusCode int, message string, payload gin.H) {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	body := Body{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Fail sends an error response with an error code and message. An empty
// message falls back to the code's default.
func Fail(c *gin.Context, statusCode int, code ErrCode, message string) {
	c.JSON(statusCode, failure(code, message))
}

// FailWithError sends an error response that also carries err's text in the
// "error" field. Clients of the original API read it on 500s.
func FailWithError(c *gin.Context, statusCode int, message string, err error) {
	body := failure(ErrInternal, message)
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(statusCode, body)
}

// FailWithFields sends a 400 with field-level validation details.
func FailWithFields(c *gin.Context, code ErrCode, message string, fields map[string]string) {
	body := failure(code, message)
	body["fields"] = fields
	c.JSON(http.StatusBadRequest, body)
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, failure(code, ""))
}

func failure(code ErrCode, message string) Body {
	if message == "" {
		message = GetMessage(code)
	}
	return Body{
		"success": false,
		"message": message,
		"code":    code,
	}
}
