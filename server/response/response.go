package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apiError "github.com/techagentng/cleancity/errors"
)

// JSON writes the standard envelope. A nil err leaves "errors" empty.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	body := gin.H{
		"message": message,
		"data":    data,
		"status":  http.StatusText(status),
	}
	if err != nil {
		body["errors"] = err.Error()
		body["code"] = apiError.KindOf(err)
	}
	c.JSON(status, body)
}

// Error writes err with the status its kind maps to.
func Error(c *gin.Context, message string, err error) {
	JSON(c, message, apiError.Status(err), nil, err)
}
