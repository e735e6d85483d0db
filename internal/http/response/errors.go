package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/suplementor-backend/internal/platform/apierr"
)

// RespondAPIError renders a service error. Anything that is not an
// *apierr.Error becomes a 500 whose message is not leaked to the client.
func RespondAPIError(c *gin.Context, err error) {
	ae := apierr.As(err, "internal_error")
	status := ae.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	_ = c.Error(err)
	msg := ae.Error()
	if status >= http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    ae.Code,
			Details: ae.Details,
		},
	})
}
