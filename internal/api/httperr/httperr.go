package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"festival-app/internal/workflow"
)

// Respond translates a workflow error kind into an HTTP response.
// Unknown errors (storage failures and the like) become a 500 without
// leaking internals.
func Respond(c *gin.Context, err error) {
	switch workflow.KindOf(err) {
	case workflow.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case workflow.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case workflow.KindPreconditionFailed:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case workflow.KindValidationFailed:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case workflow.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case workflow.KindLocked:
		c.JSON(http.StatusLocked, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
