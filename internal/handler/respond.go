package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maithilikosh/api/internal/apperr"
)

// respondError maps a service error onto its HTTP status. Errors outside the
// apperr taxonomy are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
