package api

import (
	"github.com/gin-gonic/gin"

	"github.com/persuasion-engine/internal/engine"
)

// RespondError writes {"error": msg}
func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

// RespondValidationError writes the message together with every invalid field
func RespondValidationError(c *gin.Context, err *engine.ValidationError, code int) {
	c.JSON(code, gin.H{
		"error":  err.Error(),
		"fields": err.Fields,
	})
}
