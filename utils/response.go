package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// All JSON leaves the service through these helpers, so every response
// carries the same {status, success, data|error} envelope.

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status":  status,
		"success": status >= 200 && status < 300,
		"data":    data,
	})
}

// Success writes a 200 envelope around data.
func Success(c *gin.Context, data any) {
	respond(c, http.StatusOK, data)
}

// Created writes a 201 envelope around data.
func Created(c *gin.Context, data any) {
	respond(c, http.StatusCreated, data)
}

// Error writes a failure envelope with a human-readable message.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"success": false,
		"error":   gin.H{"message": message},
	})
}
