package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /
// Service metadata plus the root of the recommendations resource.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Recommendations REST API Service",
		"version": "1.0",
		"paths":   baseURL(c) + "/recommendations",
	})
}
