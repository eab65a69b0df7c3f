// Package httpapi exposes the minimal HTTP surface spec.md §6.6 names:
// a status probe and the multipart convert endpoint, in front of the
// sutdb builder.
package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/csp-tools/sutbuild/internal/platform/logger"
)

// NewRouter builds the gin engine with CORS and both routes wired to h.
func NewRouter(log *logger.Logger, h *ConvertHandler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: false,
	}))

	r.GET("/status", h.Status)
	r.POST("/convert", h.Convert)
	return r
}
