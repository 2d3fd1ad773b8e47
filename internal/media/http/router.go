package http

import "github.com/gin-gonic/gin"

// Register attaches media routes to the given router group. Both routes
// mutate external state, so the whole group runs the guard chain.
func (h *Handler) Register(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	mut := rg.Group("", guard...)
	mut.POST("/upload", h.upload)
	mut.DELETE("/images", h.deleteImage)
}
