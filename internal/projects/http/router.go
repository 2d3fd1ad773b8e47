package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. Mutating
// routes additionally run the guard chain (admin gate, rate limit).
func (h *Handler) Register(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)

	mut := rg.Group("", guard...)
	mut.POST("", h.create)
	mut.PUT("/:id", h.update)
	mut.DELETE("/:id", h.delete)
}
