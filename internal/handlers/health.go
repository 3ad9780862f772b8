package handlers

import (
	"net/http"

	"github.com/chelishino05/todo-devops-app/internal/dto"
	"github.com/chelishino05/todo-devops-app/internal/service"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	svc *service.TodoService
}

func NewHealthHandler(svc *service.TodoService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Health godoc
// @Summary      Service health
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.svc.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "down"})
		return
	}
	st, err := h.svc.Stats(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "up"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "up",
		"stats": dto.StatsResponse{
			Total:     st.Total,
			Completed: st.Completed,
			Pending:   st.Pending,
		},
	})
}
