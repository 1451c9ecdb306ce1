package handler

import (
	"net/http"

	"github.com/dsaslb/restaurant-management-system/internal/middleware"
	"github.com/dsaslb/restaurant-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{ svc service.NotificationService }

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	ns, err := h.svc.List(c.Request.Context(), claims.Username)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ns)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.MarkRead(c.Request.Context(), claims.Username, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
