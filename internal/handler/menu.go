package handler

import (
	"net/http"

	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct{ svc service.MenuService }

func NewMenuHandler(svc service.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.CreateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// List returns menu items; ?available=true narrows to orderable items.
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("available") == "true")
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
