package handler

import (
	"net/http"

	"github.com/dsaslb/restaurant-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type PayrollHandler struct{ svc service.PayrollService }

func NewPayrollHandler(svc service.PayrollService) *PayrollHandler {
	return &PayrollHandler{svc: svc}
}

// Summary returns the computed payroll for ?month=YYYY-MM.
func (h *PayrollHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context(), c.Query("month"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Export streams the monthly payroll as an XLSX workbook.
func (h *PayrollHandler) Export(c *gin.Context) {
	month := c.Query("month")
	data, err := h.svc.ExportXLSX(c.Request.Context(), month)
	if err != nil {
		respondErr(c, err)
		return
	}
	filename := "payroll-" + month + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
