package handler

import (
	"net/http"

	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type ContractHandler struct{ svc service.ContractService }

func NewContractHandler(svc service.ContractService) *ContractHandler {
	return &ContractHandler{svc: svc}
}

func (h *ContractHandler) Create(c *gin.Context) {
	var req dto.CreateContractRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contract, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *ContractHandler) List(c *gin.Context) {
	contracts, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	contract, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) Terminate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Terminate(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ContractHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// DownloadPDF renders the contract as a PDF and streams it back.
func (h *ContractHandler) DownloadPDF(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	path, err := h.svc.GeneratePDF(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.FileAttachment(path, "contract-"+id.String()+".pdf")
}
