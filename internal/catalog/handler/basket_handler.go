package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rackwise/rackwise/internal/catalog/repository"
	"github.com/rackwise/rackwise/internal/catalog/service"
	"github.com/rackwise/rackwise/internal/ingest"
)

type BasketHandler struct {
	svc *service.BasketService
}

func NewBasketHandler(svc *service.BasketService) *BasketHandler {
	return &BasketHandler{svc: svc}
}

// Import POST /baskets/import
// Multipart form: file, vendor (optional), quarter, year, currency,
// target_currency (optional), exchange_rate (optional).
func (h *BasketHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "missing spreadsheet file")
		return
	}
	defer file.Close()

	year, _ := strconv.Atoi(c.PostForm("year"))
	rate, _ := strconv.ParseFloat(c.PostForm("exchange_rate"), 64)
	input := service.ImportInput{
		VendorHint:     c.PostForm("vendor"),
		FiscalQuarter:  c.PostForm("quarter"),
		FiscalYear:     year,
		SourceCurrency: c.PostForm("currency"),
		TargetCurrency: c.PostForm("target_currency"),
		ExchangeRate:   rate,
		Filename:       header.Filename,
	}

	basket, report, err := h.svc.Import(c.Request.Context(), input, file, c.GetString("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrFileUnreadable):
			BadRequest(c, "file is not a readable spreadsheet: "+err.Error())
		case errors.Is(err, ingest.ErrHeaderNotFound):
			BadRequest(c, "no recognizable header row for this vendor layout: "+err.Error())
		case errors.Is(err, ingest.ErrUnknownVendor):
			BadRequest(c, "vendor could not be determined; pass an explicit vendor field")
		default:
			BadRequest(c, err.Error())
		}
		return
	}

	Created(c, gin.H{"basket": basket, "report": report})
}

// List GET /baskets?vendor=&quarter=&year=
func (h *BasketHandler) List(c *gin.Context) {
	baskets, err := h.svc.List(c.Request.Context(), c.Query("vendor"), c.Query("quarter"), QueryInt(c, "year"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": baskets, "total": len(baskets)})
}

// Get GET /baskets/:id
func (h *BasketHandler) Get(c *gin.Context) {
	basket, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "basket not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, basket)
}

// Export GET /baskets/:id/export
func (h *BasketHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "basket not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}

// Delete DELETE /baskets/:id
func (h *BasketHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "basket not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// CapacityHandler serves the capacity dashboard summary.
type CapacityHandler struct {
	svc *service.CapacityService
}

func NewCapacityHandler(svc *service.CapacityService) *CapacityHandler {
	return &CapacityHandler{svc: svc}
}

// Summary GET /capacity/summary
func (h *CapacityHandler) Summary(c *gin.Context) {
	stats, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"vendors": stats})
}
