package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chesuper/engine/config"
	"github.com/chesuper/engine/internal/domain"
	"github.com/chesuper/engine/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	session *usecase.Session
	search  config.SearchConfig
}

// NewHandler creates a new HTTP handler
func NewHandler(session *usecase.Session, search config.SearchConfig) *Handler {
	return &Handler{session: session, search: search}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "chesuper-engine",
		"version": "1.0.0",
	})
}

// View returns the complete derived view state
func (h *Handler) View(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.View())
}

type cartItemRequest struct {
	EAN    string `json:"ean" binding:"required"`
	Nombre string `json:"nombre"`
	Marca  string `json:"marca"`
	Delta  int    `json:"delta"`
}

// SetCartQuantity applies a quantity delta to one cart line
func (h *Handler) SetCartQuantity(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ean is required"})
		return
	}
	if req.Delta == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delta must be non-zero"})
		return
	}

	line, inCart, err := h.session.SetQuantity(req.EAN, req.Nombre, req.Marca, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	if !inCart {
		c.JSON(http.StatusOK, gin.H{"removed": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"line": line})
}

// RemoveCartItem removes one cart line by EAN
func (h *Handler) RemoveCartItem(c *gin.Context) {
	h.session.RemoveItem(c.Param("ean"))
	c.Status(http.StatusNoContent)
}

// ClearCart empties the cart. The destructive action must be confirmed
// explicitly with ?confirm=true.
func (h *Handler) ClearCart(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clearing the cart requires confirm=true"})
		return
	}
	h.session.ClearCart()
	c.Status(http.StatusNoContent)
}

// ExportCart downloads the cart as a JSON list file
func (h *Handler) ExportCart(c *gin.Context) {
	data, filename, err := h.session.ExportCart()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// ImportCart validates an uploaded list and atomically replaces the cart
func (h *Handler) ImportCart(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}
	if err := h.session.ImportCart(data); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type searchRequest struct {
	Query            string `json:"q" form:"q"`
	Categoria        string `json:"categoria" form:"categoria"`
	Page             int    `json:"page" form:"page"`
	MinSupermercados int    `json:"min_supermercados" form:"min_supermercados"`
	Limit            int    `json:"limit" form:"limit"`
	SoloDisponibles  bool   `json:"solo_disponibles" form:"solo_disponibles"`
}

// productQuery fills the configured defaults into a search request
func (h *Handler) productQuery(req searchRequest) domain.ProductQuery {
	query := domain.ProductQuery{
		Page:             req.Page,
		Query:            req.Query,
		Categoria:        req.Categoria,
		MinSupermercados: req.MinSupermercados,
		Limit:            req.Limit,
	}
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = h.search.DefaultLimit
	}
	if query.MinSupermercados == 0 {
		query.MinSupermercados = h.search.MinSupermercados
		if req.SoloDisponibles {
			query.MinSupermercados = h.search.AvailabilityMinSupermercados
		}
	}
	return query
}

// QueueSearch queues a debounced catalog search; the result lands in the
// view once the debounce window passes and no newer search superseded it
func (h *Handler) QueueSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search request"})
		return
	}
	h.session.QueueSearch(h.productQuery(req))
	c.Status(http.StatusAccepted)
}

// Catalog fetches a catalog page immediately (category navigation,
// pagination, availability toggle) and returns the refreshed listing
func (h *Handler) Catalog(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catalog query"})
		return
	}
	if err := h.session.Search(c.Request.Context(), h.productQuery(req)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.session.View().Catalog)
}

// Categories lists the catalog categories
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.session.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

type compareRequest struct {
	UsePromos bool `json:"use_promos"`
}

// Compare runs the comparison and optimization requests for the current
// cart and returns the derived results
func (h *Handler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid compare request"})
		return
	}
	if err := h.session.Compare(c.Request.Context(), req.UsePromos); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.session.View().Results)
}

// SetPricingMode re-derives all totals under the new pricing mode without
// contacting the network
func (h *Handler) SetPricingMode(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pricing-mode request"})
		return
	}
	h.session.SetPricingMode(req.UsePromos)
	c.Status(http.StatusNoContent)
}

// Share returns the shareable list text for one store
func (h *Handler) Share(c *gin.Context) {
	text, err := h.session.ShareStore(c.Param("bandera"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.String(http.StatusOK, text)
}

// LeaveResults clears the cached comparison when the user navigates away
func (h *Handler) LeaveResults(c *gin.Context) {
	h.session.LeaveResults()
	c.Status(http.StatusNoContent)
}

// respondError maps domain errors to HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCartFormat):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNoComparison), errors.Is(err, domain.ErrUnknownStore):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrBackendFailure):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
