package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"dealspot/internal/domain/user"
	reqdto "dealspot/internal/handler/dto/request"
	resdto "dealspot/internal/handler/dto/response"
	"dealspot/internal/handler/middleware"
	"dealspot/internal/usecase/commands"
	"dealspot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DealHandler struct {
	dealCommands commands.DealCommands
	dealQueries  queries.DealQueries
}

func NewDealHandler(dealCommands commands.DealCommands, dealQueries queries.DealQueries) *DealHandler {
	return &DealHandler{
		dealCommands: dealCommands,
		dealQueries:  dealQueries,
	}
}

// @Summary Create deal
// @Description Create a new deal in draft status
// @Tags deals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateDealRequest true "Deal request"
// @Success 201 {object} resdto.DealResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /deals [post]
func (h *DealHandler) CreateDeal(c *gin.Context) {
	vendorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.dealCommands.CreateDeal(c.Request.Context(), vendorID, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Deal validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromDealView(view))
}

// @Summary Update deal
// @Description Apply a partial update to a deal
// @Tags deals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Param request body reqdto.UpdateDealRequest true "Deal patch"
// @Success 200 {object} resdto.DealResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /deals/{id} [patch]
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	actorID, role, dealID, ok := h.actorAndDealID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.dealCommands.UpdateDeal(c.Request.Context(), actorID, role, dealID, req)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDealView(view))
}

// @Summary Publish deal
// @Tags deals
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /deals/{id}/publish [post]
func (h *DealHandler) PublishDeal(c *gin.Context) {
	h.transition(c, h.dealCommands.PublishDeal)
}

// @Summary Pause deal
// @Tags deals
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /deals/{id}/pause [post]
func (h *DealHandler) PauseDeal(c *gin.Context) {
	h.transition(c, h.dealCommands.PauseDeal)
}

// @Summary Expire deal
// @Tags deals
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /deals/{id}/expire [post]
func (h *DealHandler) ExpireDeal(c *gin.Context) {
	h.transition(c, h.dealCommands.ExpireDeal)
}

// @Summary Delete deal
// @Description Soft-delete a deal; its redemption history is preserved
// @Tags deals
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /deals/{id} [delete]
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	h.transition(c, h.dealCommands.DeleteDeal)
}

// @Summary Get deal
// @Tags deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} resdto.DealResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /deals/{id} [get]
func (h *DealHandler) GetDeal(c *gin.Context) {
	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid deal ID format",
		})
		return
	}

	view, err := h.dealQueries.GetByID(c.Request.Context(), dealID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrDealViewNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Deal not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDealView(view))
}

// @Summary Browse published deals
// @Tags deals
// @Produce json
// @Param city query string false "Filter by city"
// @Param category query string false "Filter by category"
// @Param tier query string false "Filter by tier"
// @Param limit query int false "Page size"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /deals [get]
func (h *DealHandler) ListDeals(c *gin.Context) {
	filter := queries.DealFilter{
		City:     queryParam(c, "city"),
		Category: queryParam(c, "category"),
		Tier:     queryParam(c, "tier"),
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.dealQueries.ListPublished(c.Request.Context(), filter, cursor, limit)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid cursor",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	list := make([]*resdto.DealListResponse, len(items))
	for i, item := range items {
		list[i] = resdto.FromDealListItem(item)
	}
	response := gin.H{"deals": list}
	if next != nil {
		response["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, response)
}

// @Summary List own deals
// @Description List the authenticated vendor's deals, drafts included
// @Tags deals
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.DealListResponse
// @Router /vendors/me/deals [get]
func (h *DealHandler) ListMyDeals(c *gin.Context) {
	vendorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, err := h.dealQueries.ListByVendor(c.Request.Context(), vendorID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.DealListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromDealListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

func (h *DealHandler) transition(c *gin.Context, cmd func(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID) error) {
	actorID, role, dealID, ok := h.actorAndDealID(c)
	if !ok {
		return
	}

	if err := cmd(c.Request.Context(), actorID, role, dealID); err != nil {
		h.writeCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DealHandler) actorAndDealID(c *gin.Context) (uuid.UUID, user.Role, uuid.UUID, bool) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, "", uuid.Nil, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, "", uuid.Nil, false
	}
	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid deal ID format",
		})
		return uuid.Nil, "", uuid.Nil, false
	}
	return actorID, role, dealID, true
}

func (h *DealHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrDealNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Deal not found",
		})
	case errors.Is(err, commands.ErrNotDealOwner):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Deal belongs to another vendor",
		})
	case errors.Is(err, commands.ErrDealStateConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Deal state does not allow this transition",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Deal validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func queryParam(c *gin.Context, name string) *string {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	return &value
}
