package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "dealspot/internal/handler/dto/request"
	resdto "dealspot/internal/handler/dto/response"
	"dealspot/internal/handler/middleware"
	"dealspot/internal/usecase/commands"
	"dealspot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RedemptionHandler struct {
	redemptionCommands commands.RedemptionCommands
	redemptionQueries  queries.RedemptionQueries
	eligibilityQueries queries.EligibilityQueries
}

func NewRedemptionHandler(
	redemptionCommands commands.RedemptionCommands,
	redemptionQueries queries.RedemptionQueries,
	eligibilityQueries queries.EligibilityQueries,
) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionCommands: redemptionCommands,
		redemptionQueries:  redemptionQueries,
		eligibilityQueries: eligibilityQueries,
	}
}

// @Summary Redeem a deal
// @Description Attempt to redeem a deal. A denied attempt returns 200 with allowed=false.
// @Tags redemptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RedeemRequest true "Redemption request"
// @Success 201 {object} resdto.RedeemOutcome
// @Success 200 {object} resdto.RedeemOutcome
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /redemptions [post]
func (h *RedemptionHandler) Redeem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.redemptionCommands.Redeem(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDealNotFound):
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

	outcome := resdto.RedeemOutcome{
		Allowed:        result.Decision.Allowed,
		Reason:         result.Decision.Reason.String(),
		NextEligibleAt: result.Decision.NextEligibleAt,
	}
	if result.Redemption != nil {
		outcome.Redemption = resdto.FromRedemptionView(result.Redemption)
	}

	status := http.StatusOK
	if result.Decision.Allowed {
		status = http.StatusCreated
	}
	c.JSON(status, outcome)
}

// @Summary Void a redemption
// @Description Reverse a redemption; frees the quota it consumed
// @Tags redemptions
// @Accept json
// @Security BearerAuth
// @Param id path string true "Redemption ID"
// @Param request body reqdto.VoidRedemptionRequest true "Void request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /redemptions/{id}/void [post]
func (h *RedemptionHandler) VoidRedemption(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	redemptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid redemption ID format",
		})
		return
	}

	var req reqdto.VoidRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Void reason is required",
		})
		return
	}

	err = h.redemptionCommands.VoidRedemption(c.Request.Context(), actorID, role, redemptionID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRedemptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Redemption not found",
			})
		case errors.Is(err, commands.ErrNotRedemptionOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Redemption belongs to another vendor",
			})
		case errors.Is(err, commands.ErrVoidConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Redemption is already voided",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Void reason is required",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get redemption
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Redemption ID"
// @Success 200 {object} resdto.RedemptionResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /redemptions/{id} [get]
func (h *RedemptionHandler) GetRedemption(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	redemptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid redemption ID format",
		})
		return
	}

	view, err := h.redemptionQueries.GetByID(c.Request.Context(), actorID, role, redemptionID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRedemptionViewNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Redemption not found",
			})
		case errors.Is(err, queries.ErrRedemptionForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Redemption belongs to another account",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRedemptionView(view))
}

// @Summary List own redemptions
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /redemptions [get]
func (h *RedemptionHandler) ListMyRedemptions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	views, next, err := h.redemptionQueries.ListByUser(c.Request.Context(), userID, afterCursor(c), limit)
	if err != nil {
		h.writeListError(c, err)
		return
	}

	c.JSON(http.StatusOK, redemptionListBody(views, next))
}

// @Summary List vendor redemptions
// @Description List redemptions against the authenticated vendor's deals
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /vendors/me/redemptions [get]
func (h *RedemptionHandler) ListVendorRedemptions(c *gin.Context) {
	vendorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	views, next, err := h.redemptionQueries.ListByVendor(c.Request.Context(), vendorID, afterCursor(c), limit)
	if err != nil {
		h.writeListError(c, err)
		return
	}

	c.JSON(http.StatusOK, redemptionListBody(views, next))
}

func afterCursor(c *gin.Context) *queries.Cursor {
	if after := c.Query("after"); after != "" {
		return &queries.Cursor{After: after}
	}
	return nil
}

func (h *RedemptionHandler) writeListError(c *gin.Context, err error) {
	if errors.Is(err, queries.ErrInvalidCursor) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cursor",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}

func redemptionListBody(views []*queries.RedemptionView, next *queries.Cursor) gin.H {
	list := make([]*resdto.RedemptionResponse, len(views))
	for i, view := range views {
		list[i] = resdto.FromRedemptionView(view)
	}
	body := gin.H{"redemptions": list}
	if next != nil {
		body["next_cursor"] = next.After
	}
	return body
}

// @Summary Preview eligibility
// @Description Dry-run the redemption decision without writing anything
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID"
// @Success 200 {object} resdto.EligibilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /deals/{id}/eligibility [get]
func (h *RedemptionHandler) PreviewEligibility(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid deal ID format",
		})
		return
	}

	view, err := h.eligibilityQueries.Preview(c.Request.Context(), userID, dealID)
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

	c.JSON(http.StatusOK, resdto.FromEligibilityView(view))
}
