//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"dealspot/internal/domain/redemption"
	"dealspot/internal/domain/user"
	"dealspot/internal/handler/api"
	resdto "dealspot/internal/handler/dto/response"
	"dealspot/internal/usecase/commands"
	"dealspot/internal/usecase/queries"
	"dealspot/tests/common/builder"
	"dealspot/tests/common/httptest"
	commandsmock "dealspot/tests/mock/commands"
	queriesmock "dealspot/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedemptionHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockCommands    *commandsmock.MockRedemptionCommands
	mockQueries     *queriesmock.MockRedemptionQueries
	mockEligibility *queriesmock.MockEligibilityQueries
	handler         *api.RedemptionHandler

	actorID   uuid.UUID
	actorRole user.Role
}

func (s *RedemptionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRedemptionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRedemptionQueries(s.mockCtrl)
	s.mockEligibility = queriesmock.NewMockEligibilityQueries(s.mockCtrl)
	s.handler = api.NewRedemptionHandler(s.mockCommands, s.mockQueries, s.mockEligibility)

	s.actorID = uuid.New()
	s.actorRole = user.RoleConsumer

	// Stand-in for the auth middleware
	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.actorID)
		c.Set("user_role", s.actorRole)
	})

	s.router.POST("/redemptions", s.handler.Redeem)
	s.router.GET("/redemptions", s.handler.ListMyRedemptions)
	s.router.GET("/vendors/me/redemptions", s.handler.ListVendorRedemptions)
	s.router.GET("/redemptions/:id", s.handler.GetRedemption)
	s.router.POST("/redemptions/:id/void", s.handler.VoidRedemption)
	s.router.GET("/deals/:id/eligibility", s.handler.PreviewEligibility)
}

func (s *RedemptionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRedemptionHandlerSuite(t *testing.T) {
	suite.Run(t, new(RedemptionHandlerTestSuite))
}

func (s *RedemptionHandlerTestSuite) TestRedeem() {
	url := "/redemptions"

	s.Run("success: 201 Created when redemption allowed", func() {
		rb := builder.NewRedemptionBuilder().WithUserID(s.actorID)
		reqBody := rb.BuildRedeemRequestDTO()
		view := rb.BuildViewQuery()

		s.mockCommands.EXPECT().Redeem(gomock.Any(), s.actorID, reqBody).
			Return(&commands.RedeemResult{
				Decision:   redemption.Allow(),
				Redemption: view,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.RedeemOutcome
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.True(response.Allowed)
		s.Require().NotNil(response.Redemption)
		s.Equal(view.ID, response.Redemption.ID)
		s.Equal(view.DealTitle, response.Redemption.DealTitle)
	})

	s.Run("success: 200 OK with reason when redemption denied", func() {
		rb := builder.NewRedemptionBuilder().WithUserID(s.actorID)
		reqBody := rb.BuildRedeemRequestDTO()
		nextAt := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)

		s.mockCommands.EXPECT().Redeem(gomock.Any(), s.actorID, reqBody).
			Return(&commands.RedeemResult{
				Decision: redemption.DenyUntil(redemption.DenyCooldownActive, nextAt),
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.RedeemOutcome
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Allowed)
		s.Equal("cooldown_active", response.Reason)
		s.Require().NotNil(response.NextEligibleAt)
		s.True(nextAt.Equal(*response.NextEligibleAt))
		s.Nil(response.Redemption)
	})

	s.Run("error: 404 when deal does not exist", func() {
		reqBody := builder.NewRedemptionBuilder().BuildRedeemRequestDTO()

		s.mockCommands.EXPECT().Redeem(gomock.Any(), s.actorID, reqBody).
			Return(nil, commands.ErrDealNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Deal not found")
	})

	s.Run("error: 400 on malformed body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"deal_id": "not-a-uuid"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *RedemptionHandlerTestSuite) TestVoidRedemption() {
	s.actorRole = user.RoleVendor
	redemptionID := uuid.New()
	url := "/redemptions/" + redemptionID.String() + "/void"
	reqBody := map[string]any{"reason": "customer returned item"}

	s.Run("success: 204 No Content", func() {
		s.mockCommands.EXPECT().
			VoidRedemption(gomock.Any(), s.actorID, user.RoleVendor, redemptionID, "customer returned item").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 when redemption missing", func() {
		s.mockCommands.EXPECT().
			VoidRedemption(gomock.Any(), s.actorID, user.RoleVendor, redemptionID, "customer returned item").
			Return(commands.ErrRedemptionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Redemption not found")
	})

	s.Run("error: 403 when another vendor's redemption", func() {
		s.mockCommands.EXPECT().
			VoidRedemption(gomock.Any(), s.actorID, user.RoleVendor, redemptionID, "customer returned item").
			Return(commands.ErrNotRedemptionOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "another vendor")
	})

	s.Run("error: 409 when already voided", func() {
		s.mockCommands.EXPECT().
			VoidRedemption(gomock.Any(), s.actorID, user.RoleVendor, redemptionID, "customer returned item").
			Return(commands.ErrVoidConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already voided")
	})

	s.Run("error: 400 when reason missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "reason")
	})

	s.Run("error: 400 on malformed redemption id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/redemptions/not-a-uuid/void", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid redemption ID")
	})
}

func (s *RedemptionHandlerTestSuite) TestGetRedemption() {
	rb := builder.NewRedemptionBuilder().WithUserID(s.actorID)

	s.Run("success: 200 OK for own redemption", func() {
		view := rb.BuildViewQuery()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, user.RoleConsumer, view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/redemptions/"+view.ID.String(), nil, "")

		var response resdto.RedemptionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
		s.Equal(view.Status, response.Status)
	})

	s.Run("error: 403 for someone else's redemption", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, user.RoleConsumer, id).
			Return(nil, queries.ErrRedemptionForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/redemptions/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "another account")
	})

	s.Run("error: 404 when not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, user.RoleConsumer, id).
			Return(nil, queries.ErrRedemptionViewNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/redemptions/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Redemption not found")
	})
}

func (s *RedemptionHandlerTestSuite) TestListMyRedemptions() {
	view := builder.NewRedemptionBuilder().WithUserID(s.actorID).BuildViewQuery()

	type listEnvelope struct {
		Redemptions []*resdto.RedemptionResponse `json:"redemptions"`
		NextCursor  *string                      `json:"next_cursor"`
	}

	s.Run("success: first page without cursor", func() {
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.actorID, (*queries.Cursor)(nil), 20).
			Return([]*queries.RedemptionView{view}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/redemptions?limit=20", nil, "")

		var response listEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Redemptions, 1)
		s.Equal(view.ID, response.Redemptions[0].ID)
		s.Nil(response.NextCursor)
	})

	s.Run("success: forwards the after cursor and echoes the next one", func() {
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.actorID, &queries.Cursor{After: "cursor123"}, 20).
			Return([]*queries.RedemptionView{view}, &queries.Cursor{After: "cursor456"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/redemptions?limit=20&after=cursor123", nil, "")

		var response listEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.NextCursor)
		s.Equal("cursor456", *response.NextCursor)
	})

	s.Run("error: 400 on malformed cursor", func() {
		s.mockQueries.EXPECT().
			ListByUser(gomock.Any(), s.actorID, &queries.Cursor{After: "garbage"}, 20).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/redemptions?limit=20&after=garbage", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})

	s.Run("vendor listing uses the authenticated vendor", func() {
		s.mockQueries.EXPECT().
			ListByVendor(gomock.Any(), s.actorID, (*queries.Cursor)(nil), 0).
			Return([]*queries.RedemptionView{view}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vendors/me/redemptions", nil, "")

		var response listEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Redemptions, 1)
	})
}

func (s *RedemptionHandlerTestSuite) TestPreviewEligibility() {
	dealID := uuid.New()
	url := "/deals/" + dealID.String() + "/eligibility"

	s.Run("success: allowed preview", func() {
		s.mockEligibility.EXPECT().Preview(gomock.Any(), s.actorID, dealID).
			Return(&queries.EligibilityView{DealID: dealID, Allowed: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.EligibilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Allowed)
		s.Equal(dealID, response.DealID)
		s.Empty(response.Reason)
	})

	s.Run("success: denied preview carries the reason", func() {
		s.mockEligibility.EXPECT().Preview(gomock.Any(), s.actorID, dealID).
			Return(&queries.EligibilityView{
				DealID:  dealID,
				Allowed: false,
				Reason:  "membership_required",
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.EligibilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Allowed)
		s.Equal("membership_required", response.Reason)
	})

	s.Run("error: 404 for unknown deal", func() {
		s.mockEligibility.EXPECT().Preview(gomock.Any(), s.actorID, dealID).
			Return(nil, queries.ErrDealViewNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Deal not found")
	})
}
