//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"dealspot/internal/domain/user"
	"dealspot/internal/handler/api"
	resdto "dealspot/internal/handler/dto/response"
	"dealspot/internal/usecase/commands"
	"dealspot/internal/usecase/queries"
	"dealspot/tests/common/builder"
	"dealspot/tests/common/httptest"
	"dealspot/tests/common/testutil"
	commandsmock "dealspot/tests/mock/commands"
	queriesmock "dealspot/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DealHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockDealCommands
	mockQueries  *queriesmock.MockDealQueries
	handler      *api.DealHandler

	vendorID uuid.UUID
}

func (s *DealHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockDealCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDealQueries(s.mockCtrl)
	s.handler = api.NewDealHandler(s.mockCommands, s.mockQueries)

	s.vendorID = uuid.New()

	// Stand-in for the auth middleware
	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.vendorID)
		c.Set("user_role", user.RoleVendor)
	})

	s.router.POST("/deals", s.handler.CreateDeal)
	s.router.GET("/deals", s.handler.ListDeals)
	s.router.GET("/deals/:id", s.handler.GetDeal)
	s.router.PATCH("/deals/:id", s.handler.UpdateDeal)
	s.router.DELETE("/deals/:id", s.handler.DeleteDeal)
	s.router.POST("/deals/:id/publish", s.handler.PublishDeal)
	s.router.POST("/deals/:id/pause", s.handler.PauseDeal)
	s.router.POST("/deals/:id/expire", s.handler.ExpireDeal)
	s.router.GET("/vendors/me/deals", s.handler.ListMyDeals)
}

func (s *DealHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDealHandlerSuite(t *testing.T) {
	suite.Run(t, new(DealHandlerTestSuite))
}

func (s *DealHandlerTestSuite) TestCreateDeal() {
	url := "/deals"
	db := builder.NewDealBuilder().WithVendorID(s.vendorID)
	reqBody := db.BuildCreateRequestDTO()

	s.Run("success: 201 Created", func() {
		view := db.BuildViewQuery()
		s.mockCommands.EXPECT().CreateDeal(gomock.Any(), s.vendorID, reqBody).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.DealResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal(view.Title, response.Title)
		s.Equal("published", response.Status)
	})

	s.Run("error: 422 on domain validation failure", func() {
		s.mockCommands.EXPECT().CreateDeal(gomock.Any(), s.vendorID, reqBody).
			Return(nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "validation failed")
	})

	s.Run("error: 400 when required fields missing", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing title", mutate: testutil.Field("title", nil)},
			{name: "missing category", mutate: testutil.Field("category", nil)},
			{name: "missing city", mutate: testutil.Field("city", nil)},
			{name: "missing discount_kind", mutate: testutil.Field("discount_kind", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})
}

func (s *DealHandlerTestSuite) TestUpdateDeal() {
	db := builder.NewDealBuilder().WithVendorID(s.vendorID)
	url := "/deals/" + db.ID.String()
	reqBody := db.BuildUpdateRequestDTO()

	s.Run("success: 200 OK", func() {
		view := db.BuildViewQuery()
		s.mockCommands.EXPECT().UpdateDeal(gomock.Any(), s.vendorID, user.RoleVendor, db.ID, reqBody).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "")

		var response resdto.DealResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Title, response.Title)
	})

	s.Run("error: 403 for another vendor's deal", func() {
		s.mockCommands.EXPECT().UpdateDeal(gomock.Any(), s.vendorID, user.RoleVendor, db.ID, reqBody).
			Return(nil, commands.ErrNotDealOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "another vendor")
	})
}

func (s *DealHandlerTestSuite) TestLifecycleTransitions() {
	dealID := uuid.New()

	s.Run("publish returns 204", func() {
		s.mockCommands.EXPECT().PublishDeal(gomock.Any(), s.vendorID, user.RoleVendor, dealID).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/deals/"+dealID.String()+"/publish", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("pause returns 204", func() {
		s.mockCommands.EXPECT().PauseDeal(gomock.Any(), s.vendorID, user.RoleVendor, dealID).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/deals/"+dealID.String()+"/pause", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("expire returns 204", func() {
		s.mockCommands.EXPECT().ExpireDeal(gomock.Any(), s.vendorID, user.RoleVendor, dealID).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/deals/"+dealID.String()+"/expire", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("delete returns 204", func() {
		s.mockCommands.EXPECT().DeleteDeal(gomock.Any(), s.vendorID, user.RoleVendor, dealID).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/deals/"+dealID.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("state conflict returns 409", func() {
		s.mockCommands.EXPECT().PublishDeal(gomock.Any(), s.vendorID, user.RoleVendor, dealID).
			Return(commands.ErrDealStateConflict).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/deals/"+dealID.String()+"/publish", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "state")
	})

	s.Run("unknown deal returns 404", func() {
		s.mockCommands.EXPECT().PublishDeal(gomock.Any(), s.vendorID, user.RoleVendor, dealID).
			Return(commands.ErrDealNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/deals/"+dealID.String()+"/publish", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Deal not found")
	})

	s.Run("malformed deal id returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/deals/not-a-uuid/publish", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid deal ID")
	})
}

func (s *DealHandlerTestSuite) TestGetDeal() {
	db := builder.NewDealBuilder()

	s.Run("success: 200 OK", func() {
		view := db.BuildViewQuery()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), db.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deals/"+db.ID.String(), nil, "")

		var response resdto.DealResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("error: 404 when missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, queries.ErrDealViewNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deals/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Deal not found")
	})
}

func (s *DealHandlerTestSuite) TestListDeals() {
	item := builder.NewDealBuilder().BuildListItem()

	type listEnvelope struct {
		Deals      []*resdto.DealListResponse `json:"deals"`
		NextCursor *string                    `json:"next_cursor"`
	}

	s.Run("passes query filters through", func() {
		s.mockQueries.EXPECT().
			ListPublished(gomock.Any(), gomock.Any(), (*queries.Cursor)(nil), 10).
			DoAndReturn(func(_ any, filter queries.DealFilter, _ *queries.Cursor, _ int) ([]*queries.DealListItem, *queries.Cursor, error) {
				s.Require().NotNil(filter.City)
				s.Equal("portland", *filter.City)
				s.Require().NotNil(filter.Category)
				s.Equal("food", *filter.Category)
				s.Nil(filter.Tier)
				return []*queries.DealListItem{item}, nil, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deals?city=portland&category=food&limit=10", nil, "")

		var response listEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Deals, 1)
		s.Equal(item.Title, response.Deals[0].Title)
		s.Nil(response.NextCursor)
	})

	s.Run("forwards the after cursor and echoes the next one", func() {
		s.mockQueries.EXPECT().
			ListPublished(gomock.Any(), gomock.Any(), &queries.Cursor{After: "cursor123"}, 10).
			Return([]*queries.DealListItem{item}, &queries.Cursor{After: "cursor456"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deals?limit=10&after=cursor123", nil, "")

		var response listEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Deals, 1)
		s.Require().NotNil(response.NextCursor)
		s.Equal("cursor456", *response.NextCursor)
	})

	s.Run("error: 400 on malformed cursor", func() {
		s.mockQueries.EXPECT().
			ListPublished(gomock.Any(), gomock.Any(), &queries.Cursor{After: "garbage"}, 10).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deals?limit=10&after=garbage", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})

	s.Run("vendor listing uses the authenticated vendor", func() {
		s.mockQueries.EXPECT().ListByVendor(gomock.Any(), s.vendorID, 0).
			Return([]*queries.DealListItem{item}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vendors/me/deals", nil, "")

		var response []*resdto.DealListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})
}
