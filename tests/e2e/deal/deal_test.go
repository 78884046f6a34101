//go:build e2e

package deal_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"dealspot/internal/domain/user"
	"dealspot/internal/handler/dto/request"
	"dealspot/internal/handler/dto/response"
	"dealspot/tests/common/authtest"
	"dealspot/tests/common/dbtest"
	"dealspot/tests/common/httptest"
	"dealspot/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	dealsURL       = "/api/deals"
	dealURL        = "/api/deals/%s"
	publishURL     = "/api/deals/%s/publish"
	pauseURL       = "/api/deals/%s/pause"
	expireURL      = "/api/deals/%s/expire"
	redemptionsURL = "/api/redemptions"
)

type DealSuite struct {
	e2e.SharedSuite
}

func (s *DealSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestDealSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(DealSuite))
}

func discount(v float64) *float64 { return &v }

func (s *DealSuite) createDraft(t *testing.T, token, title string) response.DealResponse {
	t.Helper()

	endsAt := time.Now().UTC().Add(48 * time.Hour)
	reqBody := request.CreateDealRequest{
		Title:         title,
		Description:   "two entrees for the price of one",
		Category:      "food",
		City:          "portland",
		DiscountKind:  "percent",
		DiscountValue: discount(20),
		EndsAt:        &endsAt,
	}

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, dealsURL, reqBody, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.DealResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	require.Equal(t, "draft", created.Status)
	require.False(t, created.IsActive)
	return created
}

func (s *DealSuite) getStatus(t *testing.T, dealID string) string {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(dealURL, dealID), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view response.DealResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))
	return view.Status
}

// =============================================================================
// TestDealLifecycle - every lifecycle write goes through the real UPDATE
// =============================================================================

func (s *DealSuite) TestDealLifecycle() {
	s.Run("Normal case: draft, publish, pause, republish, expire", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "vendor@example.com", string(user.RoleVendor))
		created := s.createDraft(t, token, "Two-for-one dinner")
		id := created.ID.String()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, id), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "published", s.getStatus(t, id))
		require.Equal(t, "published", dbtest.DealStatus(t, s.DB, created.ID))

		// Publishing a published deal is a no-op, not a conflict
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, id), nil, token)
		require.Equal(t, http.StatusNoContent, w2.Code, w2.Body.String())

		w3 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(pauseURL, id), nil, token)
		require.Equal(t, http.StatusNoContent, w3.Code, w3.Body.String())
		require.Equal(t, "paused", s.getStatus(t, id))

		// A paused deal can come back
		w4 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, id), nil, token)
		require.Equal(t, http.StatusNoContent, w4.Code, w4.Body.String())
		require.Equal(t, "published", s.getStatus(t, id))

		w5 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(expireURL, id), nil, token)
		require.Equal(t, http.StatusNoContent, w5.Code, w5.Body.String())
		require.Equal(t, "expired", s.getStatus(t, id))

		// Expiry is terminal
		w6 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(publishURL, id), nil, token)
		require.Equal(t, http.StatusConflict, w6.Code, w6.Body.String())
	})

	s.Run("Normal case: updating a draft persists the patch", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "vendor@example.com", string(user.RoleVendor))
		created := s.createDraft(t, token, "Before rename")

		newTitle := "After rename"
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(dealURL, created.ID), request.UpdateDealRequest{Title: &newTitle}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated response.DealResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.Equal(t, newTitle, updated.Title)
	})

	s.Run("Normal case: deleting hides the deal but keeps its history", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "vendor@example.com", string(user.RoleVendor))
		created := s.createDraft(t, token, "Short-lived deal")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(dealURL, created.ID), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(dealURL, created.ID), nil, "")
		require.Equal(t, http.StatusNotFound, w2.Code, w2.Body.String())
	})

	s.Run("Error case: another vendor cannot publish the deal", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "owner@example.com", string(user.RoleVendor))
		created := s.createDraft(t, token, "Owned deal")

		intruder := authtest.CreateAndLogin(t, s.DB, s.Router, "intruder@example.com", string(user.RoleVendor))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(publishURL, created.ID), nil, intruder)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
		require.Equal(t, "draft", dbtest.DealStatus(t, s.DB, created.ID))
	})
}

// =============================================================================
// TestLazyExpiry - the first touch after the window closes flips the status
// =============================================================================

func (s *DealSuite) TestLazyExpiry() {
	s.Run("Normal case: redeeming a window-lapsed deal expires it in storage", func() {
		t := s.T()

		vendorID := dbtest.CreateTestUser(t, s.DB, "vendor@example.com", string(user.RoleVendor))
		dealID := dbtest.CreateTestDeal(t, s.DB, vendorID, "Yesterday's special", nil, 1, "once")
		dbtest.LapseDealWindow(t, s.DB, dealID)

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "consumer@example.com", string(user.RoleConsumer))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, redemptionsURL,
			request.RedeemRequest{DealID: dealID}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var outcome response.RedeemOutcome
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &outcome))
		require.False(t, outcome.Allowed)
		require.Equal(t, "deal_not_published", outcome.Reason)
		require.Nil(t, outcome.Redemption)

		// The denial itself wrote the expiry back to the deals table
		require.Equal(t, "expired", dbtest.DealStatus(t, s.DB, dealID))
		require.EqualValues(t, 0, dbtest.CountActiveRedemptions(t, s.DB, dealID))
	})
}
