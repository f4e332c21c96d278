//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"gearshare/internal/handler/dto/response"
	"gearshare/tests/common/builder"
	"gearshare/tests/common/dbtest"
	"gearshare/tests/common/httptest"
	"gearshare/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/bookings"
	ownerBookingsURL = "/bookings/owner"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// seedPair creates an owner with one available item plus a separate booker.
func (s *BookingSuite) seedPair(t *testing.T) (ownerID, bookerID, itemID uuid.UUID) {
	t.Helper()
	ownerID = dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
	bookerID = dbtest.CreateTestUser(t, s.DB, "Bea Borrower", "bea@example.com")
	itemID = dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)
	return ownerID, bookerID, itemID
}

// =============================================================================
// TestCreateBooking
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: booker creates a WAITING booking", func() {
		t := s.T()
		_, bookerID, itemID := s.seedPair(t)

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		reqBody.ItemID = itemID

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, bookerID.String())
		require.Equal(t, http.StatusCreated, w.Code, "should create booking: %s", w.Body.String())

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "WAITING", created.Status)
		require.Equal(t, itemID, created.Item.ID)
		require.Equal(t, bookerID, created.Booker.ID)

		// The view joins live names from users and items.
		require.Equal(t, "Cordless Drill", created.Item.Name)
		require.Equal(t, "Bea Borrower", created.Booker.Name)
	})

	s.Run("Error case: owner cannot book own item", func() {
		t := s.T()
		ownerID, _, itemID := s.seedPair(t)

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		reqBody.ItemID = itemID

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, ownerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Error case: unavailable item is rejected", func() {
		t := s.T()
		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Bea Borrower", "bea@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Broken Sander", false)

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		reqBody.ItemID = itemID

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, bookerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})

	s.Run("Error case: start must be strictly before end", func() {
		t := s.T()
		_, bookerID, itemID := s.seedPair(t)

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		reqBody.ItemID = itemID
		reqBody.End = reqBody.Start

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, bookerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})

	s.Run("Error case: unknown item returns 404", func() {
		t := s.T()
		s.seedPair(t)
		bookerID := dbtest.CreateTestUser(t, s.DB, "Carl", "carl@example.com")

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		reqBody.ItemID = uuid.New()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, bookerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})

	s.Run("Error case: request without identity header", func() {
		t := s.T()
		_, _, itemID := s.seedPair(t)

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		reqBody.ItemID = itemID

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})
}

// =============================================================================
// TestDecideBooking
// =============================================================================

func (s *BookingSuite) TestDecideBooking() {
	now := time.Now()

	s.Run("Normal case: owner approves then the decision is final", func() {
		t := s.T()
		ownerID, bookerID, itemID := s.seedPair(t)
		bookingID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")

		url := fmt.Sprintf("%s/%s?approved=true", bookingsURL, bookingID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url, nil, ownerID.String())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var decided response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &decided))
		require.Equal(t, "APPROVED", decided.Status)

		// Second decision conflicts regardless of direction.
		rejectURL := fmt.Sprintf("%s/%s?approved=false", bookingsURL, bookingID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, rejectURL, nil, ownerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Normal case: owner rejects", func() {
		t := s.T()
		ownerID, bookerID, itemID := s.seedPair(t)
		bookingID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")

		url := fmt.Sprintf("%s/%s?approved=false", bookingsURL, bookingID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url, nil, ownerID.String())
		require.Equal(t, http.StatusOK, w.Code)

		var decided response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &decided))
		require.Equal(t, "REJECTED", decided.Status)
	})

	s.Run("Error case: booker cannot decide", func() {
		t := s.T()
		_, bookerID, itemID := s.seedPair(t)
		bookingID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")

		url := fmt.Sprintf("%s/%s?approved=true", bookingsURL, bookingID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url, nil, bookerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Error case: unknown booking returns 404", func() {
		t := s.T()
		ownerID, _, _ := s.seedPair(t)

		url := fmt.Sprintf("%s/%s?approved=true", bookingsURL, uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url, nil, ownerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestGetBooking
// =============================================================================

func (s *BookingSuite) TestGetBooking() {
	now := time.Now()

	s.Run("Normal case: booker and owner can read, stranger cannot", func() {
		t := s.T()
		ownerID, bookerID, itemID := s.seedPair(t)
		strangerID := dbtest.CreateTestUser(t, s.DB, "Steve Stranger", "steve@example.com")
		bookingID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")

		url := bookingsURL + "/" + bookingID.String()

		for _, actor := range []uuid.UUID{bookerID, ownerID} {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, actor.String())
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, strangerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}

// =============================================================================
// TestListBookings - six temporal/status partitions
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	s.Run("Normal case: state partitions classify by time and status", func() {
		t := s.T()
		ownerID, bookerID, itemID := s.seedPair(t)
		now := time.Now()

		past := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-72*time.Hour), now.Add(-48*time.Hour), "APPROVED")
		current := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-1*time.Hour), now.Add(1*time.Hour), "APPROVED")
		future := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(48*time.Hour), now.Add(72*time.Hour), "WAITING")
		rejected := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(96*time.Hour), now.Add(120*time.Hour), "REJECTED")

		cases := []struct {
			state     string
			expectIDs []uuid.UUID
		}{
			// ALL is ordered by start descending.
			{state: "ALL", expectIDs: []uuid.UUID{rejected, future, current, past}},
			{state: "CURRENT", expectIDs: []uuid.UUID{current}},
			{state: "PAST", expectIDs: []uuid.UUID{past}},
			{state: "FUTURE", expectIDs: []uuid.UUID{rejected, future}},
			{state: "WAITING", expectIDs: []uuid.UUID{future}},
			{state: "REJECTED", expectIDs: []uuid.UUID{rejected}},
		}

		for _, tc := range cases {
			url := fmt.Sprintf("%s?state=%s", bookingsURL, tc.state)
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, bookerID.String())
			require.Equal(t, http.StatusOK, w.Code, "state %s: %s", tc.state, w.Body.String())

			var views []response.BookingResponse
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &views))
			require.Len(t, views, len(tc.expectIDs), "state %s", tc.state)
			for i, id := range tc.expectIDs {
				require.Equal(t, id, views[i].ID, "state %s position %d", tc.state, i)
			}
		}

		// The owner sees the same set through the owner route.
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ownerBookingsURL+"?state=ALL", nil, ownerID.String())
		require.Equal(t, http.StatusOK, w.Code)
		var ownerViews []response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &ownerViews))
		require.Len(t, ownerViews, 4)
	})

	s.Run("Normal case: pagination window snaps to whole pages", func() {
		t := s.T()
		_, bookerID, itemID := s.seedPair(t)
		now := time.Now()

		var ids []uuid.UUID
		for i := range 5 {
			start := now.Add(time.Duration(24*(i+1)) * time.Hour)
			ids = append(ids, dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
				start, start.Add(12*time.Hour), "WAITING"))
		}

		// from=3 size=2 floors to offset 2: third and second latest starts.
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?state=ALL&from=3&size=2", nil, bookerID.String())
		require.Equal(t, http.StatusOK, w.Code)

		var views []response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &views))
		require.Len(t, views, 2)
		require.Equal(t, ids[2], views[0].ID)
		require.Equal(t, ids[1], views[1].ID)
	})

	s.Run("Error case: unknown state token", func() {
		t := s.T()
		_, bookerID, _ := s.seedPair(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?state=SOON", nil, bookerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})

	s.Run("Error case: unknown subject user", func() {
		t := s.T()
		s.seedPair(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, uuid.New().String())
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}
