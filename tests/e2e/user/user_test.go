//go:build e2e

package user_test

import (
	"net/http"
	"testing"

	"gearshare/internal/handler/dto/response"
	"gearshare/tests/common/builder"
	"gearshare/tests/common/dbtest"
	"gearshare/tests/common/httptest"
	"gearshare/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const usersURL = "/users"

type UserSuite struct {
	e2e.SharedSuite
}

func (s *UserSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestUserSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(UserSuite))
}

func (s *UserSuite) TestUserLifecycle() {
	s.Run("Normal case: create, read, patch, delete", func() {
		t := s.T()

		reqBody := builder.NewUserBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, usersURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.UserResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, reqBody.Email, created.Email)

		userURL := usersURL + "/" + created.ID.String()

		patch := map[string]any{"name": "Olga Renamed"}
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, userURL, patch, "")
		require.Equal(t, http.StatusOK, w.Code)

		var patched response.UserResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &patched))
		require.Equal(t, "Olga Renamed", patched.Name)
		require.Equal(t, created.Email, patched.Email)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, userURL, nil, "")
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, userURL, nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})

	s.Run("Error case: duplicate email conflicts", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")

		reqBody := builder.NewUserBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, usersURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Error case: patching to a taken email conflicts", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		beaID := dbtest.CreateTestUser(t, s.DB, "Bea Borrower", "bea@example.com")

		patch := map[string]any{"email": "olga@example.com"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, usersURL+"/"+beaID.String(), patch, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Error case: unknown user returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, usersURL+"/"+uuid.New().String(), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})

	s.Run("Normal case: list returns every user", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		dbtest.CreateTestUser(t, s.DB, "Bea Borrower", "bea@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, usersURL, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var listed []response.UserResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &listed))
		require.Len(t, listed, 2)
	})
}
