//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"gearshare/internal/handler/api"
	resdto "gearshare/internal/handler/dto/response"
	"gearshare/internal/handler/middleware"
	"gearshare/internal/usecase/commands"
	"gearshare/internal/usecase/queries"
	"gearshare/tests/common/builder"
	"gearshare/tests/common/httptest"
	"gearshare/tests/common/testutil"
	commandsmock "gearshare/tests/mock/commands"
	queriesmock "gearshare/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ItemHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockItemCommands
	mockQueries  *queriesmock.MockItemQueries
	handler      *api.ItemHandler
	actorID      uuid.UUID
}

func (s *ItemHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockItemCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockItemQueries(s.mockCtrl)
	s.handler = api.NewItemHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	items := s.router.Group("/items")
	items.Use(middleware.RequireActor())
	items.POST("", s.handler.Create)
	items.GET("", s.handler.ListOwn)
	items.GET("/:id", s.handler.Get)
	items.PATCH("/:id", s.handler.Update)
	items.DELETE("/:id", s.handler.Delete)
	items.POST("/:id/comments", s.handler.AddComment)
}

func (s *ItemHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestItemHandlerSuite(t *testing.T) {
	suite.Run(t, new(ItemHandlerTestSuite))
}

func (s *ItemHandlerTestSuite) TestCreate() {
	url := "/items"

	reqBody := builder.NewItemBuilder().BuildCreateRequestDTO()
	returnView := builder.NewItemBuilder().BuildView()

	s.Run("success: returns 201 Created with the stored item", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.actorID).
			Return(returnView.ID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.actorID.String())

		var body resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal(returnView.Available, body.Available)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		for _, field := range []string{"name", "description", "available"} {
			s.Run("missing "+field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.actorID.String())
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 404 when owner does not exist", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.actorID).
			Return(uuid.Nil, commands.ErrUserNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *ItemHandlerTestSuite) TestUpdate() {
	returnView := builder.NewItemBuilder().BuildView()
	url := "/items/" + returnView.ID.String()
	reqBody := builder.NewItemBuilder().BuildUpdateRequestDTO()

	s.Run("success: returns 200 OK with the updated item", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), returnView.ID, gomock.Any(), s.actorID).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, s.actorID.String())
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: command failures map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "item not found", err: commands.ErrItemNotFound, expectCode: http.StatusNotFound},
			{name: "not the owner", err: commands.ErrNotItemOwner, expectCode: http.StatusForbidden},
			{name: "invalid data", err: commands.ErrInvalidItem, expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Update(gomock.Any(), returnView.ID, gomock.Any(), s.actorID).
					Return(tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, s.actorID.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}

func (s *ItemHandlerTestSuite) TestDelete() {
	itemID := uuid.New()
	url := "/items/" + itemID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), itemID, s.actorID).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, s.actorID.String())
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 for non-owner", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), itemID, s.actorID).
			Return(commands.ErrNotItemOwner).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

func (s *ItemHandlerTestSuite) TestGet() {
	returnView := builder.NewItemBuilder().BuildView()
	url := "/items/" + returnView.ID.String()

	s.Run("success: returns 200 OK with item", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.actorID.String())

		var body resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.Name, body.Name)
		s.NotNil(body.Comments)
	})

	s.Run("error: 404 when item does not exist", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, returnView.ID).
			Return(nil, queries.ErrItemNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *ItemHandlerTestSuite) TestListOwn() {
	s.Run("success: lists the actor's items", func() {
		views := []*queries.ItemView{builder.NewItemBuilder().BuildView()}
		page, err := queries.NewPage(0, 10)
		s.Require().NoError(err)
		s.mockQueries.EXPECT().ListByOwner(gomock.Any(), s.actorID, page).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items", nil, s.actorID.String())

		var body []resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})
}

func (s *ItemHandlerTestSuite) TestAddComment() {
	itemID := uuid.New()
	url := "/items/" + itemID.String() + "/comments"
	reqBody := map[string]any{"text": "Worked perfectly for my deck project"}

	s.Run("success: returns 201 Created with comment", func() {
		result := &commands.CreateCommentResult{
			CommentID:  uuid.New(),
			AuthorName: "Bea Borrower",
			CreatedAt:  time.Now(),
		}
		s.mockCommands.EXPECT().AddComment(gomock.Any(), itemID, s.actorID, gomock.Any()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.actorID.String())

		var body resdto.CommentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(result.CommentID, body.ID)
		s.Equal("Bea Borrower", body.AuthorName)
	})

	s.Run("error: 400 without completed booking", func() {
		s.mockCommands.EXPECT().AddComment(gomock.Any(), itemID, s.actorID, gomock.Any()).
			Return(nil, commands.ErrNoCompletedBooking).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on empty text", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"text": ""}, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on oversized text", func() {
		s.mockCommands.EXPECT().AddComment(gomock.Any(), itemID, s.actorID, gomock.Any()).
			Return(nil, commands.ErrInvalidComment).Times(1)
		long := map[string]any{"text": strings.Repeat("a", 2001)}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, long, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
