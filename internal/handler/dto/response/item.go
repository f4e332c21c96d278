package response

import (
	"time"

	"gearshare/internal/usecase/commands"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingStubResponse struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemResponse struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Available   bool                 `json:"available"`
	LastBooking *BookingStubResponse `json:"lastBooking,omitempty"`
	NextBooking *BookingStubResponse `json:"nextBooking,omitempty"`
	Comments    []*CommentResponse   `json:"comments"`
}

func FromItemView(view *queries.ItemView) *ItemResponse {
	resp := &ItemResponse{
		ID:          view.ID,
		Name:        view.Name,
		Description: view.Description,
		Available:   view.Available,
		LastBooking: fromBookingStub(view.LastBooking),
		NextBooking: fromBookingStub(view.NextBooking),
		Comments:    make([]*CommentResponse, len(view.Comments)),
	}
	for i, c := range view.Comments {
		resp.Comments[i] = FromCommentView(c)
	}
	return resp
}

func FromItemViews(views []*queries.ItemView) []*ItemResponse {
	out := make([]*ItemResponse, len(views))
	for i, view := range views {
		out[i] = FromItemView(view)
	}
	return out
}

func FromCommentResult(result *commands.CreateCommentResult, text string) *CommentResponse {
	return &CommentResponse{
		ID:         result.CommentID,
		Text:       text,
		AuthorName: result.AuthorName,
		Created:    result.CreatedAt,
	}
}

func FromCommentView(view *queries.CommentView) *CommentResponse {
	return &CommentResponse{
		ID:         view.ID,
		Text:       view.Text,
		AuthorName: view.AuthorName,
		Created:    view.CreatedAt,
	}
}

func fromBookingStub(stub *queries.BookingStub) *BookingStubResponse {
	if stub == nil {
		return nil
	}
	return &BookingStubResponse{
		ID:       stub.ID,
		BookerID: stub.BookerID,
		Start:    stub.Start,
		End:      stub.End,
	}
}
