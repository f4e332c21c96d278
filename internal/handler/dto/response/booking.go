package response

import (
	"time"

	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingItemResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BookingUserResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BookingResponse struct {
	ID     uuid.UUID           `json:"id"`
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Status string              `json:"status"`
	Item   BookingItemResponse `json:"item"`
	Booker BookingUserResponse `json:"booker"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:     view.ID,
		Start:  view.Start,
		End:    view.End,
		Status: view.Status,
		Item: BookingItemResponse{
			ID:   view.Item.ID,
			Name: view.Item.Name,
		},
		Booker: BookingUserResponse{
			ID:   view.Booker.ID,
			Name: view.Booker.Name,
		},
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(views))
	for i, view := range views {
		out[i] = FromBookingView(view)
	}
	return out
}
