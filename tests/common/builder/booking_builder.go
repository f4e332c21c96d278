//go:build unit || e2e

package builder

import (
	"time"

	dombooking "gearshare/internal/domain/booking"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/usecase/queries"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ItemID     uuid.UUID
	ItemName   string
	OwnerID    uuid.UUID
	BookerID   uuid.UUID
	BookerName string
	Available  bool
	Start      time.Time
	End        time.Time
	Status     dombooking.Status
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().Truncate(time.Second)
	return &BookingBuilder{
		ItemID:     uuid.New(),
		ItemName:   "Cordless Drill",
		OwnerID:    uuid.New(),
		BookerID:   uuid.New(),
		BookerName: "Bea Borrower",
		Available:  true,
		Start:      now.Add(24 * time.Hour),
		End:        now.Add(48 * time.Hour),
		Status:     dombooking.StatusWaiting,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithOwnerID(id uuid.UUID) *BookingBuilder {
	b.OwnerID = id
	return b
}

func (b *BookingBuilder) WithBookerID(id uuid.UUID) *BookingBuilder {
	b.BookerID = id
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) AsUnavailable() *BookingBuilder {
	b.Available = false
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	period, err := dombooking.NewPeriod(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(dombooking.ItemSpec{
		ID:        b.ItemID,
		OwnerID:   b.OwnerID,
		Available: b.Available,
	}, b.BookerID, period)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID: b.ItemID,
		Start:  b.Start,
		End:    b.End,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	now := time.Now()
	return &queries.BookingView{
		ID:     uuid.New(),
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item: queries.ItemRef{
			ID:      b.ItemID,
			Name:    b.ItemName,
			OwnerID: b.OwnerID,
		},
		Booker: queries.UserRef{
			ID:   b.BookerID,
			Name: b.BookerName,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:       uuid.New(),
		ItemID:   b.ItemID,
		OwnerID:  b.OwnerID,
		BookerID: b.BookerID,
		Status:   b.Status,
		Start:    b.Start,
		End:      b.End,
	}
}
