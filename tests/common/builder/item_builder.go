//go:build unit || e2e

package builder

import (
	domitem "gearshare/internal/domain/item"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemBuilder struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Name:        "Cordless Drill",
		Description: "18V drill with two batteries",
		Available:   true,
	}
}

func (i *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(i)
	return i
}

func (i *ItemBuilder) WithOwnerID(id uuid.UUID) *ItemBuilder {
	i.OwnerID = id
	return i
}

func (i *ItemBuilder) WithName(name string) *ItemBuilder {
	i.Name = name
	return i
}

func (i *ItemBuilder) WithDescription(description string) *ItemBuilder {
	i.Description = description
	return i
}

func (i *ItemBuilder) AsUnavailable() *ItemBuilder {
	i.Available = false
	return i
}

func (i *ItemBuilder) BuildDomain() (*domitem.Item, error) {
	return domitem.NewItem(i.OwnerID, i.Name, i.Description, i.Available)
}

func (i *ItemBuilder) BuildCreateRequestDTO() reqdto.CreateItemRequest {
	available := i.Available
	return reqdto.CreateItemRequest{
		Name:        i.Name,
		Description: i.Description,
		Available:   &available,
	}
}

func (i *ItemBuilder) BuildUpdateRequestDTO() reqdto.UpdateItemRequest {
	name := i.Name
	description := i.Description
	available := i.Available
	return reqdto.UpdateItemRequest{
		Name:        &name,
		Description: &description,
		Available:   &available,
	}
}

func (i *ItemBuilder) BuildView() *queries.ItemView {
	return &queries.ItemView{
		ID:          i.ID,
		OwnerID:     i.OwnerID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		Comments:    []*queries.CommentView{},
	}
}
