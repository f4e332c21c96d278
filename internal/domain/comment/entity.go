package comment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxTextLength = 2000

var (
	ErrEmptyText   = errors.New("comment text cannot be empty")
	ErrTextTooLong = errors.New("comment text exceeds maximum length")
)

// Comment is feedback left on an item by a user who completed an approved
// booking of it. Eligibility is checked by the command layer, not here.
type Comment struct {
	id        uuid.UUID
	itemID    uuid.UUID
	authorID  uuid.UUID
	text      string
	createdAt time.Time
}

func NewComment(itemID, authorID uuid.UUID, text string, now time.Time) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if len(text) > MaxTextLength {
		return nil, ErrTextTooLong
	}
	return &Comment{
		id:        uuid.New(),
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: now,
	}, nil
}

func (c *Comment) ID() uuid.UUID        { return c.id }
func (c *Comment) ItemID() uuid.UUID    { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID  { return c.authorID }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
